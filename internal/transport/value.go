package transport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a scalar request field. It takes a JSON string or number as well
// as a form value and keeps the raw text; conversion happens when the
// handler asks for a concrete type.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*v = Value(n)
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (v *Value) UnmarshalParam(param string) error {
	*v = Value(param)
	return nil
}

func (v Value) String() string {
	return string(v)
}

func (v Value) Uint() (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(string(v)), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%q is not an unsigned integer", string(v))
	}
	return uint(n), nil
}

func (v Value) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", string(v))
	}
	return n, nil
}

func (v Value) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(string(v)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a decimal: %w", string(v), err)
	}
	return d, nil
}
