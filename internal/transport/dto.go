package transport

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Bodies arrive as JSON or as urlencoded forms. Pointer fields let the
// validator tell "missing" from a zero value.

type CredentialsRequest struct {
	Username *Value `json:"username" form:"username" validate:"required"`
	Password *Value `json:"password" form:"password" validate:"required"`
}

// Credentials returns the fields as given, empty when absent.
func (r CredentialsRequest) Credentials() (username, password string) {
	if r.Username != nil {
		username = r.Username.String()
	}
	if r.Password != nil {
		password = r.Password.String()
	}
	return username, password
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AddToCartRequest struct {
	UserID    *Value `json:"userId" form:"userId" validate:"required"`
	ProductID *Value `json:"productId" form:"productId" validate:"required"`
	Quantity  *Value `json:"quantity" form:"quantity" validate:"required"`
}

// Parse converts the validated fields. Call it after validation.
func (r AddToCartRequest) Parse() (userID, productID uint, quantity int, err error) {
	var errs [3]error
	userID, errs[0] = r.UserID.Uint()
	productID, errs[1] = r.ProductID.Uint()
	quantity, errs[2] = r.Quantity.Int()
	if err := errors.Join(errs[:]...); err != nil {
		return 0, 0, 0, fmt.Errorf("add to cart body: %w", err)
	}
	return userID, productID, quantity, nil
}

type CreateOrderRequest struct {
	UserID      *Value `json:"userId" form:"userId" validate:"required"`
	TotalAmount *Value `json:"totalAmount" form:"totalAmount" validate:"required"`
}

func (r CreateOrderRequest) Parse() (userID uint, totalAmount decimal.Decimal, err error) {
	userID, uErr := r.UserID.Uint()
	totalAmount, aErr := r.TotalAmount.Decimal()
	if err := errors.Join(uErr, aErr); err != nil {
		return 0, decimal.Zero, fmt.Errorf("create order body: %w", err)
	}
	return userID, totalAmount, nil
}

type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
