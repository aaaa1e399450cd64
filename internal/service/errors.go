package service

import "errors"

// Error kinds. Every error a service returns wraps exactly one of these,
// except unexpected storage failures which wrap ErrInternal.
var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrIO                 = errors.New("io")
	ErrInternal           = errors.New("internal")
)
