package service

import "errors"

// Failure kinds surfaced to handlers. Every failure is terminal for its
// request; none are retried and none crash the service.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUnknownPrincipal  = errors.New("user not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrSelfModification  = errors.New("self modification forbidden")
	ErrProductNotFound   = errors.New("product not found")
	ErrItemNotFound      = errors.New("item not found in cart")
	ErrNotFound          = errors.New("not found")
)
