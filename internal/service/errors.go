package service

import "errors"

// Domain errors returned by the services. Controllers pick status codes from
// these with errors.Is; anything else is an internal error.
var (
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryExists      = errors.New("category with this name already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategory     = errors.New("invalid category_id for this user")
	ErrTransactionNotFound = errors.New("transaction not found")
)
