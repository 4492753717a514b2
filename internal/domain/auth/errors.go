package auth

import "errors"

var (
	ErrInvalidCredentials      = errors.New("invalid name/email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrTreasurerAccessRequired = errors.New("treasurer access required")
	ErrEmployeeAccessRequired  = errors.New("employee access required")
)
