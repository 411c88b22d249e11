package auth

import "github.com/jrsteele09/go-shop-admin/internal/errors"

var (
	ErrInvalidCredentials = errors.ErrInvalidCredentials
	ErrNotAuthenticated   = errors.ErrNotAuthenticated
	ErrNoRefreshToken     = errors.ErrNoRefreshToken
	ErrRefreshFailed      = errors.ErrRefreshFailed
	ErrOTPNotSent         = errors.ErrOTPNotSent
	ErrOTPInvalid         = errors.ErrOTPInvalid
)
