package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrEmailAlreadyExists         = errors.New("email already registered")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrTokenExpired               = errors.New("token has expired")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrUserNotFound               = errors.New("user not found")
	ErrGoogleAccessDeniedByUser   = errors.New("google access denied by user")
	ErrGoogleEmailNotVerified     = errors.New("google account email is not verified")
)
