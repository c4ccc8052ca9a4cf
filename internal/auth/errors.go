package auth

import "errors"

// Identity errors
var (
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUsernameTaken      = errors.New("auth: username already taken")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUsernameRequired   = errors.New("auth: username is required")
	ErrPasswordRequired   = errors.New("auth: password is required")
)

// Authorization errors
var (
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	ErrForbidden       = errors.New("auth: forbidden")
	ErrSelfDelete      = errors.New("auth: cannot delete own account")
)

// Token errors
var (
	ErrTokenExpired         = errors.New("auth: token expired")
	ErrTokenInvalid         = errors.New("auth: invalid token")
	ErrMissingSigningSecret = errors.New("auth: missing signing secret")
)

// OAuth errors
var (
	ErrStateMismatch       = errors.New("auth: oauth state mismatch")
	ErrEmailUnavailable    = errors.New("auth: no usable email from provider")
	ErrProviderUnavailable = errors.New("auth: identity provider unavailable")
	ErrUnknownProvider     = errors.New("auth: unknown oauth provider")
)
