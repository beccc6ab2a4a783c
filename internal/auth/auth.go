package auth

import (
	"context"
	"errors"

	"github.com/iola1999/AssppWeb/internal/domain"
)

// Credentials is the input to one authentication attempt. Code is empty on
// the first attempt and carries the 6-digit second factor on a retry after
// the backend challenges.
type Credentials struct {
	Email            string          `json:"email"`
	Password         string          `json:"password"`
	Code             string          `json:"code,omitempty"`
	DeviceIdentifier string          `json:"deviceIdentifier"`
	Cookies          []domain.Cookie `json:"cookies,omitempty"`
	Pod              string          `json:"-"`
}

// Authenticator exchanges credentials for a refreshed account record. A
// successful call returns the complete replacement record; the caller is
// expected to upsert it wholesale.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*domain.Account, error)
}

// AuthError is a failed authentication attempt. CodeRequired distinguishes a
// second-factor challenge, which is a recoverable prompt, from a hard
// failure.
type AuthError struct {
	Message      string `json:"message"`
	CodeRequired bool   `json:"codeRequired"`
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}

// CodeRequired reports whether err is an authentication failure asking for a
// second-factor code.
func CodeRequired(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.CodeRequired
}

// CredentialsFor builds the authentication input for a stored account,
// attaching the optional second-factor code.
func CredentialsFor(a *domain.Account, code string) Credentials {
	return Credentials{
		Email:            a.Email,
		Password:         a.Password,
		Code:             code,
		DeviceIdentifier: a.DeviceIdentifier,
		Cookies:          a.Cookies,
		Pod:              a.Pod,
	}
}
