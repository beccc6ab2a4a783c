package store

import (
	"context"
	"errors"

	"github.com/iola1999/AssppWeb/internal/domain"
)

// ErrNotFound is returned when no account exists for the requested email.
var ErrNotFound = errors.New("account not found")

// Store is the authoritative account list. Accounts are keyed by email;
// UpdateAccount is an upsert so a re-authentication result can replace the
// stored record wholesale.
type Store interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccount(ctx context.Context, email string) (*domain.Account, error)
	AddAccount(ctx context.Context, account *domain.Account) error
	UpdateAccount(ctx context.Context, account *domain.Account) error
	RemoveAccount(ctx context.Context, email string) error
	Close() error
}

// Secrets is the sensitive slice of an account record. It never touches the
// database; implementations of SecretStore keep it in the OS keyring.
type Secrets struct {
	Password      string          `json:"password"`
	PasswordToken string          `json:"passwordToken"`
	Cookies       []domain.Cookie `json:"cookies"`
}

// SecretStore persists account secrets keyed by email.
type SecretStore interface {
	SaveSecrets(email string, secrets *Secrets) error
	LoadSecrets(email string) (*Secrets, error)
	DeleteSecrets(email string) error
}
