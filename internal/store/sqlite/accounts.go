package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iola1999/AssppWeb/internal/domain"
	"github.com/iola1999/AssppWeb/internal/store"
)

func (s *DB) AddAccount(ctx context.Context, acct *domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (email, apple_id, store_id, first_name, last_name, ds_id, device_id, pod)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		acct.Email, acct.AppleID, acct.Store, acct.FirstName, acct.LastName,
		acct.DirectoryServicesIdentifier, acct.DeviceIdentifier, acct.Pod,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if err := s.secrets.SaveSecrets(acct.Email, secretsOf(acct)); err != nil {
		return err
	}
	return nil
}

func (s *DB) UpdateAccount(ctx context.Context, acct *domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (email, apple_id, store_id, first_name, last_name, ds_id, device_id, pod)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
		   apple_id = excluded.apple_id,
		   store_id = excluded.store_id,
		   first_name = excluded.first_name,
		   last_name = excluded.last_name,
		   ds_id = excluded.ds_id,
		   device_id = excluded.device_id,
		   pod = excluded.pod,
		   updated_at = CURRENT_TIMESTAMP`,
		acct.Email, acct.AppleID, acct.Store, acct.FirstName, acct.LastName,
		acct.DirectoryServicesIdentifier, acct.DeviceIdentifier, acct.Pod,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", acct.Email, err)
	}

	if err := s.secrets.SaveSecrets(acct.Email, secretsOf(acct)); err != nil {
		return err
	}
	return nil
}

func (s *DB) GetAccount(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT email, apple_id, store_id, first_name, last_name, ds_id, device_id, pod
		 FROM accounts WHERE email = ?`, email,
	).Scan(&a.Email, &a.AppleID, &a.Store, &a.FirstName, &a.LastName,
		&a.DirectoryServicesIdentifier, &a.DeviceIdentifier, &a.Pod)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", email, err)
	}

	s.attachSecrets(&a)
	return &a, nil
}

func (s *DB) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, apple_id, store_id, first_name, last_name, ds_id, device_id, pod
		 FROM accounts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.Email, &a.AppleID, &a.Store, &a.FirstName, &a.LastName,
			&a.DirectoryServicesIdentifier, &a.DeviceIdentifier, &a.Pod); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		s.attachSecrets(&a)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *DB) RemoveAccount(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", email, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}

	// Secrets may already be gone; the row deletion is what matters.
	_ = s.secrets.DeleteSecrets(email)
	return nil
}

// attachSecrets merges keyring-held fields into the row. An account whose
// secrets are missing is still listed; it just is not usable until
// re-authenticated.
func (s *DB) attachSecrets(a *domain.Account) {
	a.Normalize()
	secrets, err := s.secrets.LoadSecrets(a.Email)
	if err != nil {
		return
	}
	a.Password = secrets.Password
	a.PasswordToken = secrets.PasswordToken
	if secrets.Cookies != nil {
		a.Cookies = secrets.Cookies
	}
}

func secretsOf(a *domain.Account) *store.Secrets {
	cookies := a.Cookies
	if cookies == nil {
		cookies = []domain.Cookie{}
	}
	return &store.Secrets{
		Password:      a.Password,
		PasswordToken: a.PasswordToken,
		Cookies:       cookies,
	}
}
