package store

import (
	"encoding/json"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "asspp"

// KeyringSecretStore persists account secrets in the OS keyring
// (macOS Keychain, Windows Credential Manager, or Linux Secret Service).
type KeyringSecretStore struct{}

// NewKeyringSecretStore returns a new KeyringSecretStore.
func NewKeyringSecretStore() *KeyringSecretStore {
	return &KeyringSecretStore{}
}

// SaveSecrets stores the secrets in the OS keyring under the account email.
func (k *KeyringSecretStore) SaveSecrets(email string, secrets *Secrets) error {
	data, err := json.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("failed to marshal secrets: %w", err)
	}
	if err := keyring.Set(serviceName, email, string(data)); err != nil {
		return fmt.Errorf("failed to save secrets to keyring: %w", err)
	}
	return nil
}

// LoadSecrets retrieves the secrets for the given email from the OS keyring.
func (k *KeyringSecretStore) LoadSecrets(email string) (*Secrets, error) {
	data, err := keyring.Get(serviceName, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets from keyring: %w", err)
	}
	var secrets Secrets
	if err := json.Unmarshal([]byte(data), &secrets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal secrets: %w", err)
	}
	return &secrets, nil
}

// DeleteSecrets removes the secrets for the given email from the OS keyring.
func (k *KeyringSecretStore) DeleteSecrets(email string) error {
	if err := keyring.Delete(serviceName, email); err != nil {
		return fmt.Errorf("failed to delete secrets from keyring: %w", err)
	}
	return nil
}
