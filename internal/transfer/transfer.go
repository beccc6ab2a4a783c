// Package transfer implements the clipboard import/export contract for
// account records. Export writes the complete record, secrets included, as
// indented JSON. Import is deliberately lenient: only email, password and
// deviceIdentifier are load-bearing, every other field is defaulted when
// missing or wrong-typed.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/iola1999/AssppWeb/internal/domain"
)

// ErrClipboardEmpty is returned when the clipboard holds no text.
var ErrClipboardEmpty = errors.New("clipboard is empty")

// ErrInvalidJSON is returned when the clipboard text is not valid JSON.
var ErrInvalidJSON = errors.New("clipboard content is not valid JSON")

// FieldError reports a required field that is missing or not a non-empty
// string.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("missing or invalid required field %q", e.Field)
}

// Export serializes the account to the interchange format: stable field
// order, 2-space indentation.
func Export(account *domain.Account) (string, error) {
	a := *account
	a.Normalize()
	data, err := json.MarshalIndent(&a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize account: %w", err)
	}
	return string(data), nil
}

// ExportToClipboard places the serialized account on the system clipboard.
func ExportToClipboard(account *domain.Account) error {
	text, err := Export(account)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Import parses text into a normalized account record. Checks run in a fixed
// order and the first failure wins: empty text, invalid JSON, then the
// required fields email, password and deviceIdentifier.
func Import(text string) (*domain.Account, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrClipboardEmpty
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, ErrInvalidJSON
	}

	for _, field := range []string{"email", "password", "deviceIdentifier"} {
		if stringField(raw, field) == "" {
			return nil, &FieldError{Field: field}
		}
	}

	account := &domain.Account{
		Email:                       stringField(raw, "email"),
		Password:                    stringField(raw, "password"),
		AppleID:                     stringField(raw, "appleId"),
		Store:                       stringField(raw, "store"),
		FirstName:                   stringField(raw, "firstName"),
		LastName:                    stringField(raw, "lastName"),
		PasswordToken:               stringField(raw, "passwordToken"),
		DirectoryServicesIdentifier: stringField(raw, "directoryServicesIdentifier"),
		DeviceIdentifier:            stringField(raw, "deviceIdentifier"),
		Pod:                         stringField(raw, "pod"),
		Cookies:                     cookiesField(raw),
	}
	account.Normalize()
	return account, nil
}

// ImportFromClipboard reads the system clipboard and parses an account from
// it.
func ImportFromClipboard() (*domain.Account, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	return Import(text)
}

// stringField extracts a string value; non-string or absent values yield "".
func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// cookiesField decodes the cookie array leniently: a non-array value yields
// an empty list and non-object elements are skipped.
func cookiesField(raw map[string]any) []domain.Cookie {
	items, ok := raw["cookies"].([]any)
	if !ok {
		return []domain.Cookie{}
	}

	cookies := make([]domain.Cookie, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := domain.Cookie{
			Name:    stringField(obj, "name"),
			Value:   stringField(obj, "value"),
			Domain:  stringField(obj, "domain"),
			Path:    stringField(obj, "path"),
			Expires: stringField(obj, "expires"),
		}
		c.Secure, _ = obj["secure"].(bool)
		c.HTTPOnly, _ = obj["httpOnly"].(bool)
		cookies = append(cookies, c)
	}
	return cookies
}
