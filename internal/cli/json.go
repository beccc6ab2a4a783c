package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iola1999/AssppWeb/internal/domain"
)

// jsonAction is the result envelope for mutating commands.
type jsonAction struct {
	OK     bool   `json:"ok"`
	Action string `json:"action"`
	Email  string `json:"email,omitempty"`
}

// jsonAccount is the list/show representation. Secrets are left out; the
// export command is the one surface that emits them.
type jsonAccount struct {
	Email            string `json:"email"`
	AppleID          string `json:"appleId"`
	Store            string `json:"store"`
	Country          string `json:"country,omitempty"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	DeviceIdentifier string `json:"deviceIdentifier"`
	Pod              string `json:"pod,omitempty"`
	Cookies          int    `json:"cookies"`
	Usable           bool   `json:"usable"`
}

func toJSONAccount(a *domain.Account) jsonAccount {
	country, _ := domain.StoreIDToCountry(a.Store)
	return jsonAccount{
		Email:            a.Email,
		AppleID:          a.AppleID,
		Store:            a.Store,
		Country:          country,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		DeviceIdentifier: a.DeviceIdentifier,
		Pod:              a.Pod,
		Cookies:          len(a.Cookies),
		Usable:           a.Usable(),
	}
}

func toJSONAccounts(accounts []domain.Account) []jsonAccount {
	out := make([]jsonAccount, 0, len(accounts))
	for i := range accounts {
		out = append(out, toJSONAccount(&accounts[i]))
	}
	return out
}

// printJSON writes the --json representation of a command result to stdout,
// indented to match the clipboard export format.
func printJSON(v any) error {
	return fprintJSON(os.Stdout, v)
}

func fprintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
