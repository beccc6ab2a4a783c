package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iola1999/AssppWeb/internal/auth"
	"github.com/iola1999/AssppWeb/internal/domain"
)

// authState is the per-session re-authentication state.
type authState int

const (
	authIdle authState = iota
	authInFlight
	authAwaitingCode
)

// Messages emitted by detailModel.

type reauthRequestMsg struct {
	email string
	code  string
}

type deleteConfirmedMsg struct {
	email string
}

type exportRequestMsg struct {
	email string
}

type closeDetailMsg struct{}

// detailModel displays one account and drives the re-authentication,
// delete-confirmation and export actions for it.
type detailModel struct {
	account  *domain.Account
	notFound bool

	state     authState
	codeInput textinput.Model

	confirmingDelete bool

	showSecrets bool
	width       int
	height      int
	focused     bool
	visible     bool
}

func newDetail(showSecrets bool) detailModel {
	ti := textinput.New()
	ti.Placeholder = "123456"
	ti.CharLimit = 6
	ti.Width = 10
	ti.Validate = validateCode
	return detailModel{codeInput: ti, showSecrets: showSecrets}
}

// validateCode accepts only digits; the 6-character cap is CharLimit's job.
func validateCode(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("code must be numeric")
		}
	}
	return nil
}

// digitRunes keeps the digits of a rune sequence, dropping everything else.
// Pasted codes with separators collapse to their digits.
func digitRunes(runes []rune) []rune {
	out := runes[:0:0]
	for _, r := range runes {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	if !m.focused || !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// The delete confirmation swallows every key: y commits, anything else
	// cancels. A single keypress can never delete.
	if m.confirmingDelete {
		m.confirmingDelete = false
		if key.Matches(keyMsg, keys.Confirm) {
			email := m.account.Email
			return m, func() tea.Msg { return deleteConfirmedMsg{email: email} }
		}
		return m, nil
	}

	if m.notFound {
		switch {
		case key.Matches(keyMsg, keys.Reload):
			return m, func() tea.Msg { return reloadRequestMsg{} }
		case key.Matches(keyMsg, keys.Back):
			return m, func() tea.Msg { return closeDetailMsg{} }
		}
		return m, nil
	}

	// While awaiting a code the text input owns most keys.
	if m.state == authAwaitingCode {
		switch {
		case key.Matches(keyMsg, keys.Enter):
			// Verify is disabled while the code field is empty.
			if m.codeInput.Value() == "" {
				return m, nil
			}
			cmd := m.beginAuthCmd(m.codeInput.Value())
			return m, cmd

		case key.Matches(keyMsg, keys.Back):
			// Leave the prompt; the typed code is kept for a later retry.
			m.state = authIdle
			m.codeInput.Blur()
			return m, nil
		}

		// Validate alone does not stop the insertion, so non-digit runes are
		// filtered out before the input ever sees them.
		if keyMsg.Type == tea.KeyRunes {
			keyMsg.Runes = digitRunes(keyMsg.Runes)
			if len(keyMsg.Runes) == 0 {
				return m, nil
			}
		}

		var cmd tea.Cmd
		m.codeInput, cmd = m.codeInput.Update(keyMsg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Auth):
		// The trigger is a no-op while a call is in flight.
		if m.state != authIdle {
			return m, nil
		}
		cmd := m.beginAuthCmd("")
		return m, cmd

	case key.Matches(keyMsg, keys.Delete):
		m.confirmingDelete = true
		return m, nil

	case key.Matches(keyMsg, keys.Export):
		email := m.account.Email
		return m, func() tea.Msg { return exportRequestMsg{email: email} }

	case key.Matches(keyMsg, keys.Back):
		return m, func() tea.Msg { return closeDetailMsg{} }
	}

	return m, nil
}

// beginAuthCmd transitions into the in-flight state and emits the request
// for the root model to execute.
func (m *detailModel) beginAuthCmd(code string) tea.Cmd {
	m.state = authInFlight
	m.confirmingDelete = false
	email := m.account.Email
	return func() tea.Msg { return reauthRequestMsg{email: email, code: code} }
}

// AuthSucceeded installs the refreshed record and resets all pending
// authentication state.
func (m *detailModel) AuthSucceeded(account *domain.Account) {
	m.account = account
	m.state = authIdle
	m.codeInput.Reset()
	m.codeInput.Blur()
}

// AuthFailed routes an authentication failure: a code challenge opens the
// code prompt without clearing a previously typed code, any other failure
// returns to idle.
func (m *detailModel) AuthFailed(err error) {
	if auth.CodeRequired(err) {
		m.state = authAwaitingCode
		m.codeInput.Focus()
		return
	}
	m.state = authIdle
	m.codeInput.Blur()
}

// Show displays an account in the detail view.
func (m *detailModel) Show(account *domain.Account) {
	m.account = account
	m.notFound = false
	m.visible = true
	m.state = authIdle
	m.confirmingDelete = false
	m.codeInput.Reset()
	m.codeInput.Blur()
}

// ShowNotFound displays the terminal not-found state for an email with no
// stored account.
func (m *detailModel) ShowNotFound() {
	m.account = nil
	m.notFound = true
	m.visible = true
	m.state = authIdle
	m.confirmingDelete = false
}

// Close hides the detail view and drops its state.
func (m *detailModel) Close() {
	m.visible = false
	m.account = nil
	m.notFound = false
	m.state = authIdle
	m.confirmingDelete = false
	m.codeInput.Reset()
	m.codeInput.Blur()
}

// SetSize updates the detail dimensions.
func (m *detailModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// IsVisible returns whether the detail view is currently shown.
func (m detailModel) IsVisible() bool {
	return m.visible
}

// InFlight reports whether an authentication call is running.
func (m detailModel) InFlight() bool {
	return m.state == authInFlight
}

func (m detailModel) View() string {
	if !m.visible || m.width == 0 {
		return ""
	}

	if m.notFound {
		return mutedTextStyle.Render("Account not found. Press r to reload accounts or esc to go back.")
	}

	a := m.account
	var b strings.Builder

	b.WriteString(titleStyle.Render(a.DisplayName()))
	b.WriteString("\n\n")

	writeField(&b, "Email", a.Email)
	writeField(&b, "Apple ID", a.AppleID)
	writeField(&b, "Name", strings.TrimSpace(a.FirstName+" "+a.LastName))

	region := a.Store
	if country, ok := domain.StoreIDToCountry(a.Store); ok {
		region = fmt.Sprintf("%s (%s)", country, a.Store)
	}
	writeField(&b, "Store", region)

	writeField(&b, "Password", m.secret(a.Password))
	writeField(&b, "Token", m.secret(a.PasswordToken))
	writeField(&b, "DSID", a.DirectoryServicesIdentifier)
	writeField(&b, "Device", a.DeviceIdentifier)
	if a.Pod != "" {
		writeField(&b, "Pod", a.Pod)
	}
	writeField(&b, "Cookies", fmt.Sprintf("%d stored", len(a.Cookies)))

	switch m.state {
	case authInFlight:
		b.WriteString("\n")
		b.WriteString(mutedTextStyle.Render("Authenticating..."))
	case authAwaitingCode:
		b.WriteString("\n")
		b.WriteString("Verification code: ")
		b.WriteString(m.codeInput.View())
		b.WriteString("\n")
		b.WriteString(mutedTextStyle.Render("enter:verify  esc:cancel"))
	}

	if m.confirmingDelete {
		b.WriteString("\n\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("Delete %s? This cannot be undone. y:confirm  any other key:cancel", a.Email)))
	}

	return b.String()
}

func (m detailModel) secret(v string) string {
	if v == "" {
		return mutedTextStyle.Render("(not set)")
	}
	if m.showSecrets {
		return v
	}
	return strings.Repeat("•", 8)
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(mutedTextStyle.Render(fmt.Sprintf("%-10s", label)))
	b.WriteString(value)
	b.WriteByte('\n')
}
