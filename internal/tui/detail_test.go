package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iola1999/AssppWeb/internal/auth"
	"github.com/iola1999/AssppWeb/internal/domain"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestDetail(t *testing.T) detailModel {
	t.Helper()
	d := newDetail(false)
	d.focused = true
	d.SetSize(80, 24)
	d.Show(&domain.Account{
		Email:            "a@b.com",
		Password:         "pw",
		DeviceIdentifier: "D1",
	})
	return d
}

func TestReauth_TriggerEntersInFlight(t *testing.T) {
	d := newTestDetail(t)

	d, cmd := d.Update(keyRune('a'))
	if cmd == nil {
		t.Fatal("authenticate key should emit a request")
	}
	req, ok := cmd().(reauthRequestMsg)
	if !ok {
		t.Fatalf("msg = %T, want reauthRequestMsg", cmd())
	}
	if req.email != "a@b.com" || req.code != "" {
		t.Errorf("request = %+v", req)
	}
	if !d.InFlight() {
		t.Error("state should be in flight after trigger")
	}
}

func TestReauth_TriggerDisabledWhileInFlight(t *testing.T) {
	d := newTestDetail(t)

	d, _ = d.Update(keyRune('a'))
	d, cmd := d.Update(keyRune('a'))
	if cmd != nil {
		t.Error("trigger should be a no-op while a call is in flight")
	}
}

func TestReauth_CodeRequiredOpensPromptAndKeepsCode(t *testing.T) {
	d := newTestDetail(t)
	d, _ = d.Update(keyRune('a'))

	d.AuthFailed(&auth.AuthError{Message: "code sent", CodeRequired: true})
	if d.state != authAwaitingCode {
		t.Fatalf("state = %v, want awaiting code", d.state)
	}

	// Type a partial code, fail again with a challenge: input survives.
	d.codeInput.SetValue("12")
	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with a code should submit")
	}
	req := cmd().(reauthRequestMsg)
	if req.code != "12" {
		t.Errorf("submitted code = %q, want %q", req.code, "12")
	}

	d.AuthFailed(&auth.AuthError{Message: "wrong code", CodeRequired: true})
	if d.codeInput.Value() != "12" {
		t.Errorf("code input = %q, want preserved %q", d.codeInput.Value(), "12")
	}
}

func TestReauth_EmptyCodeCannotSubmit(t *testing.T) {
	d := newTestDetail(t)
	d, _ = d.Update(keyRune('a'))
	d.AuthFailed(&auth.AuthError{Message: "code sent", CodeRequired: true})

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("verify should be disabled while the code field is empty")
	}
}

func TestReauth_CodeInputNumericOnly(t *testing.T) {
	d := newTestDetail(t)
	d, _ = d.Update(keyRune('a'))
	d.AuthFailed(&auth.AuthError{Message: "code sent", CodeRequired: true})

	for _, r := range "12ab34" {
		d, _ = d.Update(keyRune(r))
	}
	if got := d.codeInput.Value(); got != "1234" {
		t.Errorf("code input = %q, want digits only %q", got, "1234")
	}

	for _, r := range "567890" {
		d, _ = d.Update(keyRune(r))
	}
	if got := d.codeInput.Value(); len(got) > 6 {
		t.Errorf("code input = %q, want at most 6 characters", got)
	}
}

func TestReauth_PastedCodeKeepsOnlyDigits(t *testing.T) {
	d := newTestDetail(t)
	d, _ = d.Update(keyRune('a'))
	d.AuthFailed(&auth.AuthError{Message: "code sent", CodeRequired: true})

	// A paste arrives as a single multi-rune key message.
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("12-34 56")})
	if got := d.codeInput.Value(); got != "123456" {
		t.Errorf("code input = %q, want %q", got, "123456")
	}
}

func TestReauth_HardFailureResetsToIdle(t *testing.T) {
	d := newTestDetail(t)
	d, _ = d.Update(keyRune('a'))
	d.AuthFailed(&auth.AuthError{Message: "code sent", CodeRequired: true})
	d.codeInput.SetValue("123456")
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// A different kind of failure from the same flow: back to idle, no prompt.
	d.AuthFailed(&auth.AuthError{Message: "invalid password"})
	if d.state != authIdle {
		t.Errorf("state = %v, want idle after hard failure", d.state)
	}
}

func TestReauth_SuccessReplacesRecord(t *testing.T) {
	d := newTestDetail(t)
	d, _ = d.Update(keyRune('a'))

	refreshed := &domain.Account{
		Email:            "a@b.com",
		Password:         "pw",
		PasswordToken:    "fresh-token",
		DeviceIdentifier: "D1",
		Cookies:          []domain.Cookie{{Name: "sid", Value: "v"}},
	}
	d.AuthSucceeded(refreshed)

	if d.state != authIdle {
		t.Errorf("state = %v, want idle after success", d.state)
	}
	if d.account != refreshed {
		t.Error("account should be replaced with the authenticator's record")
	}
	if d.codeInput.Value() != "" {
		t.Errorf("code input = %q, want cleared after success", d.codeInput.Value())
	}
}

func TestDelete_RequiresConfirm(t *testing.T) {
	d := newTestDetail(t)

	d, cmd := d.Update(keyRune('d'))
	if cmd != nil {
		t.Error("first delete keypress must not emit a removal")
	}
	if !d.confirmingDelete {
		t.Fatal("delete should enter the confirm-pending state")
	}

	d, cmd = d.Update(keyRune('y'))
	if cmd == nil {
		t.Fatal("confirm should emit the removal")
	}
	del, ok := cmd().(deleteConfirmedMsg)
	if !ok {
		t.Fatalf("msg = %T, want deleteConfirmedMsg", cmd())
	}
	if del.email != "a@b.com" {
		t.Errorf("email = %q", del.email)
	}
	if d.confirmingDelete {
		t.Error("confirm state should be cleared after confirming")
	}
}

func TestDelete_CancelLeavesAccount(t *testing.T) {
	d := newTestDetail(t)

	d, _ = d.Update(keyRune('d'))
	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("cancel must not emit a removal")
	}
	if d.confirmingDelete {
		t.Error("confirm state should be cleared after cancel")
	}

	// A later plain keypress is not a confirm either.
	d, cmd = d.Update(keyRune('y'))
	if cmd != nil {
		t.Error("y outside confirm-pending must not delete")
	}
}

func TestExportKeyEmitsRequest(t *testing.T) {
	d := newTestDetail(t)

	d, cmd := d.Update(keyRune('e'))
	if cmd == nil {
		t.Fatal("export key should emit a request")
	}
	req, ok := cmd().(exportRequestMsg)
	if !ok {
		t.Fatalf("msg = %T, want exportRequestMsg", cmd())
	}
	if req.email != "a@b.com" {
		t.Errorf("email = %q", req.email)
	}
}

func TestNotFound_ReloadAndBack(t *testing.T) {
	d := newDetail(false)
	d.focused = true
	d.ShowNotFound()

	d, cmd := d.Update(keyRune('r'))
	if cmd == nil {
		t.Fatal("reload key should emit a request")
	}
	if _, ok := cmd().(reloadRequestMsg); !ok {
		t.Fatalf("msg = %T, want reloadRequestMsg", cmd())
	}

	d, cmd = d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should emit close")
	}
	if _, ok := cmd().(closeDetailMsg); !ok {
		t.Fatalf("msg = %T, want closeDetailMsg", cmd())
	}

	// Authentication is unavailable in the not-found state.
	d, cmd = d.Update(keyRune('a'))
	if cmd != nil {
		t.Error("authenticate should be a no-op for a missing account")
	}
}
