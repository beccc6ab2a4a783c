package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/iola1999/AssppWeb/internal/domain"
)

// Messages emitted by addFormModel.

type addSubmitMsg struct {
	account *domain.Account
}

type cancelAddMsg struct{}

const (
	fieldEmail = iota
	fieldPassword
	fieldStore
	fieldDevice
	fieldCount
)

// addFormModel is the manual account entry form.
type addFormModel struct {
	inputs  []textinput.Model
	focus   int
	errText string
	width   int
	height  int
	visible bool
}

func newAddForm() addFormModel {
	inputs := make([]textinput.Model, fieldCount)

	email := textinput.New()
	email.Placeholder = "user@example.com"
	email.CharLimit = 128
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	inputs[fieldPassword] = password

	store := textinput.New()
	store.Placeholder = "143441 (optional)"
	store.CharLimit = 16
	inputs[fieldStore] = store

	device := textinput.New()
	device.Placeholder = "generated if empty"
	device.CharLimit = 64
	inputs[fieldDevice] = device

	return addFormModel{inputs: inputs}
}

func (m addFormModel) Update(msg tea.Msg) (addFormModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Back):
		return m, func() tea.Msg { return cancelAddMsg{} }

	case keyMsg.String() == "tab", keyMsg.String() == "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case keyMsg.String() == "shift+tab", keyMsg.String() == "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(keyMsg, keys.Enter):
		if m.focus < fieldCount-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m addFormModel) submit() (addFormModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if email == "" {
		m.errText = "email is required"
		m.setFocus(fieldEmail)
		return m, nil
	}
	if password == "" {
		m.errText = "password is required"
		m.setFocus(fieldPassword)
		return m, nil
	}

	device := strings.TrimSpace(m.inputs[fieldDevice].Value())
	if device == "" {
		device = uuid.NewString()
	}

	account := &domain.Account{
		Email:            email,
		Password:         password,
		Store:            strings.TrimSpace(m.inputs[fieldStore].Value()),
		DeviceIdentifier: device,
	}
	account.Normalize()

	m.errText = ""
	return m, func() tea.Msg { return addSubmitMsg{account: account} }
}

func (m addFormModel) View() string {
	if !m.visible {
		return ""
	}

	labels := [fieldCount]string{"Email", "Password", "Store", "Device ID"}

	var b strings.Builder
	b.WriteString(titleStyle.Render("New account"))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		marker := "  "
		if i == m.focus {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(mutedTextStyle.Render(labels[i] + ": "))
		b.WriteString(in.View())
		b.WriteByte('\n')
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.errText))
	}

	b.WriteString("\n\n")
	b.WriteString(mutedTextStyle.Render("tab:next field  enter:submit  esc:cancel"))
	return b.String()
}

// Open resets and shows the form.
func (m *addFormModel) Open() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.errText = ""
	m.visible = true
	m.setFocus(fieldEmail)
}

// Close hides the form.
func (m *addFormModel) Close() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is currently shown.
func (m addFormModel) IsVisible() bool {
	return m.visible
}

// SetSize updates the form dimensions.
func (m *addFormModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *addFormModel) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}
