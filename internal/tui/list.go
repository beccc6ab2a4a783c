package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iola1999/AssppWeb/internal/domain"
)

// Messages emitted by listModel.

type accountSelectedMsg struct {
	email string
}

type importRequestMsg struct{}

type addRequestMsg struct{}

type reloadRequestMsg struct{}

// listModel displays the stored accounts.
type listModel struct {
	accounts []domain.Account
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
}

func newList() listModel {
	return listModel{}
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.accounts)-1 {
				m.cursor++
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Enter):
			if email := m.SelectedEmail(); email != "" {
				return m, func() tea.Msg { return accountSelectedMsg{email: email} }
			}

		case key.Matches(msg, keys.Import):
			return m, func() tea.Msg { return importRequestMsg{} }

		case key.Matches(msg, keys.Add):
			return m, func() tea.Msg { return addRequestMsg{} }

		case key.Matches(msg, keys.Reload):
			return m, func() tea.Msg { return reloadRequestMsg{} }
		}
	}

	return m, nil
}

func (m listModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if len(m.accounts) == 0 {
		return mutedTextStyle.Render("No accounts. Press n to add one or i to import from the clipboard.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Accounts"))
	b.WriteByte('\n')

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.accounts) {
		end = len(m.accounts)
	}

	for i := m.offset; i < end; i++ {
		b.WriteByte('\n')
		line := m.renderRow(i)
		if i == m.cursor && m.focused {
			line = selectedStyle.Width(m.width).Render(line)
		}
		b.WriteString(line)
	}

	return b.String()
}

// SetAccounts replaces the listed accounts, clamping the cursor.
func (m *listModel) SetAccounts(accounts []domain.Account) {
	m.accounts = accounts
	if len(accounts) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(accounts) {
		m.cursor = len(accounts) - 1
	}
	m.adjustScroll()
}

// SetSize updates the dimensions available for rendering.
func (m *listModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.adjustScroll()
}

// SelectedEmail returns the email of the highlighted account.
func (m listModel) SelectedEmail() string {
	if len(m.accounts) == 0 || m.cursor >= len(m.accounts) {
		return ""
	}
	return m.accounts[m.cursor].Email
}

// --- internal helpers ---

func (m listModel) visibleRows() int {
	// Two header lines (title + blank) share the height budget.
	rows := m.height - 2
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *listModel) adjustScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m listModel) renderRow(idx int) string {
	a := m.accounts[idx]

	region := ""
	if country, ok := domain.StoreIDToCountry(a.Store); ok {
		region = country
	} else if a.Store != "" {
		region = a.Store
	}

	state := "  "
	if !a.Usable() {
		state = warnStyle.Render("! ")
	}

	nameWidth := 28
	regionWidth := 18
	emailWidth := m.width - nameWidth - regionWidth - 6
	if emailWidth < 12 {
		emailWidth = 12
	}

	nameCol := lipgloss.NewStyle().Width(nameWidth).Render(truncate(a.DisplayName(), nameWidth))
	emailCol := mutedTextStyle.Width(emailWidth).Render(truncate(a.Email, emailWidth))
	regionCol := mutedTextStyle.Width(regionWidth).Render(truncate(region, regionWidth))

	return state + nameCol + "  " + emailCol + "  " + regionCol
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
