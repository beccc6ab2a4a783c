package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iola1999/AssppWeb/internal/auth"
	"github.com/iola1999/AssppWeb/internal/domain"
	"github.com/iola1999/AssppWeb/internal/store"
	"github.com/iola1999/AssppWeb/internal/transfer"
)

// --- async result messages ---

type accountsLoadedMsg struct {
	accounts []domain.Account
	announce bool
}

type accountOpenedMsg struct {
	account  *domain.Account
	notFound bool
}

type authResultMsg struct {
	account *domain.Account
	err     error
}

type accountRemovedMsg struct {
	email string
}

type importedMsg struct {
	account *domain.Account
}

type exportedMsg struct {
	email string
}

type accountAddedMsg struct {
	account *domain.Account
}

type errMsg struct {
	err error
}

// --- root model ---

type model struct {
	store         store.Store
	authenticator auth.Authenticator

	list    listModel
	detail  detailModel
	addForm addFormModel

	statusBar statusBar

	width  int
	height int
}

// NewModel creates the root TUI model.
func NewModel(s store.Store, a auth.Authenticator, showSecrets bool) model {
	list := newList()
	list.focused = true

	return model{
		store:         s,
		authenticator: a,
		list:          list,
		detail:        newDetail(showSecrets),
		addForm:       newAddForm(),
		statusBar:     newStatusBar(),
	}
}

func (m model) Init() tea.Cmd {
	return m.loadAccountsCmd(true)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.resizeSubModels()
		return m, nil

	// --- async results ---

	case accountsLoadedMsg:
		m.list.SetAccounts(msg.accounts)
		// Only a load the user asked for reports a count; the silent reloads
		// that follow an action must not replace that action's banner.
		if msg.announce {
			m.statusBar.setMessage(fmt.Sprintf("Loaded %d accounts", len(msg.accounts)))
		}
		// A reload while the not-found state is shown retries the lookup.
		if m.detail.IsVisible() && m.detail.notFound {
			m.detail.Close()
			m.setFocusList()
		}
		return m, nil

	case accountOpenedMsg:
		if msg.notFound {
			m.detail.ShowNotFound()
		} else {
			m.detail.Show(msg.account)
		}
		m.setFocusDetail()
		return m, nil

	case authResultMsg:
		if msg.err != nil {
			m.detail.AuthFailed(msg.err)
			if auth.CodeRequired(msg.err) {
				// Guidance, not a fatal error.
				m.statusBar.setMessage(msg.err.Error())
			} else {
				m.statusBar.setError(msg.err.Error())
			}
			return m, nil
		}
		m.detail.AuthSucceeded(msg.account)
		m.statusBar.setSuccess(fmt.Sprintf("Re-authenticated %s", msg.account.Email))
		return m, m.loadAccountsCmd(false)

	case accountRemovedMsg:
		m.detail.Close()
		m.setFocusList()
		m.statusBar.setSuccess(fmt.Sprintf("Deleted %s", msg.email))
		return m, m.loadAccountsCmd(false)

	case importedMsg:
		m.detail.Show(msg.account)
		m.setFocusDetail()
		m.statusBar.setSuccess(fmt.Sprintf("Imported %s", msg.account.Email))
		return m, m.loadAccountsCmd(false)

	case exportedMsg:
		m.statusBar.setSuccess(fmt.Sprintf("Copied %s to clipboard", msg.email))
		return m, nil

	case accountAddedMsg:
		m.addForm.Close()
		m.detail.Show(msg.account)
		m.setFocusDetail()
		m.statusBar.setSuccess(fmt.Sprintf("Added %s", msg.account.Email))
		return m, m.loadAccountsCmd(false)

	case errMsg:
		m.statusBar.setError(msg.err.Error())
		return m, nil

	// --- sub-model requests ---

	case accountSelectedMsg:
		m.statusBar.setMessage("Opening account...")
		return m, m.openAccountCmd(msg.email)

	case reloadRequestMsg:
		m.statusBar.setMessage("Reloading accounts...")
		return m, m.loadAccountsCmd(true)

	case reauthRequestMsg:
		m.statusBar.setMessage("Authenticating...")
		return m, m.authenticateCmd(msg.email, msg.code)

	case deleteConfirmedMsg:
		m.statusBar.setMessage("Deleting account...")
		return m, m.removeAccountCmd(msg.email)

	case exportRequestMsg:
		m.statusBar.setMessage("Exporting to clipboard...")
		return m, m.exportCmd(msg.email)

	case importRequestMsg:
		m.statusBar.setMessage("Importing from clipboard...")
		return m, m.importCmd()

	case addRequestMsg:
		m.addForm.Open()
		m.setFocusAdd()
		return m, nil

	case addSubmitMsg:
		m.statusBar.setMessage("Adding account...")
		return m, m.addAccountCmd(msg.account)

	case cancelAddMsg:
		m.addForm.Close()
		m.setFocusList()
		return m, nil

	case closeDetailMsg:
		m.detail.Close()
		m.setFocusList()
		return m, nil

	// --- key events ---

	case tea.KeyMsg:
		// Quit only from the list; text entry screens own their keys.
		if m.list.focused && key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}

		switch {
		case m.addForm.IsVisible():
			var cmd tea.Cmd
			m.addForm, cmd = m.addForm.Update(msg)
			return m, cmd

		case m.detail.IsVisible():
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd

		default:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	contentHeight := m.height - 3

	var content string
	switch {
	case m.addForm.IsVisible():
		content = detailStyle.
			Width(m.width - 2).
			Height(contentHeight).
			Render(m.addForm.View())
	case m.detail.IsVisible():
		content = detailStyle.
			Width(m.width - 2).
			Height(contentHeight).
			Render(m.detail.View())
	default:
		content = listStyle.
			Width(m.width - 2).
			Height(contentHeight).
			Render(m.list.View())
	}

	sb := m.statusBar
	sb.shortcuts = m.shortcuts()

	return lipgloss.JoinVertical(lipgloss.Left, content, sb.View())
}

func (m model) shortcuts() string {
	switch {
	case m.addForm.IsVisible():
		return "tab:next  enter:submit  esc:cancel"
	case m.detail.IsVisible():
		if m.detail.notFound {
			return "r:reload  esc:back"
		}
		return "a:authenticate  e:export  d:delete  esc:back"
	default:
		return "j/k:nav  enter:open  n:new  i:import  r:reload  q:quit"
	}
}

// --- focus management ---

func (m *model) setFocusList() {
	m.list.focused = true
	m.detail.focused = false
}

func (m *model) setFocusDetail() {
	m.list.focused = false
	m.detail.focused = true
}

func (m *model) setFocusAdd() {
	m.list.focused = false
	m.detail.focused = false
}

func (m *model) resizeSubModels() {
	contentHeight := m.height - 3
	// listStyle/detailStyle: border(2h + 2v) + padding.
	m.list.SetSize(m.width-6, contentHeight-2)
	m.detail.SetSize(m.width-8, contentHeight-4)
	m.addForm.SetSize(m.width-8, contentHeight-4)
}

// --- async commands ---

func (m model) loadAccountsCmd(announce bool) tea.Cmd {
	return func() tea.Msg {
		accounts, err := m.store.ListAccounts(context.Background())
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to load accounts: %w", err)}
		}
		return accountsLoadedMsg{accounts: accounts, announce: announce}
	}
}

func (m model) openAccountCmd(email string) tea.Cmd {
	return func() tea.Msg {
		account, err := m.store.GetAccount(context.Background(), email)
		if errors.Is(err, store.ErrNotFound) {
			return accountOpenedMsg{notFound: true}
		}
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to open account: %w", err)}
		}
		return accountOpenedMsg{account: account}
	}
}

// authenticateCmd runs one authentication attempt and, on success, replaces
// the stored record with the authenticator's result before reporting back.
func (m model) authenticateCmd(email, code string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		account, err := m.store.GetAccount(ctx, email)
		if err != nil {
			return authResultMsg{err: fmt.Errorf("failed to load account: %w", err)}
		}

		refreshed, err := m.authenticator.Authenticate(ctx, auth.CredentialsFor(account, code))
		if err != nil {
			return authResultMsg{err: err}
		}

		if err := m.store.UpdateAccount(ctx, refreshed); err != nil {
			return authResultMsg{err: fmt.Errorf("failed to store refreshed account: %w", err)}
		}
		return authResultMsg{account: refreshed}
	}
}

func (m model) removeAccountCmd(email string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RemoveAccount(context.Background(), email); err != nil {
			return errMsg{err: fmt.Errorf("failed to delete account: %w", err)}
		}
		return accountRemovedMsg{email: email}
	}
}

func (m model) exportCmd(email string) tea.Cmd {
	return func() tea.Msg {
		account, err := m.store.GetAccount(context.Background(), email)
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to load account: %w", err)}
		}
		if err := transfer.ExportToClipboard(account); err != nil {
			return errMsg{err: err}
		}
		return exportedMsg{email: email}
	}
}

func (m model) importCmd() tea.Cmd {
	return func() tea.Msg {
		account, err := transfer.ImportFromClipboard()
		if err != nil {
			return errMsg{err: err}
		}
		if err := m.store.AddAccount(context.Background(), account); err != nil {
			return errMsg{err: fmt.Errorf("failed to store imported account: %w", err)}
		}
		return importedMsg{account: account}
	}
}

func (m model) addAccountCmd(account *domain.Account) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.AddAccount(context.Background(), account); err != nil {
			return errMsg{err: fmt.Errorf("failed to add account: %w", err)}
		}
		return accountAddedMsg{account: account}
	}
}

// Run starts the Bubble Tea application.
func Run(s store.Store, a auth.Authenticator, showSecrets bool) error {
	prog := tea.NewProgram(
		NewModel(s, a, showSecrets),
		tea.WithAltScreen(),
	)
	_, err := prog.Run()
	return err
}
