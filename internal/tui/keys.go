package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Add     key.Binding
	Import  key.Binding
	Export  key.Binding
	Auth    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Add:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new account")),
	Import:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
	Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	Auth:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "authenticate")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
