package tui

import "github.com/charmbracelet/lipgloss"

type bannerKind int

const (
	bannerInfo bannerKind = iota
	bannerSuccess
	bannerError
)

// statusBar renders the single-line banner plus key hints. Success and
// error banners are mutually exclusive; each new action starts by resetting
// the banner through one of the setters.
type statusBar struct {
	message   string
	kind      bannerKind
	width     int
	shortcuts string
}

func newStatusBar() statusBar {
	return statusBar{message: "Ready"}
}

func (s *statusBar) setMessage(msg string) {
	s.message = msg
	s.kind = bannerInfo
}

func (s *statusBar) setSuccess(msg string) {
	s.message = msg
	s.kind = bannerSuccess
}

func (s *statusBar) setError(msg string) {
	s.message = msg
	s.kind = bannerError
}

func (s statusBar) View() string {
	msgStyle := statusBarStyle
	switch s.kind {
	case bannerError:
		msgStyle = msgStyle.Foreground(errorColor)
	case bannerSuccess:
		msgStyle = msgStyle.Foreground(successColor)
	}

	left := s.message
	right := s.shortcuts

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + mutedTextStyle.Render(right)
	return msgStyle.Width(s.width).Render(content)
}
