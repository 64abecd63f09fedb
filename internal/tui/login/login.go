// ABOUTME: Login screen for the TUI studio
// ABOUTME: Shows the OAuth URL and captures the pasted callback token

package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
)

// TokenSubmittedMsg is sent when the user submits the pasted URL or token
type TokenSubmittedMsg struct {
	Raw string
}

// CancelledMsg is sent when the user backs out of login
type CancelledMsg struct{}

// Login is the login screen model
type Login struct {
	loginURL string
	input    textinput.Model
	errMsg   string
}

// New creates the login screen pointing at the provider URL
func New(loginURL string) *Login {
	input := textinput.New()
	input.Placeholder = "https://...?token=..."
	input.CharLimit = 2048
	input.Width = 60
	input.Focus()

	return &Login{
		loginURL: loginURL,
		input:    input,
	}
}

// SetError shows an error under the input (e.g. a rejected token)
func (l *Login) SetError(msg string) {
	l.errMsg = msg
}

// Init implements tea.Model conventions for child models
func (l *Login) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input
func (l *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			raw := strings.TrimSpace(l.input.Value())
			if raw == "" {
				l.errMsg = "Paste the redirect URL first"
				return l, nil
			}
			return l, func() tea.Msg {
				return TokenSubmittedMsg{Raw: raw}
			}
		case "esc":
			return l, func() tea.Msg {
				return CancelledMsg{}
			}
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// View renders the login screen
func (l *Login) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Login.String() + " Sign in with Google"))
	sb.WriteString("\n\n")
	sb.WriteString("Open this URL in your browser:\n\n")
	sb.WriteString("  " + styles.ValueStyle.Render(l.loginURL))
	sb.WriteString("\n\n")
	sb.WriteString("After signing in, paste the redirect URL (or just the token):\n\n")
	sb.WriteString(l.input.View())
	sb.WriteString("\n")

	if l.errMsg != "" {
		sb.WriteString("\n" + styles.StatusCritical.Render(l.errMsg) + "\n")
	}

	sb.WriteString(styles.Help.Render("enter submit · esc quit"))
	return sb.String()
}
