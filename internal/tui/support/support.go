// ABOUTME: Support screen for the TUI studio
// ABOUTME: Embedded huh form for filing a support ticket

package support

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
)

// SubmitMsg carries the completed ticket to the app
type SubmitMsg struct {
	Name    string
	Subject string
	Message string
}

// CancelledMsg is sent when the user abandons the form
type CancelledMsg struct{}

// Support is the support ticket screen model
type Support struct {
	form    *huh.Form
	name    string
	subject string
	message string
	sent    bool
	errMsg  string
}

// New creates the support form, pre-filling the sender name
func New(defaultName string) *Support {
	s := &Support{name: defaultName}
	s.form = s.buildForm()
	return s
}

func (s *Support) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&s.name),
			huh.NewInput().
				Title("Subject").
				Validate(requireText("subject")).
				Value(&s.subject),
			huh.NewText().
				Title("Message").
				Validate(requireText("message")).
				Value(&s.message),
		),
	).WithTheme(huh.ThemeBase())
}

func requireText(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return &emptyFieldError{field: field}
		}
		return nil
	}
}

type emptyFieldError struct{ field string }

func (e *emptyFieldError) Error() string {
	return e.field + " must not be empty"
}

// MarkSent switches the screen into its confirmation state
func (s *Support) MarkSent() {
	s.sent = true
}

// SetError shows a submit failure and reopens the form
func (s *Support) SetError(msg string) {
	s.errMsg = msg
	s.form = s.buildForm()
}

// Init implements the child-model convention
func (s *Support) Init() tea.Cmd {
	return s.form.Init()
}

// Update drives the embedded form
func (s *Support) Update(msg tea.Msg) (*Support, tea.Cmd) {
	if s.sent {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "enter", "esc", "b":
				return s, func() tea.Msg { return CancelledMsg{} }
			}
		}
		return s, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return s, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		return s, func() tea.Msg {
			return SubmitMsg{
				Name:    strings.TrimSpace(s.name),
				Subject: strings.TrimSpace(s.subject),
				Message: strings.TrimSpace(s.message),
			}
		}
	}
	return s, cmd
}

// View renders the support screen
func (s *Support) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Support.String() + " Support"))
	sb.WriteString("\n")

	if s.sent {
		sb.WriteString(styles.StatusOK.Render("✓ Ticket submitted. The team will reply by email."))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("enter back"))
		return sb.String()
	}

	if s.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render("Error: "+s.errMsg) + "\n\n")
	}

	sb.WriteString(s.form.View())
	sb.WriteString(styles.Help.Render("esc cancel"))
	return sb.String()
}
