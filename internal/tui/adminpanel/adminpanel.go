// ABOUTME: Admin screen for the TUI studio
// ABOUTME: User table with role, status, plan, and credit mutations

package adminpanel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
	"github.com/jothyanandanch/ssnapify/internal/tui/widgets"
)

// mode represents the current input mode
type mode int

const (
	modeBrowse mode = iota
	modeCredits
	modeConfirmLogout
)

// SetCreditsMsg asks the app to set a user's credit balance
type SetCreditsMsg struct {
	UserID  int
	Credits int
}

// ToggleRoleMsg asks the app to flip a user's admin role
type ToggleRoleMsg struct {
	UserID    int
	MakeAdmin bool
}

// ToggleStatusMsg asks the app to flip a user's active state
type ToggleStatusMsg struct {
	UserID int
	Active bool
}

// CyclePlanMsg asks the app to move a user to the next plan
type CyclePlanMsg struct {
	UserID int
	PlanID int
}

// ForceLogoutMsg asks the app to invalidate all of a user's sessions
type ForceLogoutMsg struct {
	UserID int
}

// RefreshMsg asks the app to reload the user list
type RefreshMsg struct{}

// BackMsg is sent when the user leaves the admin screen
type BackMsg struct{}

// Panel is the admin screen model
type Panel struct {
	adminID int // the signed-in admin, for the self-demotion guard
	users   []client.User
	health  []*client.HealthStatus
	cursor  int
	mode    mode
	input   textinput.Model
	notice  string
	height  int
}

// New creates the admin panel. adminID is the signed-in admin's user ID.
func New(adminID int, users []client.User) *Panel {
	input := textinput.New()
	input.Placeholder = "credits"
	input.CharLimit = 6
	input.Width = 10

	return &Panel{
		adminID: adminID,
		users:   users,
		input:   input,
		height:  15,
	}
}

// SetUsers replaces the user list after a reload
func (p *Panel) SetUsers(users []client.User) {
	p.users = users
	if p.cursor >= len(users) {
		p.cursor = len(users) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Patch applies a confirmed mutation to one row. The backend only
// acknowledges mutations, so the row keeps its loaded fields and takes
// just the changed one.
func (p *Panel) Patch(userID int, apply func(*client.User)) {
	if apply == nil {
		return
	}
	for i := range p.users {
		if p.users[i].ID == userID {
			apply(&p.users[i])
			return
		}
	}
}

// SetHealth updates the service health badges
func (p *Panel) SetHealth(statuses []*client.HealthStatus) {
	p.health = statuses
}

// SetNotice shows a transient message under the table
func (p *Panel) SetNotice(msg string) {
	p.notice = msg
}

// SetHeight sets how many table rows may render
func (p *Panel) SetHeight(h int) {
	if h > 0 {
		p.height = h
	}
}

// Current returns the user under the cursor
func (p *Panel) Current() (*client.User, bool) {
	if p.cursor < 0 || p.cursor >= len(p.users) {
		return nil, false
	}
	return &p.users[p.cursor], true
}

// Update handles key input
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.mode == modeCredits {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}
		return p, nil
	}

	switch p.mode {
	case modeCredits:
		return p.updateCredits(key)
	case modeConfirmLogout:
		return p.updateConfirmLogout(key)
	}
	return p.updateBrowse(key)
}

func (p *Panel) updateBrowse(key tea.KeyMsg) (*Panel, tea.Cmd) {
	p.notice = ""

	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.users)-1 {
			p.cursor++
		}
	case "c":
		if _, ok := p.Current(); ok {
			p.mode = modeCredits
			p.input.SetValue("")
			return p, p.input.Focus()
		}
	case "r":
		user, ok := p.Current()
		if !ok {
			break
		}
		// Demoting yourself would lock this session out of the panel.
		if user.ID == p.adminID && user.IsAdmin {
			p.notice = "Cannot revoke your own admin role. Ask another admin."
			break
		}
		id, makeAdmin := user.ID, !user.IsAdmin
		return p, func() tea.Msg {
			return ToggleRoleMsg{UserID: id, MakeAdmin: makeAdmin}
		}
	case "s":
		user, ok := p.Current()
		if !ok {
			break
		}
		id, active := user.ID, !user.IsActive
		return p, func() tea.Msg {
			return ToggleStatusMsg{UserID: id, Active: active}
		}
	case "p":
		user, ok := p.Current()
		if !ok {
			break
		}
		next := user.PlanID%3 + 1
		id := user.ID
		return p, func() tea.Msg {
			return CyclePlanMsg{UserID: id, PlanID: next}
		}
	case "f":
		if _, ok := p.Current(); ok {
			p.mode = modeConfirmLogout
		}
	case "R":
		return p, func() tea.Msg { return RefreshMsg{} }
	case "b", "esc":
		return p, func() tea.Msg { return BackMsg{} }
	}
	return p, nil
}

func (p *Panel) updateCredits(key tea.KeyMsg) (*Panel, tea.Cmd) {
	switch key.String() {
	case "enter":
		user, ok := p.Current()
		if !ok {
			p.mode = modeBrowse
			return p, nil
		}
		credits, err := strconv.Atoi(strings.TrimSpace(p.input.Value()))
		if err != nil || credits < 0 {
			p.notice = "Enter a non-negative number"
			return p, nil
		}
		p.mode = modeBrowse
		p.input.Blur()
		id := user.ID
		return p, func() tea.Msg {
			return SetCreditsMsg{UserID: id, Credits: credits}
		}
	case "esc":
		p.mode = modeBrowse
		p.input.Blur()
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(key)
	return p, cmd
}

func (p *Panel) updateConfirmLogout(key tea.KeyMsg) (*Panel, tea.Cmd) {
	switch key.String() {
	case "y", "Y", "enter":
		p.mode = modeBrowse
		if user, ok := p.Current(); ok {
			id := user.ID
			return p, func() tea.Msg {
				return ForceLogoutMsg{UserID: id}
			}
		}
	case "n", "N", "esc":
		p.mode = modeBrowse
	}
	return p, nil
}

// View renders the admin panel
func (p *Panel) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Users.String() + " User management"))
	sb.WriteString("\n")

	if len(p.health) > 0 {
		var badges []string
		for _, status := range p.health {
			badges = append(badges, status.Service+" "+widgets.HealthBadge(status.Healthy))
		}
		sb.WriteString(strings.Join(badges, "  "))
		sb.WriteString("\n\n")
	}

	admins, active := p.quickStats()
	sb.WriteString(fmt.Sprintf("%d user(s) · %d admin(s) · %d active\n\n", len(p.users), admins, active))

	if len(p.users) == 0 {
		sb.WriteString(styles.Subtitle.Render("No users loaded."))
		return sb.String()
	}

	// The plan badge carries ANSI styling that would break printf column
	// widths, so it renders last.
	sb.WriteString(fmt.Sprintf("  %-5s %-26s %-9s %-10s %-9s %s\n",
		"ID", "EMAIL", "ROLE", "STATUS", "CREDITS", "PLAN"))

	start, end := p.window()
	for i := start; i < end; i++ {
		u := p.users[i]
		line := fmt.Sprintf("%-5d %-26s %-9s %-10s %-9d %s",
			u.ID,
			format.Truncate(u.Email, 26),
			roleText(u.IsAdmin),
			statusText(u.IsActive),
			u.CreditBalance,
			widgets.PlanBadge(u.PlanID))

		switch {
		case i == p.cursor:
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		case !u.IsActive:
			sb.WriteString(styles.Dimmed.Render("  " + line))
		default:
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	switch p.mode {
	case modeCredits:
		sb.WriteString("\nSet credits: " + p.input.View() + "  (enter confirm, esc cancel)\n")
	case modeConfirmLogout:
		if user, ok := p.Current(); ok {
			sb.WriteString(fmt.Sprintf("\nSign user %d out of all devices? (y/n)\n", user.ID))
		}
	}

	if p.notice != "" {
		sb.WriteString("\n" + styles.StatusWarning.Render(p.notice) + "\n")
	}

	sb.WriteString(styles.Help.Render("c credits · r role · s status · p plan · f force-logout · R refresh · b back"))
	return sb.String()
}

func (p *Panel) quickStats() (admins, active int) {
	for _, u := range p.users {
		if u.IsAdmin {
			admins++
		}
		if u.IsActive {
			active++
		}
	}
	return admins, active
}

func (p *Panel) window() (int, int) {
	rows := p.height
	if rows <= 0 || rows >= len(p.users) {
		return 0, len(p.users)
	}
	start := p.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(p.users) {
		end = len(p.users)
		start = end - rows
	}
	return start, end
}

func roleText(isAdmin bool) string {
	if isAdmin {
		return "admin"
	}
	return "member"
}

func statusText(isActive bool) string {
	if isActive {
		return "active"
	}
	return "inactive"
}
