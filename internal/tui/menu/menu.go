// ABOUTME: Main menu for the TUI studio
// ABOUTME: Cursor-based navigation between the studio's screens

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
)

// Destination identifies a studio screen reachable from the menu
type Destination int

const (
	DestDashboard Destination = iota
	DestGallery
	DestUpload
	DestPricing
	DestSupport
	DestAdmin
	DestLogout
	DestQuit
)

// SelectedMsg is sent when the user picks a destination
type SelectedMsg struct {
	Dest Destination
}

type entry struct {
	icon  icons.Icon
	label string
	dest  Destination
}

// Menu is the main menu model
type Menu struct {
	entries []entry
	cursor  int
}

// New creates the menu. Admin-only entries appear only when isAdmin is set.
func New(isAdmin bool) *Menu {
	entries := []entry{
		{icons.Image, "Dashboard", DestDashboard},
		{icons.Gallery, "Gallery", DestGallery},
		{icons.Upload, "Upload", DestUpload},
		{icons.Plan, "Pricing", DestPricing},
		{icons.Support, "Support", DestSupport},
	}
	if isAdmin {
		entries = append(entries, entry{icons.Users, "Admin", DestAdmin})
	}
	entries = append(entries,
		entry{icons.Logout, "Log out", DestLogout},
		entry{icons.Quit, "Quit", DestQuit},
	)
	return &Menu{entries: entries}
}

// Update handles key input
func (m *Menu) Update(msg tea.Msg) (*Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		dest := m.entries[m.cursor].dest
		return m, func() tea.Msg {
			return SelectedMsg{Dest: dest}
		}
	case "q":
		return m, func() tea.Msg {
			return SelectedMsg{Dest: DestQuit}
		}
	}
	return m, nil
}

// View renders the menu
func (m *Menu) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("ssnapify studio"))
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		line := fmt.Sprintf("%s %s", e.icon.String(), e.label)
		if i == m.cursor {
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cursor returns the current cursor position
func (m *Menu) Cursor() int {
	return m.cursor
}
