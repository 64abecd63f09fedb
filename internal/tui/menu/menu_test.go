// ABOUTME: Tests for the main menu model
// ABOUTME: Verifies navigation bounds, selection messages, and admin entries

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestMenu_CursorBounds(t *testing.T) {
	m := New(false)

	m.Update(keyMsg("up"))
	if m.Cursor() != 0 {
		t.Errorf("cursor must not move above first entry, got %d", m.Cursor())
	}

	for i := 0; i < 20; i++ {
		m.Update(keyMsg("down"))
	}
	if m.Cursor() != len(m.entries)-1 {
		t.Errorf("cursor must stop at last entry, got %d", m.Cursor())
	}
}

func TestMenu_SelectEmitsMessage(t *testing.T) {
	m := New(false)
	m.Update(keyMsg("down")) // Gallery

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.Dest != DestGallery {
		t.Errorf("expected DestGallery, got %v", msg.Dest)
	}
}

func TestMenu_AdminEntryGated(t *testing.T) {
	member := New(false)
	if strings.Contains(member.View(), "Admin") {
		t.Error("member menu must not show Admin")
	}

	admin := New(true)
	if !strings.Contains(admin.View(), "Admin") {
		t.Error("admin menu must show Admin")
	}
}

func TestMenu_QuitShortcut(t *testing.T) {
	m := New(false)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected a command from q")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok || msg.Dest != DestQuit {
		t.Errorf("expected quit selection, got %v", cmd())
	}
}
