// ABOUTME: Tests for the gallery screen model
// ABOUTME: Verifies filtering, search, multi-select, and local removal

package gallery

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jothyanandanch/ssnapify/internal/client"
)

func testImages() []client.ImageAsset {
	now := time.Now()
	return []client.ImageAsset{
		{ID: 1, Title: "Beach", TransformationType: "", CreatedAt: now},
		{ID: 2, Title: "Beach enhanced", TransformationType: "enhance", CreatedAt: now},
		{ID: 3, Title: "Mountain", TransformationType: "remove_bg", CreatedAt: now},
		{ID: 4, Title: "Forest", TransformationType: "enhance", CreatedAt: now},
	}
}

func press(g *Gallery, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := g.Update(msg)
	return cmd
}

func TestGallery_FilterCycle(t *testing.T) {
	g := New(testImages())

	if g.Filter() != "all" || len(g.Visible()) != 4 {
		t.Fatalf("initial filter: %s, %d visible", g.Filter(), len(g.Visible()))
	}

	press(g, "f") // original
	if g.Filter() != "original" {
		t.Fatalf("expected original filter, got %s", g.Filter())
	}
	if len(g.Visible()) != 1 || g.Visible()[0].ID != 1 {
		t.Errorf("original filter should match only the untransformed image, got %v", g.Visible())
	}

	for g.Filter() != "enhance" {
		press(g, "f")
	}
	if len(g.Visible()) != 2 {
		t.Errorf("enhance filter should match 2 images, got %d", len(g.Visible()))
	}

	for g.Filter() != "all" {
		press(g, "f")
	}
	if len(g.Visible()) != 4 {
		t.Errorf("cycle should return to all, got %d visible", len(g.Visible()))
	}
}

func TestGallery_Search(t *testing.T) {
	g := New(testImages())

	press(g, "/")
	for _, r := range "beach" {
		press(g, string(r))
	}
	press(g, "enter")

	if len(g.Visible()) != 2 {
		t.Errorf("case-insensitive search should match 2 images, got %d", len(g.Visible()))
	}

	// Esc clears the search
	press(g, "/")
	press(g, "esc")
	if len(g.Visible()) != 4 {
		t.Errorf("cleared search should show all, got %d", len(g.Visible()))
	}
}

func TestGallery_MultiSelectDelete(t *testing.T) {
	g := New(testImages())

	press(g, " ") // select id 1
	press(g, "down")
	press(g, " ") // select id 2

	cmd := press(g, "d")
	if cmd == nil {
		t.Fatal("expected delete request command")
	}
	msg, ok := cmd().(DeleteRequestMsg)
	if !ok {
		t.Fatalf("expected DeleteRequestMsg, got %T", cmd())
	}
	if len(msg.IDs) != 2 {
		t.Errorf("expected 2 IDs, got %v", msg.IDs)
	}
}

func TestGallery_DeleteCursorFallback(t *testing.T) {
	g := New(testImages())
	press(g, "down") // cursor on id 2

	cmd := press(g, "d")
	msg := cmd().(DeleteRequestMsg)
	if len(msg.IDs) != 1 || msg.IDs[0] != 2 {
		t.Errorf("expected cursor image only, got %v", msg.IDs)
	}
}

func TestGallery_RemoveLocal(t *testing.T) {
	g := New(testImages())
	press(g, " ") // select id 1

	g.RemoveLocal(1)

	if len(g.Visible()) != 3 {
		t.Errorf("expected 3 images after removal, got %d", len(g.Visible()))
	}
	for _, img := range g.Visible() {
		if img.ID == 1 {
			t.Error("removed image still visible")
		}
	}
	// Selection of the removed image must not linger
	ids := g.SelectedIDs()
	for _, id := range ids {
		if id == 1 {
			t.Error("removed image still selected")
		}
	}
}

func TestGallery_CursorClampedAfterFilter(t *testing.T) {
	g := New(testImages())
	press(g, "down")
	press(g, "down")
	press(g, "down") // cursor on last

	for g.Filter() != "original" {
		press(g, "f")
	}
	if g.cursor >= len(g.Visible()) {
		t.Errorf("cursor %d out of range for %d visible", g.cursor, len(g.Visible()))
	}
}

func TestGallery_TransformRequest(t *testing.T) {
	g := New(testImages())

	cmd := press(g, "t")
	if cmd == nil {
		t.Fatal("expected transform request command")
	}
	msg, ok := cmd().(TransformRequestMsg)
	if !ok || msg.ID != 1 {
		t.Errorf("expected transform request for id 1, got %v", cmd())
	}
}
