// ABOUTME: Gallery screen for the TUI studio
// ABOUTME: Browsable image list with search, type filter, and multi-select delete

package gallery

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
)

// filterCycle is the order the type filter steps through
var filterCycle = []string{
	"all",
	"original",
	"restore",
	"remove_bg",
	"remove_obj",
	"enhance",
	"replace_bg",
	"generative_fill",
}

// DeleteRequestMsg asks the app to delete the given image IDs
type DeleteRequestMsg struct {
	IDs []int
}

// TransformRequestMsg asks the app to open the transform flow for an image
type TransformRequestMsg struct {
	ID int
}

// BackMsg is sent when the user leaves the gallery
type BackMsg struct{}

// Gallery is the gallery screen model
type Gallery struct {
	images    []client.ImageAsset
	visible   []client.ImageAsset
	cursor    int
	selected  map[int]bool
	filterIdx int
	search    textinput.Model
	searching bool
	height    int
}

// New creates a gallery over the given images
func New(images []client.ImageAsset) *Gallery {
	search := textinput.New()
	search.Placeholder = "search titles"
	search.CharLimit = 128
	search.Width = 30

	g := &Gallery{
		images:   images,
		selected: make(map[int]bool),
		search:   search,
		height:   20,
	}
	g.applyFilters()
	return g
}

// SetImages replaces the backing list, keeping filters applied.
// Used after refresh and after a delete round-trip.
func (g *Gallery) SetImages(images []client.ImageAsset) {
	g.images = images
	g.applyFilters()
}

// RemoveLocal drops an image from the backing list without a server
// round-trip, so a confirmed delete disappears immediately.
func (g *Gallery) RemoveLocal(id int) {
	g.images, _ = client.RemoveByID(g.images, id)
	delete(g.selected, id)
	g.applyFilters()
}

// SetHeight sets how many rows the list may use
func (g *Gallery) SetHeight(h int) {
	if h > 0 {
		g.height = h
	}
}

// Filter returns the active transformation filter
func (g *Gallery) Filter() string {
	return filterCycle[g.filterIdx]
}

// Visible returns the images after filter and search
func (g *Gallery) Visible() []client.ImageAsset {
	return g.visible
}

// SelectedIDs returns the multi-selected image IDs, or the cursor image
// when nothing is explicitly selected.
func (g *Gallery) SelectedIDs() []int {
	var ids []int
	for id, on := range g.selected {
		if on {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 && g.cursor < len(g.visible) {
		ids = append(ids, g.visible[g.cursor].ID)
	}
	return ids
}

func (g *Gallery) applyFilters() {
	g.visible = client.FilterByType(g.images, g.Filter())
	if query := g.search.Value(); query != "" {
		g.visible = client.SearchByTitle(g.visible, query)
	}
	if g.cursor >= len(g.visible) {
		g.cursor = len(g.visible) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

// Update handles key input
func (g *Gallery) Update(msg tea.Msg) (*Gallery, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if g.searching {
			var cmd tea.Cmd
			g.search, cmd = g.search.Update(msg)
			return g, cmd
		}
		return g, nil
	}

	if g.searching {
		switch key.String() {
		case "enter", "esc":
			g.searching = false
			g.search.Blur()
			if key.String() == "esc" {
				g.search.SetValue("")
			}
			g.applyFilters()
			return g, nil
		default:
			var cmd tea.Cmd
			g.search, cmd = g.search.Update(msg)
			g.applyFilters()
			return g, cmd
		}
	}

	switch key.String() {
	case "up", "k":
		if g.cursor > 0 {
			g.cursor--
		}
	case "down", "j":
		if g.cursor < len(g.visible)-1 {
			g.cursor++
		}
	case "f":
		g.filterIdx = (g.filterIdx + 1) % len(filterCycle)
		g.applyFilters()
	case "/":
		g.searching = true
		return g, g.search.Focus()
	case " ":
		if g.cursor < len(g.visible) {
			id := g.visible[g.cursor].ID
			g.selected[id] = !g.selected[id]
		}
	case "d":
		ids := g.SelectedIDs()
		if len(ids) > 0 {
			return g, func() tea.Msg {
				return DeleteRequestMsg{IDs: ids}
			}
		}
	case "t":
		if g.cursor < len(g.visible) {
			id := g.visible[g.cursor].ID
			return g, func() tea.Msg {
				return TransformRequestMsg{ID: id}
			}
		}
	case "b", "esc":
		return g, func() tea.Msg {
			return BackMsg{}
		}
	}
	return g, nil
}

// View renders the gallery
func (g *Gallery) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("%s Gallery · filter: %s", icons.Gallery.String(), g.Filter())
	sb.WriteString(styles.Title.Render(header))
	sb.WriteString("\n")

	if g.searching || g.search.Value() != "" {
		sb.WriteString(icons.Search.String() + " " + g.search.View() + "\n")
	}
	sb.WriteString("\n")

	if len(g.visible) == 0 {
		sb.WriteString(styles.Subtitle.Render("No images match."))
		return sb.String()
	}

	start, end := g.window()
	for i := start; i < end; i++ {
		img := g.visible[i]

		marker := " "
		if g.selected[img.ID] {
			marker = "*"
		}

		title := img.Title
		if title == "" {
			title = "(untitled)"
		}

		line := fmt.Sprintf("%s %-5d %-28s %-16s %s",
			marker,
			img.ID,
			format.Truncate(title, 28),
			config.TransformationLabel(img.TransformationType),
			format.TimeSince(img.CreatedAt))

		if i == g.cursor {
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n%d of %d image(s)", len(g.visible), len(g.images)))
	return sb.String()
}

// window returns the visible slice bounds around the cursor
func (g *Gallery) window() (int, int) {
	rows := g.height
	if rows <= 0 || rows >= len(g.visible) {
		return 0, len(g.visible)
	}

	start := g.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(g.visible) {
		end = len(g.visible)
		start = end - rows
	}
	return start, end
}
