// ABOUTME: Dashboard screen for the TUI studio
// ABOUTME: Account overview with credit balance, gallery stats, and recent work

package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
	"github.com/jothyanandanch/ssnapify/internal/tui/widgets"
)

const recentCount = 5

// Dashboard is the account overview screen
type Dashboard struct {
	user    *client.User
	credits *client.CreditInfo
	images  []client.ImageAsset
	width   int
}

// New creates the dashboard from fetched account data
func New(user *client.User, credits *client.CreditInfo, images []client.ImageAsset, width int) *Dashboard {
	return &Dashboard{
		user:    user,
		credits: credits,
		images:  images,
		width:   width,
	}
}

// SetWidth updates the layout width
func (d *Dashboard) SetWidth(w int) {
	d.width = w
}

// TypeCounts returns image counts per transformation label, sorted by label
func (d *Dashboard) TypeCounts() []struct {
	Label string
	Count int
} {
	counts := make(map[string]int)
	for _, img := range d.images {
		counts[config.TransformationLabel(img.TransformationType)]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]struct {
		Label string
		Count int
	}, 0, len(labels))
	for _, label := range labels {
		out = append(out, struct {
			Label string
			Count int
		}{label, counts[label]})
	}
	return out
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	greeting := "Welcome"
	if d.user != nil {
		greeting = "Welcome, " + d.user.DisplayName()
	}
	sb.WriteString(styles.Title.Render(icons.Image.String() + " " + greeting))
	sb.WriteString("\n")

	sb.WriteString(d.statRow())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("By transformation"))
	sb.WriteString("\n")
	for _, tc := range d.TypeCounts() {
		sb.WriteString(fmt.Sprintf("  %-22s %d\n", tc.Label, tc.Count))
	}
	if len(d.images) == 0 {
		sb.WriteString("  No images yet. Press u to upload your first.\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Recent"))
	sb.WriteString("\n")
	sb.WriteString(d.recentList())

	return sb.String()
}

// statRow renders the three headline blocks side by side
func (d *Dashboard) statRow() string {
	cfg := widgets.DefaultStatBlockConfig()
	cfg.Width = d.blockWidth()

	balance := 0
	planName := config.PlanName(0)
	if d.credits != nil {
		balance = d.credits.CreditBalance
		if d.credits.PlanName != "" {
			planName = d.credits.PlanName
		}
	}

	creditsSub := ""
	if d.credits != nil && d.credits.DaysUntilNextReset > 0 {
		creditsSub = fmt.Sprintf("resets in %dd", d.credits.DaysUntilNextReset)
	}

	creditsBlock := widgets.StatBlock(icons.Credits, "Credits", fmt.Sprintf("%d", balance), creditsSub, cfg)
	imagesBlock := widgets.CountBlock(icons.Gallery, "Images", len(d.images), "in your gallery", cfg)
	planBlock := widgets.StatBlock(icons.Plan, "Plan", planName, "", cfg)

	return lipgloss.JoinHorizontal(lipgloss.Top, creditsBlock, " ", imagesBlock, " ", planBlock)
}

// recentList renders the newest handful of images
func (d *Dashboard) recentList() string {
	if len(d.images) == 0 {
		return "  Nothing yet.\n"
	}

	n := recentCount
	if n > len(d.images) {
		n = len(d.images)
	}

	var sb strings.Builder
	for _, img := range d.images[:n] {
		title := img.Title
		if title == "" {
			title = "(untitled)"
		}
		sb.WriteString(fmt.Sprintf("  %-28s %-16s %s\n",
			format.Truncate(title, 28),
			config.TransformationLabel(img.TransformationType),
			format.TimeSince(img.CreatedAt)))
	}
	return sb.String()
}

func (d *Dashboard) blockWidth() int {
	if d.width <= 0 {
		return 22
	}
	w := (d.width - 2) / 3
	if w < 18 {
		w = 18
	}
	return w
}

// LowCredits reports whether the balance warrants a warning banner
func (d *Dashboard) LowCredits() bool {
	if d.credits == nil {
		return false
	}
	return widgets.CreditsLevel(d.credits.CreditBalance) != widgets.StatusOK
}
