// ABOUTME: Progress bar widgets for uploads and credit usage
// ABOUTME: Fractional bars for transfers, zoned bars for balance displays

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UploadBar renders a fractional progress bar for a file transfer.
// frac is 0.0 to 1.0.
func UploadBar(frac float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))

	color := lipgloss.Color("#06B6D4")
	if frac >= 1 {
		color = lipgloss.Color("#10B981")
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	bar.WriteString("]")

	return fmt.Sprintf("%s %3.0f%%", bar.String(), frac*100)
}

// CreditBar renders the remaining credit balance against the plan's
// allowance, coloring by how close the account is to running out.
func CreditBar(balance, allowance, width int) string {
	if width <= 0 {
		width = 20
	}
	if allowance <= 0 {
		allowance = 1
	}
	if balance < 0 {
		balance = 0
	}
	if balance > allowance {
		balance = allowance
	}

	filled := balance * width / allowance

	color := lipgloss.Color("#10B981")
	switch CreditsLevel(balance) {
	case StatusWarning:
		color = lipgloss.Color("#F59E0B")
	case StatusCritical:
		color = lipgloss.Color("#EF4444")
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	bar.WriteString("]")

	return fmt.Sprintf("%s %d/%d", bar.String(), balance, allowance)
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(frac float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))
	empty := width - filled

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", empty))
}
