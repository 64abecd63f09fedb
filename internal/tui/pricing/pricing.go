// ABOUTME: Pricing screen for the TUI studio
// ABOUTME: Plan catalog, cost table, and a local what-if plan simulation

package pricing

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/jothyanandanch/ssnapify/internal/tui/icons"
	"github.com/jothyanandanch/ssnapify/internal/tui/styles"
	"github.com/jothyanandanch/ssnapify/internal/tui/widgets"
)

// BackMsg is sent when the user leaves the pricing screen
type BackMsg struct{}

// Pricing is the pricing screen model
type Pricing struct {
	credits   *client.CreditInfo
	cursor    int
	simulated int // plan ID being previewed, 0 when off
}

// New creates the pricing screen from the account's credit info
func New(credits *client.CreditInfo) *Pricing {
	p := &Pricing{credits: credits}
	if credits != nil {
		// Start the cursor on the current plan
		for i, plan := range config.Plans {
			if plan.ID == credits.PlanID {
				p.cursor = i
			}
		}
	}
	return p
}

// SetCredits refreshes the credit info after a periodic reload
func (p *Pricing) SetCredits(credits *client.CreditInfo) {
	p.credits = credits
}

// Simulated returns the previewed plan ID, 0 when no preview is active.
// The preview is purely local and never sent to the server.
func (p *Pricing) Simulated() int {
	return p.simulated
}

// SimulatedCredits returns what the monthly allowance would be on the
// previewed plan.
func (p *Pricing) SimulatedCredits() int {
	plan, ok := config.PlanByID(p.simulated)
	if !ok {
		return 0
	}
	return plan.MonthlyCredits
}

// Update handles key input
func (p *Pricing) Update(msg tea.Msg) (*Pricing, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(config.Plans)-1 {
			p.cursor++
		}
	case "enter", " ":
		plan := config.Plans[p.cursor]
		if p.simulated == plan.ID {
			p.simulated = 0
		} else {
			p.simulated = plan.ID
		}
	case "esc", "b":
		return p, func() tea.Msg { return BackMsg{} }
	}
	return p, nil
}

// View renders the pricing screen
func (p *Pricing) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Plan.String() + " Pricing"))
	sb.WriteString("\n")

	if p.credits != nil {
		status := "Active"
		if p.credits.PlanID == 1 {
			status = "Free Plan"
		}
		sb.WriteString(fmt.Sprintf("Current: %s · %d credit(s) · %s\n",
			p.credits.PlanName, p.credits.CreditBalance, status))
		if p.credits.DaysUntilNextReset > 0 {
			sb.WriteString(fmt.Sprintf("Credits reset in %d day(s)\n", p.credits.DaysUntilNextReset))
		}
	}
	sb.WriteString("\n")

	for i, plan := range config.Plans {
		badge := ""
		if p.credits != nil && plan.ID == p.credits.PlanID {
			badge = widgets.Badge("CURRENT", widgets.StatusOK)
		}
		if p.simulated == plan.ID {
			badge = widgets.Badge("PREVIEW", widgets.StatusInfo)
		}

		term := "no fixed term"
		if plan.DurationMonths == 1 {
			term = "billed monthly"
		} else if plan.DurationMonths > 1 {
			term = fmt.Sprintf("%d-month term", plan.DurationMonths)
		}

		line := fmt.Sprintf("%-14s %3d credits/month · %s %s", plan.Name, plan.MonthlyCredits, term, badge)
		if i == p.cursor {
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	if p.simulated != 0 {
		sb.WriteString("\n" + p.simulationSummary() + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Transformation costs"))
	sb.WriteString("\n")
	sb.WriteString(costTable())

	sb.WriteString(styles.Help.Render("enter preview plan · b back"))
	return sb.String()
}

// simulationSummary describes the previewed plan change. Local only.
func (p *Pricing) simulationSummary() string {
	plan, ok := config.PlanByID(p.simulated)
	if !ok {
		return ""
	}

	current := 0
	if p.credits != nil {
		if cp, ok := config.PlanByID(p.credits.PlanID); ok {
			current = cp.MonthlyCredits
		}
	}

	delta := plan.MonthlyCredits - current
	verb := "gain"
	level := widgets.StatusOK
	if delta < 0 {
		verb = "lose"
		delta = -delta
		level = widgets.StatusWarning
	}

	return widgets.StatusText(
		fmt.Sprintf("On %s you would %s %d credit(s) per month. Contact support to change plans.",
			plan.Name, verb, delta),
		level)
}

// costTable renders the transformation cost catalog
func costTable() string {
	types := make([]string, 0, len(config.TransformationCosts))
	for t := range config.TransformationCosts {
		types = append(types, t)
	}
	sort.Strings(types)

	var sb strings.Builder
	for _, t := range types {
		sb.WriteString(fmt.Sprintf("  %-22s %d credit(s)\n", config.TransformationLabel(t), config.TransformationCosts[t]))
	}
	sb.WriteString("\n")
	return sb.String()
}
