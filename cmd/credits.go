// ABOUTME: Credits command for the ssnapify CLI
// ABOUTME: Shows credit balance and supports threshold checks for scripting

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/spf13/cobra"
)

var minCredits int

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Show credit balance",
	Long: `Show the account's credit balance and billing cycle.

With --min, exit non-zero when the balance is below the threshold, so
scripts can warn before running out.

Exit codes:
  0 - Balance at or above threshold
  1 - Balance below --min threshold
  2 - Error (not logged in, connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCredits(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(creditsCmd)
	creditsCmd.Flags().IntVar(&minCredits, "min", 0, "Fail when the balance is below this many credits")
}

// runCredits fetches the balance and returns exit code
func runCredits(ctx context.Context, w io.Writer) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}
	if minCredits < 0 {
		fmt.Fprintln(w, "Error: --min must not be negative")
		return 2
	}

	info, err := api.Credits(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCreditsJSON(info))
	} else {
		fmt.Fprintln(w, formatCreditsHuman(info))
	}

	if info.CreditBalance < minCredits {
		if !IsJSONOutput() {
			fmt.Fprintf(w, "\nFAILED: balance %d below threshold %d\n", info.CreditBalance, minCredits)
		}
		return 1
	}
	return 0
}

// formatCreditsHuman formats credit info for human readability
func formatCreditsHuman(info *client.CreditInfo) string {
	out := fmt.Sprintf(`Credits:  %d
Plan:     %s`, info.CreditBalance, info.PlanName)

	if info.DaysUntilNextReset > 0 {
		out += fmt.Sprintf("\nReset:    in %d day(s)", info.DaysUntilNextReset)
	}
	if !info.NextResetTime.IsZero() {
		out += fmt.Sprintf(" (%s)", format.Date(info.NextResetTime))
	}
	if !info.BillingCycleEnds.IsZero() {
		out += fmt.Sprintf("\nCycle:    ends %s", format.Date(info.BillingCycleEnds))
	}
	return out
}

// formatCreditsJSON formats credit info as JSON
func formatCreditsJSON(info *client.CreditInfo) string {
	data, _ := json.MarshalIndent(info, "", "  ")
	return string(data)
}
