// ABOUTME: Whoami command for the ssnapify CLI
// ABOUTME: Shows the signed-in profile together with credit balance

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
	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Long:  `Display the signed-in profile, plan, and credit balance.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami fetches profile and credits concurrently and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}

	var (
		user    *client.User
		credits *client.CreditInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = manager.RefreshProfile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = api.Credits(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(user, credits))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(user, credits))
	}
	return 0
}

// formatWhoamiHuman formats the account overview for human readability
func formatWhoamiHuman(user *client.User, credits *client.CreditInfo) string {
	role := "member"
	if user.IsAdmin {
		role = "admin"
	}

	out := fmt.Sprintf(`Account:  %s
Email:    %s
Role:     %s
Plan:     %s
Credits:  %d
Joined:   %s`,
		user.DisplayName(),
		user.Email,
		role,
		config.PlanName(user.PlanID),
		credits.CreditBalance,
		format.Date(user.CreatedAt))

	if credits.DaysUntilNextReset > 0 {
		out += fmt.Sprintf("\nReset in: %d day(s)", credits.DaysUntilNextReset)
	}
	return out
}

// formatWhoamiJSON formats the account overview as JSON
func formatWhoamiJSON(user *client.User, credits *client.CreditInfo) string {
	output := map[string]interface{}{
		"user":    user,
		"credits": credits,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
