// ABOUTME: Login command for the ssnapify CLI
// ABOUTME: Walks the Google OAuth flow and captures the callback token

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [token-or-callback-url]",
	Short: "Sign in with Google",
	Long: `Sign in to ssnapify with Google.

Open the printed URL in a browser, complete the Google sign-in, then paste
the redirect URL (or just the token from it) back here. The token is stored
in your config directory for later commands.

Exit codes:
  0 - Logged in
  2 - Error (invalid token, connectivity)`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		raw := ""
		if len(args) > 0 {
			raw = args[0]
		}

		exitCode := runLogin(ctx, os.Stdout, raw)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer, raw string) int {
	manager, api := newSession()

	if raw == "" {
		fmt.Fprintf(w, "Open this URL in your browser to sign in:\n\n  %s\n\n", api.LoginURL())

		prompt := huh.NewInput().
			Title("Paste the redirect URL (or token)").
			Value(&raw)
		if err := prompt.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	user, err := manager.Login(ctx, raw)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatLoginJSON(user))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.DisplayName(), user.Email)
	}
	return 0
}

// formatLoginJSON formats the logged-in profile as JSON
func formatLoginJSON(user *client.User) string {
	data, _ := json.MarshalIndent(user, "", "  ")
	return string(data)
}
