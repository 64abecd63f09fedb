// ABOUTME: Logout command for the ssnapify CLI
// ABOUTME: Invalidates the server session and always clears the local token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutAllDevices bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long: `Sign out of ssnapify.

The local token is always cleared, even when the server cannot be reached.
Use --all-devices to invalidate every active session for your account.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolVar(&logoutAllDevices, "all-devices", false, "Sign out of every device, not just this one")
}

// runLogout executes the logout and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	manager, _ := newSession()

	if !manager.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in.")
		return 0
	}

	if err := manager.Logout(ctx, logoutAllDevices); err != nil {
		// The local token is already gone; report the server-side failure
		// as a warning rather than keeping the session alive.
		fmt.Fprintf(w, "Warning: server logout failed: %v\n", err)
	}

	if logoutAllDevices {
		fmt.Fprintln(w, "Logged out everywhere.")
	} else {
		fmt.Fprintln(w, "Logged out.")
	}
	return 0
}
