// ABOUTME: Support command for the ssnapify CLI
// ABOUTME: Files a support ticket from flags or an interactive form

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	supportName    string
	supportSubject string
	supportMessage string
)

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "File a support ticket",
	Long: `File a support ticket with the ssnapify team.

Provide --subject and --message directly, or run without flags for an
interactive form. The name defaults to your account's display name.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSupport(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(supportCmd)
	supportCmd.Flags().StringVar(&supportName, "name", "", "Your name (defaults to the account display name)")
	supportCmd.Flags().StringVar(&supportSubject, "subject", "", "Ticket subject")
	supportCmd.Flags().StringVar(&supportMessage, "message", "", "Ticket message")
}

// runSupport gathers ticket fields and submits them
func runSupport(ctx context.Context, w io.Writer) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}

	if supportName == "" {
		if user, ok := manager.CurrentUser(); ok {
			supportName = user.DisplayName()
		}
	}

	if supportSubject == "" || supportMessage == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&supportName),
				huh.NewInput().
					Title("Subject").
					Value(&supportSubject),
				huh.NewText().
					Title("Message").
					Value(&supportMessage),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if strings.TrimSpace(supportSubject) == "" || strings.TrimSpace(supportMessage) == "" {
		fmt.Fprintln(w, "Error: subject and message must not be empty")
		return 2
	}

	if err := api.CreateSupportTicket(ctx, supportName, supportSubject, supportMessage); err != nil {
		return reportError(w, err)
	}

	fmt.Fprintln(w, "✓ Ticket submitted. The team will reply by email.")
	return 0
}
