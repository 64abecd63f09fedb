// ABOUTME: TUI command for the ssnapify CLI
// ABOUTME: Launches the full-screen interactive studio

package cmd

import (
	"fmt"
	"os"

	"github.com/jothyanandanch/ssnapify/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive studio",
	Long: `Open the full-screen interactive studio: dashboard, gallery, uploads,
pricing, support, and (for admins) user management.`,
	Run: func(cmd *cobra.Command, args []string) {
		manager, api := newSession()

		if err := tui.Run(manager, api); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
