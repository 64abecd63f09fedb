// ABOUTME: Root command for the ssnapify CLI
// ABOUTME: Handles global flags, env loading, and shared client wiring

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
)

const defaultAPIURL = "http://localhost:8000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "ssnapify",
	Short: "CLI for the ssnapify image studio",
	Long: `ssnapify is a command-line interface for the ssnapify image
transformation service.

It manages your login session, uploads and transforms images, and exposes
admin and account operations for scripting.

Environment Variables:
  SSNAPIFY_API_URL  Backend API URL (default: http://localhost:8000)`,
}

// Execute runs the root command
func Execute() error {
	// A .env in the working directory supplies SSNAPIFY_API_URL for local
	// setups; absence is not an error.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SSNAPIFY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("SSNAPIFY_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// reportError prints an API error and returns the exit code for it.
// Expired sessions get a re-login hint; everything else is a plain error.
func reportError(w io.Writer, err error) int {
	if errors.Is(err, client.ErrUnauthorized) {
		fmt.Fprintln(w, "Error: session expired or invalid. Run 'ssnapify login' to sign in again.")
		return 2
	}
	if errors.Is(err, session.ErrNotAuthenticated) {
		fmt.Fprintln(w, "Error: not logged in. Run 'ssnapify login' first.")
		return 2
	}
	if errors.Is(err, session.ErrNotAdmin) {
		fmt.Fprintln(w, "Error: this command requires an admin account.")
		return 2
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}

// newSession builds the session manager and API client backed by the
// on-disk token store.
func newSession() (*session.Manager, *client.Client) {
	dir := configDir
	if dir == "" {
		dir = session.DefaultConfigDir()
	}
	store := session.NewStore(dir)
	api := client.New(GetAPIURL(), store)
	return session.NewManager(store, api), api
}
