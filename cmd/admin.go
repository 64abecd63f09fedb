// ABOUTME: Admin commands for the ssnapify CLI
// ABOUTME: User management operations restricted to admin accounts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/jothyanandanch/ssnapify/internal/session"
	"github.com/spf13/cobra"
)

var (
	adminUsersLimit  int
	adminUsersOffset int
	forceLogoutYes   bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer user accounts",
	Long:  `User management commands. All subcommands require an admin account.`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all users",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminUsers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminSetCreditsCmd = &cobra.Command{
	Use:   "set-credits <user-id> <credits>",
	Short: "Set a user's credit balance",
	Args:  cobra.ExactArgs(2),
	Run:   adminMutationRun(runAdminSetCredits),
}

var adminSetRoleCmd = &cobra.Command{
	Use:   "set-role <user-id> <admin|member>",
	Short: "Grant or revoke admin",
	Long: `Grant or revoke a user's admin role.

Revoking your own admin role is refused; another admin must do it.`,
	Args: cobra.ExactArgs(2),
	Run:  adminMutationRun(runAdminSetRole),
}

var adminSetStatusCmd = &cobra.Command{
	Use:   "set-status <user-id> <active|inactive>",
	Short: "Activate or deactivate an account",
	Args:  cobra.ExactArgs(2),
	Run:   adminMutationRun(runAdminSetStatus),
}

var adminSetPlanCmd = &cobra.Command{
	Use:   "set-plan <user-id> <plan-id>",
	Short: "Change a user's plan",
	Long: `Change a user's subscription plan.

Plans: 1 = Free, 2 = Pro Monthly, 3 = Pro 6-Month.`,
	Args: cobra.ExactArgs(2),
	Run:  adminMutationRun(runAdminSetPlan),
}

var adminForceLogoutCmd = &cobra.Command{
	Use:   "force-logout <user-id>",
	Short: "Invalidate all of a user's sessions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminForceLogout(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminSetCreditsCmd)
	adminCmd.AddCommand(adminSetRoleCmd)
	adminCmd.AddCommand(adminSetStatusCmd)
	adminCmd.AddCommand(adminSetPlanCmd)
	adminCmd.AddCommand(adminForceLogoutCmd)

	adminUsersCmd.Flags().IntVar(&adminUsersLimit, "limit", 0, "Maximum number of users to return")
	adminUsersCmd.Flags().IntVar(&adminUsersOffset, "offset", 0, "Number of users to skip")
	adminForceLogoutCmd.Flags().BoolVar(&forceLogoutYes, "yes", false, "Skip the confirmation prompt")
}

// adminMutation is a two-argument admin operation
type adminMutation func(ctx context.Context, w io.Writer, arg1, arg2 string) int

// adminMutationRun wraps a mutation in the standard signal/exit plumbing
func adminMutationRun(run adminMutation) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := run(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}
}

// requireAdminSession checks the admin guard and returns session pieces
func requireAdminSession(ctx context.Context, w io.Writer) (*session.Manager, *client.Client, *client.User, int) {
	manager, api := newSession()

	admin, err := manager.RequireAdmin(ctx)
	if err != nil {
		return nil, nil, nil, reportError(w, err)
	}
	return manager, api, admin, 0
}

// runAdminUsers lists users and returns exit code
func runAdminUsers(ctx context.Context, w io.Writer) int {
	_, api, _, code := requireAdminSession(ctx, w)
	if code != 0 {
		return code
	}

	users, err := api.ListUsers(ctx, client.ListUsersOptions{
		Limit:  adminUsersLimit,
		Offset: adminUsersOffset,
	})
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatUsersHuman(users))
	}
	return 0
}

func runAdminSetCredits(ctx context.Context, w io.Writer, rawID, rawCredits string) int {
	_, api, _, code := requireAdminSession(ctx, w)
	if code != 0 {
		return code
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid user ID %q\n", rawID)
		return 2
	}
	credits, err := strconv.Atoi(rawCredits)
	if err != nil || credits < 0 {
		fmt.Fprintf(w, "Error: invalid credit amount %q\n", rawCredits)
		return 2
	}

	user, err := api.SetUserCredits(ctx, id, credits)
	if err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "✓ %s now has %d credit(s)\n", userRef(user), user.CreditBalance)
	return 0
}

func runAdminSetRole(ctx context.Context, w io.Writer, rawID, role string) int {
	_, api, admin, code := requireAdminSession(ctx, w)
	if code != 0 {
		return code
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid user ID %q\n", rawID)
		return 2
	}

	var makeAdmin bool
	switch role {
	case "admin":
		makeAdmin = true
	case "member":
		makeAdmin = false
	default:
		fmt.Fprintf(w, "Error: role must be 'admin' or 'member', got %q\n", role)
		return 2
	}

	// Self-demotion would lock this session out of every admin command.
	if id == admin.ID && !makeAdmin {
		fmt.Fprintln(w, "Error: cannot revoke your own admin role. Ask another admin.")
		return 2
	}

	user, err := api.SetUserRole(ctx, id, makeAdmin)
	if err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "✓ %s is now %s\n", userRef(user), roleLabel(user.IsAdmin))
	return 0
}

func runAdminSetStatus(ctx context.Context, w io.Writer, rawID, status string) int {
	_, api, _, code := requireAdminSession(ctx, w)
	if code != 0 {
		return code
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid user ID %q\n", rawID)
		return 2
	}

	var active bool
	switch status {
	case "active":
		active = true
	case "inactive":
		active = false
	default:
		fmt.Fprintf(w, "Error: status must be 'active' or 'inactive', got %q\n", status)
		return 2
	}

	user, err := api.SetUserStatus(ctx, id, active)
	if err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "✓ %s is now %s\n", userRef(user), statusLabel(user.IsActive))
	return 0
}

func runAdminSetPlan(ctx context.Context, w io.Writer, rawID, rawPlan string) int {
	_, api, _, code := requireAdminSession(ctx, w)
	if code != 0 {
		return code
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid user ID %q\n", rawID)
		return 2
	}
	planID, err := strconv.Atoi(rawPlan)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid plan ID %q\n", rawPlan)
		return 2
	}

	user, err := api.SetUserPlan(ctx, id, planID)
	if err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "✓ %s is now on %s\n", userRef(user), config.PlanName(user.PlanID))
	return 0
}

// runAdminForceLogout confirms and invalidates all sessions for a user
func runAdminForceLogout(ctx context.Context, w io.Writer, rawID string) int {
	_, api, _, code := requireAdminSession(ctx, w)
	if code != 0 {
		return code
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid user ID %q\n", rawID)
		return 2
	}

	if !forceLogoutYes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Sign user %d out of all devices?", id)).
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if !confirmed {
			fmt.Fprintln(w, "Cancelled.")
			return 0
		}
	}

	if err := api.ForceLogoutUser(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "✓ user %d signed out everywhere\n", id)
	return 0
}

// formatUsersHuman formats the user listing for human readability
func formatUsersHuman(users []client.User) string {
	if len(users) == 0 {
		return "No users found."
	}

	out := fmt.Sprintf("%-6s %-28s %-8s %-10s %-14s %-8s %s\n",
		"ID", "EMAIL", "ROLE", "STATUS", "PLAN", "CREDITS", "JOINED")
	for _, u := range users {
		out += fmt.Sprintf("%-6d %-28s %-8s %-10s %-14s %-8d %s\n",
			u.ID,
			format.Truncate(u.Email, 28),
			roleLabel(u.IsAdmin),
			statusLabel(u.IsActive),
			config.PlanName(u.PlanID),
			u.CreditBalance,
			format.Date(u.CreatedAt))
	}
	out += fmt.Sprintf("\n%d user(s)", len(users))
	return out
}

// userRef names a user for output. Mutation acknowledgements may carry only
// the id, so fall back to it when no name is known.
func userRef(u *client.User) string {
	if name := u.DisplayName(); name != "" {
		return name
	}
	return fmt.Sprintf("user %d", u.ID)
}

func roleLabel(isAdmin bool) string {
	if isAdmin {
		return "admin"
	}
	return "member"
}

func statusLabel(isActive bool) string {
	if isActive {
		return "active"
	}
	return "inactive"
}
