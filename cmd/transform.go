// ABOUTME: Transform command for the ssnapify CLI
// ABOUTME: Applies a transformation to an image and reports the credit cost

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/spf13/cobra"
)

var transformPrompt string

var transformCmd = &cobra.Command{
	Use:   "transform <image-id> <type>",
	Short: "Apply a transformation",
	Long: `Apply a transformation to an uploaded image.

Each transformation costs credits; generative_fill and replace_bg accept a
--prompt describing the desired result.

Run without arguments to list the available transformations and costs.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if len(args) == 0 {
			fmt.Fprintln(os.Stdout, formatTransformCatalog())
			return
		}
		if len(args) != 2 {
			fmt.Fprintln(os.Stdout, "Error: expected <image-id> and <type>")
			os.Exit(2)
		}

		exitCode := runTransform(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().StringVar(&transformPrompt, "prompt", "", "Prompt for generative transformations")
}

// runTransform applies the transformation and returns exit code
func runTransform(ctx context.Context, w io.Writer, rawID, transformation string) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid image ID %q\n", rawID)
		return 2
	}

	cost, ok := config.TransformationCost(transformation)
	if !ok {
		fmt.Fprintf(w, "Error: unknown transformation %q\n\n%s\n", transformation, formatTransformCatalog())
		return 2
	}

	result, err := api.ApplyTransformation(ctx, id, transformation, transformPrompt)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "✓ %s applied to #%d (%d credit(s))\n  %s\n",
			config.TransformationLabel(transformation), id, cost, result.SecureURL)
	}
	return 0
}

// formatTransformCatalog lists transformations and costs alphabetically
func formatTransformCatalog() string {
	types := make([]string, 0, len(config.TransformationCosts))
	for t := range config.TransformationCosts {
		types = append(types, t)
	}
	sort.Strings(types)

	out := "Available transformations:\n"
	for _, t := range types {
		out += fmt.Sprintf("  %-16s %-22s %d credit(s)\n", t, config.TransformationLabel(t), config.TransformationCosts[t])
	}
	return out[:len(out)-1]
}
