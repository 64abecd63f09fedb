// ABOUTME: Images command for the ssnapify CLI
// ABOUTME: Lists, inspects, and deletes the account's image assets

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

	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/jothyanandanch/ssnapify/internal/config"
	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/spf13/cobra"
)

var (
	imagesType   string
	imagesSearch string
	imagesLimit  int
	imagesOffset int
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Manage your image gallery",
	Long:  `List, inspect, and delete your uploaded and transformed images.`,
}

var imagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List images",
	Long: `List your images, newest first.

--type filters by transformation ("original" matches untransformed uploads),
--search matches titles case-insensitively.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runImagesList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var imagesGetCmd = &cobra.Command{
	Use:   "get <image-id>",
	Short: "Show one image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runImagesGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var imagesDeleteCmd = &cobra.Command{
	Use:   "delete <image-id>...",
	Short: "Delete images",
	Long: `Delete one or more images by ID.

Each deletion is attempted independently; a failure on one ID does not stop
the rest.

Exit codes:
  0 - All deletions succeeded
  1 - Some deletions failed
  2 - Error (not logged in, invalid ID)`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runImagesDelete(ctx, os.Stdout, args)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
	imagesCmd.AddCommand(imagesListCmd)
	imagesCmd.AddCommand(imagesGetCmd)
	imagesCmd.AddCommand(imagesDeleteCmd)

	imagesListCmd.Flags().StringVar(&imagesType, "type", "all", "Filter by transformation type")
	imagesListCmd.Flags().StringVar(&imagesSearch, "search", "", "Filter by title substring")
	imagesListCmd.Flags().IntVar(&imagesLimit, "limit", 0, "Maximum number of images to return")
	imagesListCmd.Flags().IntVar(&imagesOffset, "offset", 0, "Number of images to skip")
}

// runImagesList fetches and filters the gallery and returns exit code
func runImagesList(ctx context.Context, w io.Writer) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}

	images, err := api.ListImages(ctx, client.ListImagesOptions{
		TransformationType: imagesType,
		Limit:              imagesLimit,
		Offset:             imagesOffset,
	})
	if err != nil {
		return reportError(w, err)
	}

	if imagesSearch != "" {
		images = client.SearchByTitle(images, imagesSearch)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatImagesJSON(images))
	} else {
		fmt.Fprintln(w, formatImagesHuman(images))
	}
	return 0
}

// runImagesGet fetches one image and returns exit code
func runImagesGet(ctx context.Context, w io.Writer, rawID string) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid image ID %q\n", rawID)
		return 2
	}

	image, err := api.GetImage(ctx, id)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(image, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatImageHuman(image))
	}
	return 0
}

// runImagesDelete deletes each ID independently and returns exit code
func runImagesDelete(ctx context.Context, w io.Writer, rawIDs []string) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}

	ids := make([]int, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid image ID %q\n", raw)
			return 2
		}
		ids = append(ids, id)
	}

	failed := 0
	for _, id := range ids {
		if err := api.DeleteImage(ctx, id); err != nil {
			fmt.Fprintf(w, "✗ %d: %v\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "✓ %d deleted\n", id)
	}

	if failed > 0 {
		fmt.Fprintf(w, "\nFAILED: %d of %d deletion(s) failed\n", failed, len(ids))
		return 1
	}
	return 0
}

// formatImagesHuman formats the gallery listing for human readability
func formatImagesHuman(images []client.ImageAsset) string {
	if len(images) == 0 {
		return "No images found."
	}

	out := fmt.Sprintf("%-6s %-30s %-16s %s\n", "ID", "TITLE", "TYPE", "CREATED")
	for _, img := range images {
		title := img.Title
		if title == "" {
			title = "(untitled)"
		}
		out += fmt.Sprintf("%-6d %-30s %-16s %s\n",
			img.ID,
			format.Truncate(title, 30),
			config.TransformationLabel(img.TransformationType),
			format.TimeSince(img.CreatedAt))
	}
	out += fmt.Sprintf("\n%d image(s)", len(images))
	return out
}

// formatImageHuman formats a single image for human readability
func formatImageHuman(img *client.ImageAsset) string {
	title := img.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf(`ID:       %d
Title:    %s
Type:     %s
URL:      %s
Created:  %s`,
		img.ID,
		title,
		config.TransformationLabel(img.TransformationType),
		img.SecureURL,
		format.DateTime(img.CreatedAt))
}

// formatImagesJSON formats the gallery listing as JSON
func formatImagesJSON(images []client.ImageAsset) string {
	data, _ := json.MarshalIndent(images, "", "  ")
	return string(data)
}
