// ABOUTME: Upload command for the ssnapify CLI
// ABOUTME: Validates and uploads image files sequentially with progress

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jothyanandanch/ssnapify/internal/format"
	"github.com/jothyanandanch/ssnapify/internal/upload"
	"github.com/spf13/cobra"
)

var uploadTitle string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload images",
	Long: `Upload one or more image files.

Supported formats: jpg, jpeg, png, gif, webp. Maximum size 10 MiB per file.
Files failing validation are rejected up front; valid files upload one at a
time, and a failed upload does not stop the rest.

Exit codes:
  0 - All uploads succeeded
  1 - Some uploads failed
  2 - Error (not logged in, no valid files)`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUpload(ctx, os.Stdout, args)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadTitle, "title", "", "Title for the uploaded image(s); defaults to the filename")
}

// runUpload validates, queues, and uploads the given files
func runUpload(ctx context.Context, w io.Writer, paths []string) int {
	manager, api := newSession()

	if err := manager.RequireAuth(); err != nil {
		return reportError(w, err)
	}

	queue := upload.NewQueue()
	rejected := 0
	for _, path := range paths {
		if _, err := queue.Add(path, uploadTitle); err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", path, err)
			rejected++
		}
	}
	if queue.Len() == 0 {
		fmt.Fprintln(w, "\nError: no valid files to upload")
		return 2
	}

	err := queue.Run(ctx, api, func(item upload.Item) {
		switch item.Status {
		case upload.StatusCompleted:
			fmt.Fprintf(w, "✓ %s (%s) uploaded as #%d\n", item.Name, format.FileSize(item.Size), item.Asset.ID)
		case upload.StatusError:
			fmt.Fprintf(w, "✗ %s: %v\n", item.Name, item.Err)
		}
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	done, failed := queue.Completed()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatUploadJSON(queue, rejected))
	} else {
		fmt.Fprintf(w, "\n%d uploaded, %d failed, %d rejected\n", done, failed, rejected)
	}

	if failed > 0 || rejected > 0 {
		return 1
	}
	return 0
}

// formatUploadJSON formats the queue outcome as JSON
func formatUploadJSON(queue *upload.Queue, rejected int) string {
	items := make([]map[string]interface{}, 0, queue.Len())
	for _, item := range queue.Items() {
		entry := map[string]interface{}{
			"name":   item.Name,
			"size":   item.Size,
			"status": item.Status.String(),
		}
		if item.Err != nil {
			entry["error"] = item.Err.Error()
		}
		if item.Asset != nil {
			entry["id"] = item.Asset.ID
			entry["url"] = item.Asset.SecureURL
		}
		items = append(items, entry)
	}

	done, failed := queue.Completed()
	output := map[string]interface{}{
		"uploaded": done,
		"failed":   failed,
		"rejected": rejected,
		"items":    items,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
