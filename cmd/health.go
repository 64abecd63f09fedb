// ABOUTME: Health command for the ssnapify CLI
// ABOUTME: Probes the API, Redis, and Cloudinary health endpoints

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jothyanandanch/ssnapify/internal/client"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long: `Probe the ssnapify backend and its dependencies (Redis, Cloudinary).
Each service is reported independently; an unreachable one shows as
unhealthy without hiding the others.

Exit codes:
  0 - All services healthy
  1 - One or more services unhealthy or unreachable`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth probes all services concurrently and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url, client.NopTokenSource{})

	probes := []struct {
		service string
		run     func(context.Context) (*client.HealthStatus, error)
	}{
		{"api", c.Health},
		{"redis", c.RedisHealth},
		{"cloudinary", c.CloudinaryHealth},
	}
	statuses := make([]*client.HealthStatus, len(probes))

	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := p.run(ctx)
			if err != nil {
				status = &client.HealthStatus{
					Service: p.service,
					Status:  "unreachable",
					Detail:  err.Error(),
				}
			}
			statuses[i] = status
		}()
	}
	wg.Wait()

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, statuses))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, statuses))
	}

	for _, status := range statuses {
		if !status.Healthy {
			return 1
		}
	}
	return 0
}

// formatHealthHuman formats health probes for human readability
func formatHealthHuman(url string, statuses []*client.HealthStatus) string {
	out := fmt.Sprintf("Backend: %s\n", url)
	for _, status := range statuses {
		symbol := "✓"
		if !status.Healthy {
			symbol = "✗"
		}
		out += fmt.Sprintf("%s %-10s %s", symbol, status.Service, status.Status)
		if status.Detail != "" {
			out += fmt.Sprintf(" (%s)", status.Detail)
		}
		out += "\n"
	}
	return out[:len(out)-1]
}

// formatHealthJSON formats health probes as JSON
func formatHealthJSON(url string, statuses []*client.HealthStatus) string {
	services := make([]map[string]interface{}, len(statuses))
	healthy := true
	for i, status := range statuses {
		services[i] = map[string]interface{}{
			"service": status.Service,
			"healthy": status.Healthy,
			"status":  status.Status,
			"detail":  status.Detail,
		}
		if !status.Healthy {
			healthy = false
		}
	}

	output := map[string]interface{}{
		"backend":  url,
		"healthy":  healthy,
		"services": services,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
