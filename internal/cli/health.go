package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	termfmt "github.com/yildizm/go-termfmt"

	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/emoji"
	"github.com/yildizm/TweetSense/internal/ui"
)

// errBackendUnavailable makes health exit non-zero when the service is
// offline or its model is not loaded
var errBackendUnavailable = errors.New("backend is not ready")

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the sentiment service",
		Long: `Query the service's /health endpoint and report whether the hybrid
model is loaded. Exits non-zero when the service is offline or not ready.

Examples:
  tweetsense health
  tweetsense health --backend http://analysis:8000 -o json`,
		Args: cobra.NoArgs,
		RunE: runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	svc, err := newServices(GetGlobalConfig(), false)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}
	defer svc.Close()

	status := backend.Probe(cmd.Context(), svc.client, newLogger("health"))

	out := cmd.OutOrStdout()
	if getOutputFormat() == "json" {
		if err := writeHealthJSON(out, svc.client.BaseURL(), status); err != nil {
			return err
		}
	} else {
		writeHealthText(out, svc.client.BaseURL(), status)
	}

	if !status.Ready() {
		return errBackendUnavailable
	}
	return nil
}

func writeHealthJSON(w io.Writer, baseURL string, status backend.HealthStatus) error {
	data, err := json.MarshalIndent(struct {
		Backend string `json:"backend"`
		Ready   bool   `json:"ready"`
		backend.HealthStatus
	}{baseURL, status.Ready(), status}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal health status: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeHealthText(w io.Writer, baseURL string, status backend.HealthStatus) {
	icon := emoji.GetEmoji("error")
	if status.Ready() {
		icon = emoji.GetEmoji("success")
	} else if status.Status != backend.StatusOffline {
		icon = emoji.GetEmoji("warning")
	}
	fmt.Fprintf(w, "%s %s\n", icon, ui.BadgeText(&status))

	items := []termfmt.TreeItem{
		{Label: "Backend", Value: baseURL},
		{Label: "Status", Value: status.Status},
	}
	if status.HybridReady != nil {
		items = append(items, termfmt.TreeItem{Label: "Hybrid model", Value: yesNo(*status.HybridReady)})
	}
	if status.ArtifactsPath != "" {
		items = append(items, termfmt.TreeItem{Label: "Artifacts", Value: status.ArtifactsPath})
	}
	if status.VectorizerExists != nil {
		items = append(items, termfmt.TreeItem{Label: "Vectorizer", Value: yesNo(*status.VectorizerExists)})
	}
	if status.ModelExists != nil {
		items = append(items, termfmt.TreeItem{Label: "Model file", Value: yesNo(*status.ModelExists)})
	}
	items[len(items)-1].Last = true

	renderTree(w, items)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
