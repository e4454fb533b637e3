package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// NewArchiveCommand constructs the `archive` command group.
func NewArchiveCommand(baseURL BaseURLFunc) *cobra.Command {
	archiveCmd := &cobra.Command{Use: "archive", Short: "Archived (evicted) line operations"}
	archiveCmd.AddCommand(newArchiveListCommand(baseURL))
	return archiveCmd
}

// newArchiveListCommand constructs the `archive list` subcommand.
func newArchiveListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived lines in id order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, _ := cmd.Flags().GetUint32("from")
			limit, _ := cmd.Flags().GetInt("limit")
			filter, _ := cmd.Flags().GetString("filter")
			q := url.Values{}
			if from > 0 {
				q.Set("from", strconv.FormatUint(uint64(from), 10))
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			if filter != "" {
				q.Set("filter", filter)
			}
			var resp struct {
				Lines []lineJSON `json:"lines"`
			}
			if err := getJSON(baseURL(), "/v1/archive", q, &resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	listCmd.Flags().Uint32("from", 0, "Start id (inclusive)")
	listCmd.Flags().Int("limit", 0, "Max lines to return (0 = all)")
	listCmd.Flags().String("filter", "", "CEL filter (server-side)")
	return listCmd
}

// NewStatsCommand constructs the `stats` command.
func NewStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ring occupancy stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var stats map[string]any
			if err := getJSON(baseURL(), "/v1/stats", nil, &stats); err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}
}

// NewSnapshotCommand constructs the `snapshot` command, which saves the
// debug HTML visualization of the buffer.
func NewSnapshotCommand(baseURL BaseURLFunc) *cobra.Command {
	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save the HTML buffer visualization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, _ := cmd.Flags().GetString("out")
			resp, err := http.Get(baseURL() + "/v1/debug/snapshot")
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode >= 300 {
				return fmt.Errorf("http error: %s", resp.Status)
			}
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if _, err := io.Copy(w, resp.Body); err != nil {
				return err
			}
			if out != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "snapshot saved to:", out)
			}
			return nil
		},
	}
	snapCmd.Flags().String("out", "", "Output file (default stdout)")
	return snapCmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
