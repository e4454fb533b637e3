package client

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// lineJSON mirrors the server's line representation.
type lineJSON struct {
	ID     uint32 `json:"id"`
	Data   string `json:"data"`
	Length int    `json:"length"`
}

// NewLineCommand constructs the `line` command group and subcommands.
func NewLineCommand(baseURL BaseURLFunc) *cobra.Command {
	lineCmd := &cobra.Command{Use: "line", Short: "Line operations"}

	lineCmd.AddCommand(
		newLineWriteCommand(baseURL),
		newLineAppendCommand(baseURL),
		newLineFirstCommand(baseURL),
		newLineLastCommand(baseURL),
		newLineNextCommand(baseURL),
		newLineListCommand(baseURL),
		newLineTailCommand(baseURL),
	)

	return lineCmd
}

// newLineWriteCommand constructs the `line write` subcommand.
func newLineWriteCommand(baseURL BaseURLFunc) *cobra.Command {
	writeCmd := &cobra.Command{
		Use:   "write",
		Short: "Store a new line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, _ := cmd.Flags().GetString("data")
			var resp struct {
				ID uint32 `json:"id"`
			}
			if err := postJSON(baseURL(), "/v1/lines/write", map[string]string{"data": data}, &resp); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "id:", resp.ID)
			return nil
		},
	}
	writeCmd.Flags().String("data", "", "Line data")
	return writeCmd
}

// newLineAppendCommand constructs the `line append` subcommand.
func newLineAppendCommand(baseURL BaseURLFunc) *cobra.Command {
	appendCmd := &cobra.Command{
		Use:   "append",
		Short: "Extend the newest line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint32("id")
			data, _ := cmd.Flags().GetString("data")
			var resp struct {
				ID uint32 `json:"id"`
			}
			body := map[string]any{"id": id, "data": data}
			if err := postJSON(baseURL(), "/v1/lines/append", body, &resp); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "id:", resp.ID)
			return nil
		},
	}
	appendCmd.Flags().Uint32("id", 0, "Id of the newest line")
	appendCmd.Flags().String("data", "", "Data to append")
	return appendCmd
}

func newLineReadCommand(baseURL BaseURLFunc, use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ln lineJSON
			if err := getJSON(baseURL(), path, nil, &ln); err != nil {
				return err
			}
			return printJSON(cmd, ln)
		},
	}
}

// newLineFirstCommand constructs the `line first` subcommand.
func newLineFirstCommand(baseURL BaseURLFunc) *cobra.Command {
	return newLineReadCommand(baseURL, "first", "Read the oldest line", "/v1/lines/first")
}

// newLineLastCommand constructs the `line last` subcommand.
func newLineLastCommand(baseURL BaseURLFunc) *cobra.Command {
	return newLineReadCommand(baseURL, "last", "Read the newest line", "/v1/lines/last")
}

// newLineNextCommand constructs the `line next` subcommand.
func newLineNextCommand(baseURL BaseURLFunc) *cobra.Command {
	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "Read the line written after the given id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint32("id")
			q := url.Values{"id": []string{strconv.FormatUint(uint64(id), 10)}}
			var ln lineJSON
			if err := getJSON(baseURL(), "/v1/lines/next", q, &ln); err != nil {
				return err
			}
			return printJSON(cmd, ln)
		},
	}
	nextCmd.Flags().Uint32("id", 0, "Line id to advance from")
	return nextCmd
}

// newLineListCommand constructs the `line list` subcommand.
func newLineListCommand(baseURL BaseURLFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List buffered lines oldest to newest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			limit, _ := cmd.Flags().GetInt("limit")
			q := url.Values{}
			if filter != "" {
				q.Set("filter", filter)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			var resp struct {
				Lines []lineJSON `json:"lines"`
			}
			if err := getJSON(baseURL(), "/v1/lines", q, &resp); err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	listCmd.Flags().String("filter", "", "CEL filter (server-side)")
	listCmd.Flags().Int("limit", 0, "Max lines to return (0 = all)")
	return listCmd
}

// newLineTailCommand constructs the `line tail` subcommand.
func newLineTailCommand(baseURL BaseURLFunc) *cobra.Command {
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Stream new lines as they are written",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			u := baseURL() + "/v1/lines/tail"
			if filter != "" {
				u += "?filter=" + url.QueryEscape(filter)
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, u, nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode >= 300 {
				return fmt.Errorf("http error: %s", resp.Status)
			}
			sc := bufio.NewScanner(resp.Body)
			for sc.Scan() {
				line := sc.Text()
				if payload, ok := strings.CutPrefix(line, "data: "); ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), payload)
				}
			}
			if err := sc.Err(); err != nil && cmd.Context().Err() == nil {
				return err
			}
			return nil
		},
	}
	tailCmd.Flags().String("filter", "", "CEL filter (server-side)")
	return tailCmd
}
