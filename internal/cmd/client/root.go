package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs a root Cobra command for the flexbuf client.
// It registers the line and archive command groups plus stats/snapshot.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "flexbuf",
		Short: "flexbuf client commands",
	}
	root.AddCommand(NewLineCommand(baseURL))
	root.AddCommand(NewArchiveCommand(baseURL))
	root.AddCommand(NewStatsCommand(baseURL))
	root.AddCommand(NewSnapshotCommand(baseURL))
	return root
}
