package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var errCacheRequired = errors.New("--cache is required")

func newCacheCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the SQLite render cache",
	}

	var olderThan time.Duration
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached renders older than --older-than",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if s.cache == nil {
				return errCacheRequired
			}
			n, err := s.cache.Purge(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			if s.opts.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), map[string]any{"purged": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d cached render(s)\n", n)
			return nil
		},
	}
	purge.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age of entries to delete")

	cmd.AddCommand(purge)
	return cmd
}
