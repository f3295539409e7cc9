package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newJournalCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recorded drop attempts from a journal file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(app.Journal) == "" {
				return writeErr(cmd, noJournalError{})
			}
			logger, done, err := cliLogger(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer done()

			j, err := openJournal(cmd.Context(), app, logger)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer j.Close()

			entries, err := j.Recent(cmd.Context(), limit, true)
			if err != nil {
				return writeErr(cmd, err)
			}
			stats, err := j.TotalStats(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			sessions, err := j.Sessions(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"entries":  entries,
					"sessions": sessions,
				},
				"meta": map[string]any{
					"path":     j.Path(),
					"accepted": stats.Accepted,
					"rejected": stats.Rejected,
				},
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Max entries to return (newest first)")
	return cmd
}
