package cli

import (
	"fmt"
	"strings"

	"dragcart/internal/journal"
	"dragcart/internal/model"

	"github.com/spf13/cobra"
)

type moveResult struct {
	model.Transfer
	Hint string `json:"hint,omitempty"`
}

func newMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move ITEM...",
		Short: "Drop items onto a list, in order, and print each outcome",
		Example: strings.TrimSpace(`
  dragcart move Banana --to cart
  dragcart move Apple Cherry --to selected --journal ~/.dragcart/journal.db
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, ok := model.ParseCollectionID(to)
			if !ok {
				return writeErr(cmd, errUnknownCollection(to))
			}

			logger, done, err := cliLogger(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer done()

			session, err := newSession(app, logger)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl := session.Controller()
			st := ctrl.Store()

			var j *journal.Journal
			if strings.TrimSpace(app.Journal) != "" {
				j, err = openJournal(cmd.Context(), app, logger)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer j.Close()
			}

			var last model.Transfer
			ctrl.Observe(func(tr model.Transfer) { last = tr })

			results := make([]moveResult, 0, len(args))
			for _, arg := range args {
				item := model.Item(strings.TrimSpace(arg))
				// Same source rule as a drag: the list opposite the drop target.
				ctrl.HandleDrop(item, dest.Other(), dest)

				res := moveResult{Transfer: last}
				if last.Reason == model.ReasonUnknownItem {
					if s, ok := suggestItem(arg, st.Universe()); ok {
						res.Hint = fmt.Sprintf("did you mean %q?", s)
					}
				}
				results = append(results, res)

				if j != nil {
					if err := j.Record(cmd.Context(), last); err != nil {
						logger.Warn("journal write failed", "item", string(item), "err", err)
					}
				}
			}

			if err := st.Verify(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"results": results,
					"lists":   listViews(app, st.Snapshot()),
				},
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", string(model.CollectionSelected), "Destination list (available|selected)")
	return cmd
}
