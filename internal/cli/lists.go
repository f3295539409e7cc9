package cli

import (
	"dragcart/internal/liststore"
	"dragcart/internal/model"

	"github.com/spf13/cobra"
)

type listView struct {
	ID    model.CollectionID `json:"id"`
	Title string             `json:"title"`
	Items []model.Item       `json:"items"`
}

func listViews(app *App, snap liststore.Snapshot) []listView {
	out := make([]listView, 0, len(model.Collections))
	for _, id := range model.Collections {
		items := snap.Items(id)
		if items == nil {
			items = []model.Item{}
		}
		out = append(out, listView{ID: id, Title: app.cfg.Title(id), Items: items})
	}
	return out
}

func newListsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show the starting lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, done, err := cliLogger(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer done()

			session, err := newSession(app, logger)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap := session.Controller().Store().Snapshot()
			return writeOut(cmd, app, map[string]any{"data": listViews(app, snap)})
		},
	}
}
