package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"dragcart/internal/config"
	"dragcart/internal/format"
	"dragcart/internal/liststore"
	"dragcart/internal/model"
	"dragcart/internal/transfer"
	"dragcart/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Format     string
	PrettyJSON bool
	LogLevel   string
	LogFile    string
	Journal    string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dragcart",
		Short:        "Move items between two lists by drag and drop",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  dragcart

  # Show the starting lists
  dragcart lists

  # Replay drops without the TUI
  dragcart move Banana Cherry --to cart
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		if app.LogLevel == "" && cfg.Log != nil {
			app.LogLevel = cfg.Log.Level
		}
		if app.LogFile == "" && cfg.Log != nil {
			app.LogFile = cfg.Log.File
		}
		if app.Journal == "" {
			app.Journal = cfg.Journal
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DRAGCART_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("DRAGCART_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("DRAGCART_LOG_FILE", ""), "Write JSON logs to this file")
	cmd.PersistentFlags().StringVar(&app.Journal, "journal", envOr("DRAGCART_JOURNAL", ""), "SQLite journal file for drop history (default: in memory)")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newJournalCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	var next slog.Handler
	if app.LogFile != "" {
		f, err := openLogFile(app.LogFile)
		if err != nil {
			return writeErr(cmd, err)
		}
		defer f.Close()
		next = slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(app.LogLevel, slog.LevelInfo)})
	}
	status := tui.NewStatusHandler(slog.LevelWarn, next)
	logger := slog.New(status)

	session, err := newSession(app, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	j, err := openJournal(cmd.Context(), app, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer j.Close()

	return tui.Run(tui.Options{
		Session: session,
		Journal: j,
		Titles:  titles(app.cfg),
		Logger:  logger,
		Status:  status,
		Theme:   app.cfg.ThemePreference(),
		Glyphs:  app.cfg.GlyphPreference(),
	})
}

// newSession seeds a store from config and wires controller + session.
func newSession(app *App, logger *slog.Logger) (*transfer.Session, error) {
	available, selected := app.cfg.Seeds()
	st, err := liststore.New(available, selected)
	if err != nil {
		return nil, fmt.Errorf("invalid seed lists: %w", err)
	}
	ctrl := transfer.NewController(st, transfer.WithLogger(logger))
	return transfer.NewSession(ctrl), nil
}

func titles(cfg *config.Config) map[model.CollectionID]string {
	out := map[model.CollectionID]string{}
	for _, id := range model.Collections {
		out[id] = cfg.Title(id)
	}
	return out
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
