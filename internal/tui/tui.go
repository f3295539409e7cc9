// Package tui is the interactive front end: both lists as bordered boxes of
// item chips, drag and drop with the mouse or the keyboard, and highlight
// feedback on the box under the drag.
//
// Gestures are reduced to transfer.Events calls; list contents arrive
// through the liststore subscription, so rendering is a pure function of
// store and controller state.
package tui

import (
	"log/slog"

	"dragcart/internal/journal"
	"dragcart/internal/model"
	"dragcart/internal/transfer"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Session *transfer.Session
	// Journal is optional; without it the header counts and history panel
	// are disabled.
	Journal *journal.Journal
	Titles  map[model.CollectionID]string
	Logger  *slog.Logger
	// Status, when set, is attached to the program so log records show up
	// in the status line.
	Status *StatusHandler

	Theme  string
	Glyphs string
}

func Run(opts Options) error {
	applyThemePreference(opts.Theme)
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if opts.Status != nil {
		opts.Status.SetProgram(p)
	}
	_, err := p.Run()
	return err
}
