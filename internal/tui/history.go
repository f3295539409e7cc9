package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dragcart/internal/journal"
	"dragcart/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	journalTimeout = 2 * time.Second
	historyLimit   = 200
)

type journalRecordedMsg struct{ stats journal.Stats }

type journalStatsMsg struct{ stats journal.Stats }

type historyMsg struct{ entries []journal.Entry }

type journalErrMsg struct{ err error }

func recordCmd(j *journal.Journal, tr model.Transfer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		if err := j.Record(ctx, tr); err != nil {
			return journalErrMsg{err: err}
		}
		st, err := j.Stats(ctx)
		if err != nil {
			return journalErrMsg{err: err}
		}
		return journalRecordedMsg{stats: st}
	}
}

func statsCmd(j *journal.Journal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		st, err := j.Stats(ctx)
		if err != nil {
			return journalErrMsg{err: err}
		}
		return journalStatsMsg{stats: st}
	}
}

func historyCmd(j *journal.Journal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		entries, err := j.Recent(ctx, historyLimit, false)
		if err != nil {
			return journalErrMsg{err: err}
		}
		return historyMsg{entries: entries}
	}
}

func renderHistory(entries []journal.Entry, titles map[model.CollectionID]string, width int) string {
	if len(entries) == 0 {
		return styleMuted().Render("No drops yet.")
	}
	ok := lipgloss.NewStyle().Foreground(colorAccept)
	rejected := lipgloss.NewStyle().Foreground(colorReject)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		mark := ok.Render("+")
		if !e.Accepted {
			mark = rejected.Render("x")
		}
		line := fmt.Sprintf("%s %s %s %s %s %s",
			e.At.Local().Format("15:04:05"),
			e.Item,
			titleOr(titles, e.From),
			glyphArrow(),
			titleOr(titles, e.To),
			styleMuted().Render("("+string(e.Reason)+")"),
		)
		lines = append(lines, mark+" "+ansi.Truncate(line, width-2, glyphEllipsis()))
	}
	return strings.Join(lines, "\n")
}

func titleOr(titles map[model.CollectionID]string, id model.CollectionID) string {
	if t := titles[id]; t != "" {
		return t
	}
	if id == "" {
		return "?"
	}
	return string(id)
}
