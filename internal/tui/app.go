package tui

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"dragcart/internal/journal"
	"dragcart/internal/liststore"
	"dragcart/internal/model"
	"dragcart/internal/transfer"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragMouse
	dragKeys
)

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayHistory
)

type appModel struct {
	session *transfer.Session
	ctrl    *transfer.Controller
	store   *liststore.Store
	journal *journal.Journal
	logger  *slog.Logger
	titles  map[model.CollectionID]string

	width  int
	height int
	snap   liststore.Snapshot
	lay    layout

	drag  dragMode
	hover model.CollectionID
	// Chip under a left press that has not turned into a drag yet.
	pressed *chipRect

	// Keyboard cursor.
	focus  model.CollectionID
	cursor int

	// Outcomes produced during the current Update, flushed as commands.
	pending []model.Transfer

	status      string
	statusLevel slog.Level
	statusSeq   int
	stats       journal.Stats

	overlay overlay
	panel   viewport.Model
	history []journal.Entry

	keys keyMap
	help help.Model
}

func newAppModel(opts Options) *appModel {
	ctrl := opts.Session.Controller()
	m := &appModel{
		session: opts.Session,
		ctrl:    ctrl,
		store:   ctrl.Store(),
		journal: opts.Journal,
		logger:  opts.Logger,
		titles:  map[model.CollectionID]string{},
		focus:   model.CollectionAvailable,
		keys:    defaultKeyMap(),
		help:    help.New(),
		panel:   viewport.New(defaultWidth, 10),
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	for _, id := range model.Collections {
		m.titles[id] = opts.Titles[id]
		if m.titles[id] == "" {
			m.titles[id] = string(id)
		}
	}

	m.store.Subscribe(func(ch liststore.Change) {
		m.applySnapshot(ch.Snapshot)
	})
	ctrl.Observe(func(tr model.Transfer) {
		m.pending = append(m.pending, tr)
	})
	m.applySnapshot(m.store.Snapshot())
	return m
}

func (m *appModel) Init() tea.Cmd {
	if m.journal == nil {
		return nil
	}
	return statsCmd(m.journal)
}

func (m *appModel) applySnapshot(s liststore.Snapshot) {
	m.snap = s
	m.relayout()
	m.clampCursor()
}

func (m *appModel) relayout() {
	m.lay = computeLayout(m.width, m.snap)
}

func (m *appModel) clampCursor() {
	n := len(m.snap.Items(m.focus))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) focusedItem() (model.Item, bool) {
	items := m.snap.Items(m.focus)
	if m.cursor < 0 || m.cursor >= len(items) {
		return "", false
	}
	return items[m.cursor], true
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.panel.Width = msg.Width
		m.panel.Height = max(msg.Height-2, 3)
		m.relayout()
		m.refreshPanel()

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case journalRecordedMsg:
		m.stats = msg.stats

	case journalStatsMsg:
		m.stats = msg.stats

	case historyMsg:
		m.history = msg.entries
		m.refreshPanel()

	case journalErrMsg:
		m.logger.Warn("journal unavailable", "err", msg.err.Error())

	case logRecordMsg:
		cmd = m.setStatus(msg.Summary, msg.Level)

	case statusFadeMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	}

	return m, tea.Batch(cmd, m.flushPending())
}

// flushPending turns the outcomes collected during this Update into status
// text and journal writes.
func (m *appModel) flushPending() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	outs := m.pending
	m.pending = nil

	var cmds []tea.Cmd
	for _, tr := range outs {
		if tr.Accepted {
			m.focus = tr.To
			m.cursor = max(slices.Index(m.snap.Items(tr.To), tr.Item), 0)
			if err := m.store.Verify(); err != nil {
				m.logger.Error("list invariant broken", "err", err.Error())
			}
		}
		if m.journal != nil {
			cmds = append(cmds, recordCmd(m.journal, tr))
		}
	}
	last := outs[len(outs)-1]
	cmds = append(cmds, m.setStatus(m.describe(last), slog.LevelInfo))
	if m.overlay == overlayHistory && m.journal != nil {
		cmds = append(cmds, historyCmd(m.journal))
	}
	return tea.Sequence(cmds...)
}

func (m *appModel) describe(tr model.Transfer) string {
	switch tr.Reason {
	case model.ReasonMoved:
		return fmt.Sprintf("Moved %s to %s", tr.Item, m.titles[tr.To])
	case model.ReasonAlreadyInDestination:
		return fmt.Sprintf("%s is already in %s", tr.Item, m.titles[tr.To])
	default:
		return fmt.Sprintf("Ignored drop of %s (%s)", tr.Item, tr.Reason)
	}
}

func (m *appModel) setStatus(s string, level slog.Level) tea.Cmd {
	m.statusSeq++
	m.status = s
	m.statusLevel = level
	seq := m.statusSeq
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg { return statusFadeMsg{seq: seq} })
}

// moveHover moves the drag hover to region, firing leave/enter as needed.
func (m *appModel) moveHover(region model.CollectionID) {
	if region == m.hover {
		return
	}
	if m.hover != "" {
		m.session.OnDragLeave(m.hover)
	}
	if region != "" {
		m.session.OnDragEnter(region)
	}
	m.hover = region
}

func (m *appModel) endDrag() {
	m.drag = dragNone
	m.hover = ""
	m.pressed = nil
}

func (m *appModel) cancelDrag() tea.Cmd {
	m.pressed = nil
	if m.drag == dragNone {
		return nil
	}
	m.session.OnCancel()
	m.endDrag()
	return m.setStatus("Drag canceled", slog.LevelInfo)
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.overlay != overlayNone {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.panel.LineUp(3)
		case tea.MouseButtonWheelDown:
			m.panel.LineDown(3)
		}
		return nil
	}

	region := m.lay.regionAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.pressed = nil
		chip, ok := m.lay.chipAt(msg.X, msg.Y)
		if !ok {
			if region != "" {
				m.focus = region
				m.clampCursor()
			}
			return nil
		}
		if m.drag == dragKeys {
			m.session.OnCancel()
			m.endDrag()
		}
		m.focus, m.cursor = chip.region, chip.index
		m.pressed = &chip
		return nil

	case tea.MouseActionMotion:
		if m.pressed != nil {
			// The drag starts once the pointer leaves the pressed chip.
			if m.pressed.contains(msg.X, msg.Y) {
				return nil
			}
			item := m.pressed.item
			m.pressed = nil
			m.session.OnDragStart(item)
			if _, ok := m.session.Dragging(); !ok {
				return nil
			}
			m.drag = dragMouse
			m.hover = ""
		}
		if m.drag != dragMouse {
			return nil
		}
		m.moveHover(region)
		return nil

	case tea.MouseActionRelease:
		if m.pressed != nil {
			// Press and release without leaving the chip is a click.
			m.pressed = nil
			return nil
		}
		if m.drag != dragMouse {
			return nil
		}
		item, _ := m.session.Dragging()
		m.endDrag()
		if region == "" {
			m.session.OnCancel()
			return m.setStatus("Drag canceled", slog.LevelInfo)
		}
		m.session.OnDrop(item, region)
		return nil
	}
	return nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if m.overlay != overlayNone {
		switch {
		case key.Matches(msg, m.keys.Cancel),
			m.overlay == overlayHelp && key.Matches(msg, m.keys.Help),
			m.overlay == overlayHistory && key.Matches(msg, m.keys.History):
			m.overlay = overlayNone
			return nil
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		}
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		cmd := m.cancelDrag()
		m.overlay = overlayHelp
		m.refreshPanel()
		m.panel.GotoTop()
		return cmd

	case key.Matches(msg, m.keys.History):
		cmd := m.cancelDrag()
		m.overlay = overlayHistory
		m.refreshPanel()
		m.panel.GotoTop()
		if m.journal == nil {
			return cmd
		}
		return tea.Batch(cmd, historyCmd(m.journal))

	case key.Matches(msg, m.keys.Cancel):
		return m.cancelDrag()

	case key.Matches(msg, m.keys.Left):
		if m.drag == dragNone && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.drag == dragNone && m.cursor < len(m.snap.Items(m.focus))-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Switch):
		if m.drag == dragKeys {
			target := m.hover.Other()
			if target == "" {
				target = m.focus
			}
			m.moveHover(target)
			return nil
		}
		if m.drag == dragNone {
			m.focus = m.focus.Other()
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.PickUp):
		if m.drag != dragNone {
			return nil
		}
		m.pressed = nil
		item, ok := m.focusedItem()
		if !ok {
			return nil
		}
		m.session.OnDragStart(item)
		m.drag = dragKeys
		m.moveHover(m.focus)

	case key.Matches(msg, m.keys.Drop):
		switch m.drag {
		case dragKeys:
			item, _ := m.session.Dragging()
			target := m.hover
			m.endDrag()
			if target == "" {
				m.session.OnCancel()
				return m.setStatus("Drag canceled", slog.LevelInfo)
			}
			m.session.OnDrop(item, target)
		case dragNone:
			// Quick move: pick up, hover the other list, drop.
			item, ok := m.focusedItem()
			if !ok {
				return nil
			}
			to := m.focus.Other()
			m.session.OnDragStart(item)
			m.session.OnDragEnter(to)
			m.session.OnDrop(item, to)
		}
	}
	return nil
}
