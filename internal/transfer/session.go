package transfer

import (
	"log/slog"

	"dragcart/internal/model"
)

// Events is the gesture surface a front end drives. Pointer, touch and
// keyboard front ends all reduce their input to these calls.
type Events interface {
	OnDragStart(item model.Item)
	OnDragEnter(region model.CollectionID)
	OnDragLeave(region model.CollectionID)
	OnDrop(item model.Item, region model.CollectionID) bool
	OnCancel()
}

// Session implements Events on top of a Controller. It tracks the item being
// dragged and makes sure the Controller only sees well-formed drops.
type Session struct {
	ctrl     *Controller
	logger   *slog.Logger
	dragging model.Item
	active   bool
}

var _ Events = (*Session)(nil)

func NewSession(ctrl *Controller) *Session {
	return &Session{ctrl: ctrl, logger: ctrl.logger}
}

func (s *Session) Controller() *Controller { return s.ctrl }

// Dragging returns the item currently being dragged.
func (s *Session) Dragging() (model.Item, bool) {
	return s.dragging, s.active
}

func (s *Session) OnDragStart(item model.Item) {
	if !item.Valid() || !s.ctrl.store.Known(item) {
		s.logger.Debug("drag start ignored", "item", item.String())
		return
	}
	s.ctrl.Reset()
	s.dragging = item
	s.active = true
}

func (s *Session) OnDragEnter(region model.CollectionID) {
	if !s.active {
		return
	}
	s.ctrl.Enter(region)
}

func (s *Session) OnDragLeave(region model.CollectionID) {
	if !s.active {
		return
	}
	s.ctrl.Leave(region)
}

// OnDrop ends the drag and, for a well-formed payload, moves item into
// region from the opposite collection.
func (s *Session) OnDrop(item model.Item, region model.CollectionID) bool {
	s.end()
	if !item.Valid() || !region.Valid() || !s.ctrl.store.Known(item) {
		s.logger.Debug("malformed drop ignored", "item", item.String(), "region", string(region))
		return false
	}
	return s.ctrl.HandleDrop(item, region.Other(), region)
}

func (s *Session) OnCancel() {
	s.end()
}

func (s *Session) end() {
	s.ctrl.Reset()
	s.dragging = ""
	s.active = false
}
