// Package transfer moves items between the two collections of a
// liststore.Store and tracks which drop region is highlighted during a drag.
//
// Controller holds the transfer rule and the highlight state machine.
// Session is the input surface: it receives drag gestures from a front end,
// drops malformed payloads, and drives the Controller.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"dragcart/internal/liststore"
	"dragcart/internal/model"
)

type Controller struct {
	store  *liststore.Store
	logger *slog.Logger
	now    func() time.Time

	regions   map[model.CollectionID]model.Highlight
	observers []func(model.Transfer)
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source stamped on Transfer outcomes.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func NewController(store *liststore.Store, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		logger:  slog.Default(),
		now:     time.Now,
		regions: map[model.CollectionID]model.Highlight{},
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, id := range model.Collections {
		c.regions[id] = model.HighlightIdle
	}
	return c
}

func (c *Controller) Store() *liststore.Store { return c.store }

// Observe registers fn to receive the outcome of every HandleDrop call.
func (c *Controller) Observe(fn func(model.Transfer)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// HandleDrop moves item from source to destination and reports whether it
// did. Dropping onto the collection that already holds the item is a no-op
// that reports false; so is a drop with source == destination or an item
// outside the universe.
func (c *Controller) HandleDrop(item model.Item, source, destination model.CollectionID) bool {
	out := model.Transfer{Item: item, From: source, To: destination, At: c.now()}

	switch {
	case source == destination || !source.Valid() || !destination.Valid():
		out.Reason = model.ReasonSameCollection
	case !c.store.Known(item):
		out.Reason = model.ReasonUnknownItem
	case c.store.Contains(destination, item):
		out.Reason = model.ReasonAlreadyInDestination
	default:
		c.store.Update(func(tx *liststore.Tx) {
			tx.Remove(source, item)
			tx.InsertSorted(destination, item)
		})
		out.Accepted = true
		out.Reason = model.ReasonMoved
	}

	c.emit(out)
	return out.Accepted
}

func (c *Controller) emit(out model.Transfer) {
	level := slog.LevelDebug
	msg := "item moved"
	if !out.Accepted {
		level = slog.LevelInfo
		msg = "drop ignored"
	}
	c.logger.Log(context.Background(), level, msg,
		"item", out.Item.String(),
		"from", string(out.From),
		"to", string(out.To),
		"reason", string(out.Reason),
	)
	for _, fn := range c.observers {
		fn(out)
	}
}
