// Package liststore holds the two item collections ("available" and
// "selected") that together cover a fixed universe of items.
//
// Reads are open to any caller. Mutations go through Update, which batches
// them and notifies subscribers once the batch is complete, so subscribers
// never observe an item that is in neither collection. The transfer package
// is the only intended writer.
//
// A Store is not safe for concurrent use; it is owned by a single event loop.
package liststore

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"dragcart/internal/model"
)

// Snapshot is a point-in-time copy of both collections.
type Snapshot struct {
	Available []model.Item `json:"available"`
	Selected  []model.Item `json:"selected"`
}

// Items returns the snapshot's copy of one collection.
func (s Snapshot) Items(id model.CollectionID) []model.Item {
	switch id {
	case model.CollectionAvailable:
		return s.Available
	case model.CollectionSelected:
		return s.Selected
	default:
		return nil
	}
}

// Change is delivered to subscribers after a batch that modified at least one
// collection.
type Change struct {
	Collections []model.CollectionID
	Snapshot    Snapshot
}

type Store struct {
	lists    map[model.CollectionID][]model.Item
	universe map[model.Item]struct{}

	nextSub int
	subs    map[int]func(Change)
}

// New builds a store from seed lists. Seeds are sorted; empty identifiers and
// duplicate membership (within or across the lists) are rejected.
func New(available, selected []model.Item) (*Store, error) {
	s := &Store{
		lists:    map[model.CollectionID][]model.Item{},
		universe: map[model.Item]struct{}{},
		subs:     map[int]func(Change){},
	}
	seeds := map[model.CollectionID][]model.Item{
		model.CollectionAvailable: available,
		model.CollectionSelected:  selected,
	}
	for _, id := range model.Collections {
		list := make([]model.Item, 0, len(seeds[id]))
		for _, it := range seeds[id] {
			if !it.Valid() {
				return nil, fmt.Errorf("%s: empty item identifier", id)
			}
			if _, dup := s.universe[it]; dup {
				return nil, fmt.Errorf("%s: duplicate item %q", id, it)
			}
			s.universe[it] = struct{}{}
			list = append(list, it)
		}
		sortItems(list)
		s.lists[id] = list
	}
	return s, nil
}

// Contains reports whether item is in the collection. No side effects.
func (s *Store) Contains(id model.CollectionID, item model.Item) bool {
	return slices.Contains(s.lists[id], item)
}

// Items returns a copy of the collection in display order.
func (s *Store) Items(id model.CollectionID) []model.Item {
	return slices.Clone(s.lists[id])
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Available: s.Items(model.CollectionAvailable),
		Selected:  s.Items(model.CollectionSelected),
	}
}

// Known reports whether item is part of the universe.
func (s *Store) Known(item model.Item) bool {
	_, ok := s.universe[item]
	return ok
}

// Universe returns every known item, sorted.
func (s *Store) Universe() []model.Item {
	out := make([]model.Item, 0, len(s.universe))
	for it := range s.universe {
		out = append(out, it)
	}
	sortItems(out)
	return out
}

// Locate returns the collection currently holding item.
func (s *Store) Locate(item model.Item) (model.CollectionID, bool) {
	for _, id := range model.Collections {
		if s.Contains(id, item) {
			return id, true
		}
	}
	return "", false
}

// Subscribe registers fn to be called after every batch that changed
// something. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Update runs fn as one mutation batch.
func (s *Store) Update(fn func(tx *Tx)) {
	tx := &Tx{store: s, dirty: map[model.CollectionID]bool{}}
	fn(tx)
	tx.done = true
	if len(tx.dirty) == 0 {
		return
	}

	ch := Change{Snapshot: s.Snapshot()}
	for _, id := range model.Collections {
		if tx.dirty[id] {
			ch.Collections = append(ch.Collections, id)
		}
	}
	keys := make([]int, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if fn := s.subs[k]; fn != nil {
			fn(ch)
		}
	}
}

var (
	errMissing   = errors.New("item in no collection")
	errDuplicate = errors.New("item in both collections")
)

// Verify checks the universe invariant: every known item is in exactly one
// collection, no collection holds duplicates or unknown items, and each
// collection is sorted.
func (s *Store) Verify() error {
	seen := map[model.Item]model.CollectionID{}
	for _, id := range model.Collections {
		list := s.lists[id]
		if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i] < list[j] }) {
			return fmt.Errorf("%s: not sorted: %v", id, list)
		}
		for _, it := range list {
			if _, ok := s.universe[it]; !ok {
				return fmt.Errorf("%s: unknown item %q", id, it)
			}
			if prev, ok := seen[it]; ok {
				if prev == id {
					return fmt.Errorf("%s: repeated item %q", id, it)
				}
				return fmt.Errorf("%q: %w", it, errDuplicate)
			}
			seen[it] = id
		}
	}
	for it := range s.universe {
		if _, ok := seen[it]; !ok {
			return fmt.Errorf("%q: %w", it, errMissing)
		}
	}
	return nil
}

// Tx is the mutation handle passed to Update. It must not be retained after
// Update returns.
type Tx struct {
	store *Store
	dirty map[model.CollectionID]bool
	done  bool
}

func (tx *Tx) check() {
	if tx.done {
		panic("liststore: Tx used after Update returned")
	}
}

func (tx *Tx) Contains(id model.CollectionID, item model.Item) bool {
	return tx.store.Contains(id, item)
}

// Remove deletes item from the collection if present; otherwise it does nothing.
func (tx *Tx) Remove(id model.CollectionID, item model.Item) {
	tx.check()
	list := tx.store.lists[id]
	i := slices.Index(list, item)
	if i < 0 {
		return
	}
	tx.store.lists[id] = slices.Delete(list, i, i+1)
	tx.dirty[id] = true
}

// InsertSorted appends item and re-sorts the collection. An item already
// present is left alone so the collection never holds duplicates.
func (tx *Tx) InsertSorted(id model.CollectionID, item model.Item) {
	tx.check()
	if !id.Valid() || tx.store.Contains(id, item) {
		return
	}
	list := append(tx.store.lists[id], item)
	sortItems(list)
	tx.store.lists[id] = list
	tx.dirty[id] = true
}

func sortItems(items []model.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
}
