package liststore

import (
	"errors"
	"reflect"
	"testing"

	"dragcart/internal/model"
)

func items(xs ...string) []model.Item {
	out := make([]model.Item, 0, len(xs))
	for _, x := range xs {
		out = append(out, model.Item(x))
	}
	return out
}

func TestNew_SortsSeedsAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	s, err := New(items("Cherry", "Apple", "Banana"), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := s.Items(model.CollectionAvailable), items("Apple", "Banana", "Cherry"); !reflect.DeepEqual(got, want) {
		t.Fatalf("available: got %v want %v", got, want)
	}
	if got := s.Items(model.CollectionSelected); len(got) != 0 {
		t.Fatalf("expected empty selected; got %v", got)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	tests := []struct {
		name      string
		available []model.Item
		selected  []model.Item
	}{
		{name: "duplicate within", available: items("Apple", "Apple")},
		{name: "duplicate across", available: items("Apple"), selected: items("Apple")},
		{name: "empty id", available: items("Apple", "  ")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tt.available, tt.selected); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestContainsAndLocate(t *testing.T) {
	t.Parallel()

	s, err := New(items("Apple"), items("Banana"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Contains(model.CollectionAvailable, "Apple") || s.Contains(model.CollectionSelected, "Apple") {
		t.Fatalf("unexpected membership for Apple")
	}
	if id, ok := s.Locate("Banana"); !ok || id != model.CollectionSelected {
		t.Fatalf("Locate(Banana) = %q, %v", id, ok)
	}
	if _, ok := s.Locate("Durian"); ok {
		t.Fatalf("expected Durian to be unknown")
	}
	if s.Known("Durian") || !s.Known("Apple") {
		t.Fatalf("Known mismatch")
	}
}

func TestUpdate_RemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	s, _ := New(items("Apple", "Banana"), nil)
	calls := 0
	s.Subscribe(func(Change) { calls++ })

	s.Update(func(tx *Tx) {
		tx.Remove(model.CollectionSelected, "Apple")
		tx.Remove(model.CollectionAvailable, "Durian")
	})
	if calls != 0 {
		t.Fatalf("no-op batch should not notify; got %d", calls)
	}
	if got := s.Items(model.CollectionAvailable); !reflect.DeepEqual(got, items("Apple", "Banana")) {
		t.Fatalf("available changed: %v", got)
	}
}

func TestUpdate_InsertSortedKeepsOrderAndNoDuplicates(t *testing.T) {
	t.Parallel()

	s, _ := New(items("Cherry", "Apple", "Banana"), nil)
	s.Update(func(tx *Tx) {
		tx.Remove(model.CollectionAvailable, "Cherry")
		tx.InsertSorted(model.CollectionSelected, "Cherry")
		tx.Remove(model.CollectionAvailable, "Apple")
		tx.InsertSorted(model.CollectionSelected, "Apple")
		tx.InsertSorted(model.CollectionSelected, "Apple")
	})
	if got, want := s.Items(model.CollectionSelected), items("Apple", "Cherry"); !reflect.DeepEqual(got, want) {
		t.Fatalf("selected: got %v want %v", got, want)
	}
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestUpdate_NotifiesOncePerBatchWithConsistentSnapshot(t *testing.T) {
	t.Parallel()

	s, _ := New(items("Apple", "Banana"), nil)
	var got []Change
	unsubscribe := s.Subscribe(func(ch Change) {
		if err := s.Verify(); err != nil {
			t.Errorf("observer saw broken invariant: %v", err)
		}
		got = append(got, ch)
	})

	s.Update(func(tx *Tx) {
		tx.Remove(model.CollectionAvailable, "Banana")
		tx.InsertSorted(model.CollectionSelected, "Banana")
	})
	if len(got) != 1 {
		t.Fatalf("expected one notification; got %d", len(got))
	}
	wantIDs := []model.CollectionID{model.CollectionAvailable, model.CollectionSelected}
	if !reflect.DeepEqual(got[0].Collections, wantIDs) {
		t.Fatalf("changed collections: got %v want %v", got[0].Collections, wantIDs)
	}
	if !reflect.DeepEqual(got[0].Snapshot.Selected, items("Banana")) {
		t.Fatalf("snapshot selected: %v", got[0].Snapshot.Selected)
	}

	unsubscribe()
	s.Update(func(tx *Tx) {
		tx.Remove(model.CollectionSelected, "Banana")
		tx.InsertSorted(model.CollectionAvailable, "Banana")
	})
	if len(got) != 1 {
		t.Fatalf("unsubscribed observer still notified")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	s, _ := New(items("Apple"), nil)
	snap := s.Snapshot()
	snap.Available[0] = "Mutated"
	if !s.Contains(model.CollectionAvailable, "Apple") {
		t.Fatalf("snapshot aliases store state")
	}
}

func TestVerify_DetectsMissingItem(t *testing.T) {
	t.Parallel()

	s, _ := New(items("Apple", "Banana"), nil)
	s.Update(func(tx *Tx) {
		tx.Remove(model.CollectionAvailable, "Apple")
	})
	err := s.Verify()
	if !errors.Is(err, errMissing) {
		t.Fatalf("expected errMissing; got %v", err)
	}
}

func TestVerify_DetectsItemInBoth(t *testing.T) {
	t.Parallel()

	s, _ := New(items("Apple"), nil)
	s.Update(func(tx *Tx) {
		tx.InsertSorted(model.CollectionSelected, "Apple")
	})
	if err := s.Verify(); !errors.Is(err, errDuplicate) {
		t.Fatalf("expected errDuplicate; got %v", err)
	}
}

func TestTxUseAfterUpdatePanics(t *testing.T) {
	t.Parallel()

	s, _ := New(items("Apple"), nil)
	var leaked *Tx
	s.Update(func(tx *Tx) { leaked = tx })

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	leaked.Remove(model.CollectionAvailable, "Apple")
}
