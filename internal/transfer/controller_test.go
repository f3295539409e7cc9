package transfer

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"dragcart/internal/liststore"
	"dragcart/internal/model"
)

var (
	avail = model.CollectionAvailable
	cart  = model.CollectionSelected
)

func items(xs ...string) []model.Item {
	out := make([]model.Item, 0, len(xs))
	for _, x := range xs {
		out = append(out, model.Item(x))
	}
	return out
}

func newTestController(t *testing.T, available, selected []model.Item) *Controller {
	t.Helper()
	st, err := liststore.New(available, selected)
	if err != nil {
		t.Fatalf("liststore.New: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewController(st, WithLogger(logger), WithClock(func() time.Time { return fixed }))
}

func mustVerify(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.Store().Verify(); err != nil {
		t.Fatalf("universe invariant broken: %v", err)
	}
}

func TestHandleDrop_MovesBananaToCart(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple", "Banana", "Cherry"), nil)
	if ok := c.HandleDrop("Banana", avail, cart); !ok {
		t.Fatalf("expected move to succeed")
	}
	mustVerify(t, c)

	if got, want := c.Store().Items(avail), items("Apple", "Cherry"); !reflect.DeepEqual(got, want) {
		t.Fatalf("available: got %v want %v", got, want)
	}
	if got, want := c.Store().Items(cart), items("Banana"); !reflect.DeepEqual(got, want) {
		t.Fatalf("selected: got %v want %v", got, want)
	}
}

func TestHandleDrop_AlreadyInDestinationIsNoop(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple"), items("Banana"))
	before := c.Store().Snapshot()
	if ok := c.HandleDrop("Banana", avail, cart); ok {
		t.Fatalf("expected drop into current container to report false")
	}
	mustVerify(t, c)
	if after := c.Store().Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed:\nbefore %#v\nafter  %#v", before, after)
	}
}

func TestHandleDrop_TwiceInARow(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple", "Banana", "Cherry"), nil)
	if !c.HandleDrop("Cherry", avail, cart) {
		t.Fatalf("first drop should move")
	}
	snap := c.Store().Snapshot()
	if c.HandleDrop("Cherry", avail, cart) {
		t.Fatalf("second drop should be rejected")
	}
	mustVerify(t, c)
	if !reflect.DeepEqual(snap, c.Store().Snapshot()) {
		t.Fatalf("second drop changed state")
	}
}

func TestHandleDrop_DestinationStaysSorted(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple", "Banana", "Cherry", "Date"), nil)
	for _, it := range items("Date", "Banana", "Cherry", "Apple") {
		if !c.HandleDrop(it, avail, cart) {
			t.Fatalf("drop %s failed", it)
		}
		mustVerify(t, c)
	}
	if got, want := c.Store().Items(cart), items("Apple", "Banana", "Cherry", "Date"); !reflect.DeepEqual(got, want) {
		t.Fatalf("selected: got %v want %v", got, want)
	}

	if !c.HandleDrop("Cherry", cart, avail) || !c.HandleDrop("Apple", cart, avail) {
		t.Fatalf("moving back failed")
	}
	if got, want := c.Store().Items(avail), items("Apple", "Cherry"); !reflect.DeepEqual(got, want) {
		t.Fatalf("available: got %v want %v", got, want)
	}
	mustVerify(t, c)
}

func TestHandleDrop_RejectsSameCollectionAndUnknownItems(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple"), nil)
	var outcomes []model.Transfer
	c.Observe(func(tr model.Transfer) { outcomes = append(outcomes, tr) })

	if c.HandleDrop("Apple", avail, avail) {
		t.Fatalf("same-collection drop must be rejected")
	}
	if c.HandleDrop("Durian", avail, cart) {
		t.Fatalf("unknown item must be rejected")
	}
	mustVerify(t, c)

	want := []model.TransferReason{model.ReasonSameCollection, model.ReasonUnknownItem}
	if len(outcomes) != len(want) {
		t.Fatalf("expected %d outcomes; got %d", len(want), len(outcomes))
	}
	for i, r := range want {
		if outcomes[i].Reason != r || outcomes[i].Accepted {
			t.Fatalf("outcome %d: got %#v want reason %s", i, outcomes[i], r)
		}
	}
}

func TestHandleDrop_ReportsOutcome(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple"), nil)
	var got model.Transfer
	c.Observe(func(tr model.Transfer) { got = tr })

	c.HandleDrop("Apple", avail, cart)
	want := model.Transfer{
		Item:     "Apple",
		From:     avail,
		To:       cart,
		Accepted: true,
		Reason:   model.ReasonMoved,
		At:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if got != want {
		t.Fatalf("outcome:\n got %#v\nwant %#v", got, want)
	}
}

func TestHighlightStateMachine(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple"), nil)
	if c.Highlighted(avail) || c.Highlighted(cart) {
		t.Fatalf("regions should start idle")
	}

	if !c.Enter(cart) {
		t.Fatalf("idle -> hovering should change state")
	}
	if c.Enter(cart) {
		t.Fatalf("entering a hovered region should be a no-op")
	}
	if !c.Highlighted(cart) || c.Highlighted(avail) {
		t.Fatalf("regions must be independent")
	}

	if c.Leave(avail) {
		t.Fatalf("leaving an idle region should be a no-op")
	}
	if !c.Leave(cart) || c.Highlighted(cart) {
		t.Fatalf("hovering -> idle failed")
	}

	c.Enter(avail)
	c.Enter(cart)
	c.Reset()
	for _, id := range model.Collections {
		if c.Highlight(id) != model.HighlightIdle {
			t.Fatalf("%s not idle after reset", id)
		}
	}
	if c.Enter("bogus") {
		t.Fatalf("unknown region should be ignored")
	}
}

func TestVerdict(t *testing.T) {
	t.Parallel()

	c := newTestController(t, items("Apple"), items("Banana"))
	if v := c.Verdict(cart, "Apple"); v != model.VerdictNone {
		t.Fatalf("idle region verdict: %s", v)
	}
	c.Enter(cart)
	if v := c.Verdict(cart, "Apple"); v != model.VerdictAccept {
		t.Fatalf("Apple over cart: %s", v)
	}
	if v := c.Verdict(cart, "Banana"); v != model.VerdictReject {
		t.Fatalf("Banana over cart: %s", v)
	}
	if v := c.Verdict(cart, ""); v != model.VerdictNone {
		t.Fatalf("empty item verdict: %s", v)
	}
}
