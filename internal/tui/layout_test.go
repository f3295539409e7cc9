package tui

import (
	"testing"

	"dragcart/internal/liststore"
	"dragcart/internal/model"

	"github.com/charmbracelet/x/ansi"
)

func fruitSnapshot() liststore.Snapshot {
	return liststore.Snapshot{
		Available: []model.Item{"Apple", "Banana", "Cherry"},
		Selected:  []model.Item{},
	}
}

func TestComputeLayout_Geometry(t *testing.T) {
	t.Parallel()

	lay := computeLayout(40, fruitSnapshot())
	if len(lay.boxes) != 2 {
		t.Fatalf("expected 2 boxes; got %d", len(lay.boxes))
	}
	avail, sel := lay.boxes[0], lay.boxes[1]
	if avail.id != model.CollectionAvailable || sel.id != model.CollectionSelected {
		t.Fatalf("box order: %s, %s", avail.id, sel.id)
	}
	if avail.y != 2 || avail.h != 4 {
		t.Fatalf("available box: y=%d h=%d", avail.y, avail.h)
	}
	if sel.y != 7 || sel.h != 4 {
		t.Fatalf("selected box: y=%d h=%d", sel.y, sel.h)
	}
	if lay.footerY != 12 {
		t.Fatalf("footerY: %d", lay.footerY)
	}

	wantX := []int{2, 10, 19}
	for i, c := range avail.chips {
		if c.x != wantX[i] || c.y != 4 {
			t.Fatalf("chip %d (%s): x=%d y=%d; want x=%d y=4", i, c.item, c.x, c.y, wantX[i])
		}
	}
}

func TestComputeLayout_HitTesting(t *testing.T) {
	t.Parallel()

	lay := computeLayout(40, fruitSnapshot())

	tests := []struct {
		name       string
		x, y       int
		wantRegion model.CollectionID
		wantChip   model.Item
	}{
		{name: "on Apple", x: 3, y: 4, wantRegion: model.CollectionAvailable, wantChip: "Apple"},
		{name: "on Banana padding", x: 10, y: 4, wantRegion: model.CollectionAvailable, wantChip: "Banana"},
		{name: "gap between chips", x: 9, y: 4, wantRegion: model.CollectionAvailable},
		{name: "available title row", x: 3, y: 3, wantRegion: model.CollectionAvailable},
		{name: "available border", x: 0, y: 2, wantRegion: model.CollectionAvailable},
		{name: "between boxes", x: 5, y: 6},
		{name: "inside cart", x: 5, y: 9, wantRegion: model.CollectionSelected},
		{name: "header", x: 1, y: 0},
		{name: "right of screen", x: 40, y: 4},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := lay.regionAt(tt.x, tt.y); got != tt.wantRegion {
				t.Fatalf("regionAt(%d,%d) = %q; want %q", tt.x, tt.y, got, tt.wantRegion)
			}
			c, ok := lay.chipAt(tt.x, tt.y)
			if tt.wantChip == "" {
				if ok {
					t.Fatalf("unexpected chip %q", c.item)
				}
				return
			}
			if !ok || c.item != tt.wantChip {
				t.Fatalf("chipAt(%d,%d) = %q, %v; want %q", tt.x, tt.y, c.item, ok, tt.wantChip)
			}
		})
	}
}

func TestComputeLayout_WrapsRows(t *testing.T) {
	t.Parallel()

	lay := computeLayout(20, fruitSnapshot())
	b, _ := lay.box(model.CollectionAvailable)
	if b.nRows != 2 || b.h != 5 {
		t.Fatalf("expected 2 rows (h=5); got rows=%d h=%d", b.nRows, b.h)
	}
	rows := b.rows()
	if len(rows[0]) != 2 || len(rows[1]) != 1 || rows[1][0].item != "Cherry" || rows[1][0].x != 2 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	sel, _ := lay.box(model.CollectionSelected)
	if sel.y != b.y+b.h+boxGap {
		t.Fatalf("selected box should follow available; y=%d", sel.y)
	}
}

func TestComputeLayout_TruncatesLongLabels(t *testing.T) {
	t.Parallel()

	snap := liststore.Snapshot{Available: []model.Item{"Watermelonade"}}
	lay := computeLayout(10, snap)
	if lay.width != minLayoutW {
		t.Fatalf("width should clamp to %d; got %d", minLayoutW, lay.width)
	}
	c := lay.boxes[0].chips[0]
	if c.item != "Watermelonade" {
		t.Fatalf("item identity must be kept; got %q", c.item)
	}
	if w := ansi.StringWidth(c.label); w != 10 {
		t.Fatalf("label width: %d (%q)", w, c.label)
	}
	if c.x+c.w > 2+lay.boxes[0].inner {
		t.Fatalf("chip overflows box: x=%d w=%d", c.x, c.w)
	}
}
