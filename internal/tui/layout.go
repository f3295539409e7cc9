package tui

import (
	"dragcart/internal/liststore"
	"dragcart/internal/model"

	"github.com/charmbracelet/x/ansi"
)

// Screen geometry shared by View and mouse hit testing. View renders exactly
// the rows computed here, so a cell that hit tests as a chip is drawn as that
// chip.
//
//	y=0            header
//	y=1            hint
//	y=2..          box per collection (border, title, chip rows, border)
//	               blank line between boxes
//	footerY        status line, then help line

const (
	headerLines  = 2
	boxGap       = 1
	boxChrome    = 2 // left/right border
	boxPaddingX  = 1
	chipGap      = 1
	minLayoutW   = 16
	defaultWidth = 60
)

type chipRect struct {
	region model.CollectionID
	index  int
	item   model.Item
	label  string
	x, y   int
	w      int
}

func (c chipRect) contains(x, y int) bool {
	return y == c.y && x >= c.x && x < c.x+c.w
}

type regionBox struct {
	id     model.CollectionID
	x, y   int
	w, h   int
	inner  int
	chips  []chipRect
	nRows  int
	rowsY0 int
}

func (b regionBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// rows groups the box's chips by line, preserving order.
func (b regionBox) rows() [][]chipRect {
	out := make([][]chipRect, b.nRows)
	for _, c := range b.chips {
		r := c.y - b.rowsY0
		out[r] = append(out[r], c)
	}
	return out
}

type layout struct {
	width   int
	boxes   []regionBox
	footerY int
}

func chipWidth(label string) int {
	return ansi.StringWidth(label) + 2*boxPaddingX
}

func computeLayout(width int, snap liststore.Snapshot) layout {
	if width <= 0 {
		width = defaultWidth
	}
	if width < minLayoutW {
		width = minLayoutW
	}
	inner := width - boxChrome - 2*boxPaddingX
	maxLabel := inner - 2*boxPaddingX

	lay := layout{width: width}
	y := headerLines
	for _, id := range model.Collections {
		b := regionBox{id: id, x: 0, y: y, w: width, inner: inner, rowsY0: y + 2}
		contentX0 := b.x + 1 + boxPaddingX
		x := contentX0
		row := 0
		for i, it := range snap.Items(id) {
			label := string(it)
			if ansi.StringWidth(label) > maxLabel {
				label = ansi.Truncate(label, maxLabel, glyphEllipsis())
			}
			w := chipWidth(label)
			if x > contentX0 && x+w > contentX0+inner {
				row++
				x = contentX0
			}
			b.chips = append(b.chips, chipRect{
				region: id,
				index:  i,
				item:   it,
				label:  label,
				x:      x,
				y:      b.rowsY0 + row,
				w:      w,
			})
			x += w + chipGap
		}
		b.nRows = row + 1
		if len(b.chips) == 0 {
			b.nRows = 1
		}
		// top border + title + rows + bottom border
		b.h = 3 + b.nRows
		lay.boxes = append(lay.boxes, b)
		y += b.h + boxGap
	}
	lay.footerY = y
	return lay
}

func (l layout) box(id model.CollectionID) (regionBox, bool) {
	for _, b := range l.boxes {
		if b.id == id {
			return b, true
		}
	}
	return regionBox{}, false
}

// regionAt returns the drop region under the cell, or "".
func (l layout) regionAt(x, y int) model.CollectionID {
	for _, b := range l.boxes {
		if b.contains(x, y) {
			return b.id
		}
	}
	return ""
}

func (l layout) chipAt(x, y int) (chipRect, bool) {
	for _, b := range l.boxes {
		if !b.contains(x, y) {
			continue
		}
		for _, c := range b.chips {
			if c.contains(x, y) {
				return c, true
			}
		}
	}
	return chipRect{}, false
}
