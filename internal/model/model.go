package model

import (
	"strings"
	"time"
)

// Item is an immutable, globally unique text identifier for a draggable unit.
type Item string

func (i Item) String() string { return string(i) }

// Valid reports whether the identifier is usable (non-empty after trimming).
func (i Item) Valid() bool {
	return strings.TrimSpace(string(i)) != ""
}

type CollectionID string

const (
	CollectionAvailable CollectionID = "available"
	CollectionSelected  CollectionID = "selected"
)

// Collections lists both collection ids in display order.
var Collections = []CollectionID{CollectionAvailable, CollectionSelected}

func (c CollectionID) Valid() bool {
	return c == CollectionAvailable || c == CollectionSelected
}

// Other returns the opposite collection. Unknown ids map to "".
func (c CollectionID) Other() CollectionID {
	switch c {
	case CollectionAvailable:
		return CollectionSelected
	case CollectionSelected:
		return CollectionAvailable
	default:
		return ""
	}
}

// ParseCollectionID accepts the canonical ids plus a few friendly aliases
// ("cart" for selected, "items" for available).
func ParseCollectionID(s string) (CollectionID, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available", "avail", "items":
		return CollectionAvailable, true
	case "selected", "cart":
		return CollectionSelected, true
	default:
		return "", false
	}
}

type Highlight string

const (
	HighlightIdle     Highlight = "idle"
	HighlightHovering Highlight = "hovering"
)

// Verdict is the item-aware variant of a region's highlight.
type Verdict string

const (
	VerdictNone   Verdict = "none"
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
)

type TransferReason string

const (
	ReasonMoved                TransferReason = "moved"
	ReasonAlreadyInDestination TransferReason = "already-in-destination"
	ReasonSameCollection       TransferReason = "same-collection"
	ReasonUnknownItem          TransferReason = "unknown-item"
)

// Transfer is the outcome of one drop attempt.
type Transfer struct {
	Item     Item           `json:"item"`
	From     CollectionID   `json:"from"`
	To       CollectionID   `json:"to"`
	Accepted bool           `json:"accepted"`
	Reason   TransferReason `json:"reason"`
	At       time.Time      `json:"at"`
}
