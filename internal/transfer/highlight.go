package transfer

import "dragcart/internal/model"

// Each region is an independent two-state machine: idle <-> hovering.
// Transitions that do not apply to the current state are ignored.

// Enter marks a region as hovered. It reports whether the state changed.
func (c *Controller) Enter(region model.CollectionID) bool {
	if !region.Valid() || c.regions[region] == model.HighlightHovering {
		return false
	}
	c.regions[region] = model.HighlightHovering
	return true
}

// Leave returns a hovered region to idle. It reports whether the state changed.
func (c *Controller) Leave(region model.CollectionID) bool {
	if !region.Valid() || c.regions[region] != model.HighlightHovering {
		return false
	}
	c.regions[region] = model.HighlightIdle
	return true
}

// Reset returns every region to idle; called when a drag completes.
func (c *Controller) Reset() {
	for _, id := range model.Collections {
		c.regions[id] = model.HighlightIdle
	}
}

func (c *Controller) Highlight(region model.CollectionID) model.Highlight {
	if h, ok := c.regions[region]; ok {
		return h
	}
	return model.HighlightIdle
}

// Highlighted is the per-region flag consumed by renderers.
func (c *Controller) Highlighted(region model.CollectionID) bool {
	return c.Highlight(region) == model.HighlightHovering
}

// Verdict says whether a hovered region would accept item. Idle regions and
// empty items yield VerdictNone.
func (c *Controller) Verdict(region model.CollectionID, item model.Item) model.Verdict {
	if !c.Highlighted(region) || !item.Valid() {
		return model.VerdictNone
	}
	if !c.store.Known(item) || c.store.Contains(region, item) {
		return model.VerdictReject
	}
	return model.VerdictAccept
}
