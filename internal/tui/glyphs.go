package tui

import (
	"strings"
	"sync"
)

// Some terminal fonts render box-drawing and braille glyphs poorly, so every
// decorative glyph has an ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(pref string) {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

func glyphGrip() string {
	if glyphs() == glyphSetASCII {
		return "::"
	}
	return "⠿"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "·"
}
