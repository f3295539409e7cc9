package tui

import "testing"

func TestGlyphs_Preference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	if glyphArrow() != "->" || glyphEllipsis() != "..." {
		t.Fatalf("ascii glyphs: %q %q", glyphArrow(), glyphEllipsis())
	}

	// Unknown values are ignored (keep current).
	applyGlyphPreference("bogus")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}

	applyGlyphPreference("UNICODE")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs; got %v", got)
	}
}
