package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "cli,rules,tui" {
		t.Fatalf("topics = %q", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" TUI ")
	if !ok || !strings.Contains(body, "{{available}}") {
		t.Fatalf("expected tui topic with placeholders; ok=%v", ok)
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("unknown topic should not resolve")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("empty topic should not resolve")
	}
}

func TestWithTitles(t *testing.T) {
	t.Parallel()

	got := WithTitles("{{available}} -> {{selected}}", "Pantry", "Basket")
	if got != "Pantry -> Basket" {
		t.Fatalf("got %q", got)
	}
}

func TestRulesDescribeOwnListDrops(t *testing.T) {
	t.Parallel()

	body, ok := Get("rules")
	if !ok {
		t.Fatalf("rules topic missing")
	}
	i := strings.Index(body, "`already-in-destination`")
	if i < 0 || !strings.Contains(body[i:], "back onto the list it came from") {
		t.Fatalf("own-list drops should be documented as already-in-destination:\n%s", body)
	}
	if !strings.Contains(body, "called directly") {
		t.Fatalf("same-collection should be documented as a direct-call outcome:\n%s", body)
	}
}
