package model

import "testing"

func TestItemValid(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   Item
		want bool
	}{
		{"Apple", true},
		{" x ", true},
		{"", false},
		{"  \t", false},
	} {
		if got := tc.in.Valid(); got != tc.want {
			t.Fatalf("Item(%q).Valid() = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestCollectionOther(t *testing.T) {
	t.Parallel()

	if CollectionAvailable.Other() != CollectionSelected || CollectionSelected.Other() != CollectionAvailable {
		t.Fatalf("Other should swap the two collections")
	}
	if CollectionID("trash").Other() != "" {
		t.Fatalf("unknown collection should have no opposite")
	}
	if CollectionID("trash").Valid() {
		t.Fatalf("unknown collection should be invalid")
	}
}

func TestParseCollectionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want CollectionID
		ok   bool
	}{
		{"available", CollectionAvailable, true},
		{" Items ", CollectionAvailable, true},
		{"selected", CollectionSelected, true},
		{"CART", CollectionSelected, true},
		{"trash", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseCollectionID(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseCollectionID(%q) = %q,%v; want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
