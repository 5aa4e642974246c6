package exercises

import "testing"

func TestLookupKnownNames(t *testing.T) {
	cases := []struct {
		name    string
		wantCat uint16
		wantSub uint16
	}{
		{"Bench Press (Barbell)", 0, 1},
		{"Squat (Barbell)", 28, 6},
		{"Deadlift (Barbell)", 8, 0},
		{"Lat Pulldown (Cable)", 21, 13},
		{"Overhead Press (Barbell)", 24, 14},
		{"Bicep Curl (Barbell)", 7, 3},
		{"Plank", 19, 43},
		{"Running", 32, 0},
	}

	for _, tc := range cases {
		cat, display := Lookup(tc.name)
		if cat.Category != tc.wantCat || cat.Subcategory != tc.wantSub {
			t.Errorf("Lookup(%q) = (%d, %d), want (%d, %d)",
				tc.name, cat.Category, cat.Subcategory, tc.wantCat, tc.wantSub)
		}
		if display != tc.name {
			t.Errorf("Lookup(%q) display = %q, want input echoed", tc.name, display)
		}
		if cat.Unknown() {
			t.Errorf("Lookup(%q) flagged unknown for a catalog entry", tc.name)
		}
	}
}

func TestLookupTotality(t *testing.T) {
	// Every catalog entry must round-trip exactly.
	for name, want := range catalog {
		got, display := Lookup(name)
		if got != want {
			t.Errorf("Lookup(%q) = %+v, want %+v", name, got, want)
		}
		if display != name {
			t.Errorf("Lookup(%q) display = %q", name, display)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	unknowns := []string{
		"",
		"Completely Made Up Movement",
		"bench press (barbell)", // matching is case-sensitive
		"Bench Press (Barbell) ",
		"スクワット",
	}

	for _, name := range unknowns {
		cat, display := Lookup(name)
		if cat.Category != UnknownCategory || cat.Subcategory != 0 {
			t.Errorf("Lookup(%q) = (%d, %d), want (%d, 0)",
				name, cat.Category, cat.Subcategory, UnknownCategory)
		}
		if !cat.Unknown() {
			t.Errorf("Lookup(%q) should report unknown", name)
		}
		if display != name {
			t.Errorf("Lookup(%q) display = %q, want input echoed", name, display)
		}
	}
}

func TestCatalogSize(t *testing.T) {
	if n := CatalogSize(); n < 400 {
		t.Errorf("catalog unexpectedly small: %d entries", n)
	}
}
