package project

import "testing"

func TestNextVersionSameYearIncrementsMinor(t *testing.T) {
	got := NextVersion(Version{Major: 3, Minor: 1, ReleaseYear: 2026}, 2026)
	want := Version{Major: 3, Minor: 2, ReleaseYear: 2026}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNextVersionNewYearIncrementsMajorResetsMinor(t *testing.T) {
	got := NextVersion(Version{Major: 3, Minor: 4, ReleaseYear: 2025}, 2026)
	want := Version{Major: 4, Minor: 0, ReleaseYear: 2026}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
