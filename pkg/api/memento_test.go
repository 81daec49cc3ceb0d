package api

import (
	"testing"
	"time"
)

func TestNewMemento_NormalizesUTC(t *testing.T) {
	loc := time.FixedZone("PST", -8*60*60)
	m := NewMemento("http://archive.org/a", time.Date(2020, 1, 1, 0, 0, 0, 0, loc))
	if m.DateTime.Location() != time.UTC {
		t.Errorf("timestamp not normalized to UTC: %v", m.DateTime.Location())
	}
	if m.DateTime.Hour() != 8 {
		t.Errorf("UTC conversion wrong: %v", m.DateTime)
	}
}

func TestTimeMap_IsSorted(t *testing.T) {
	sorted := TimeMap{
		NewMemento("a", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		NewMemento("b", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)),
		NewMemento("c", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	if !sorted.IsSorted() {
		t.Error("sorted timemap reported unsorted")
	}

	unsorted := TimeMap{sorted[1], sorted[0], sorted[2]}
	if unsorted.IsSorted() {
		t.Error("unsorted timemap reported sorted")
	}

	if !(TimeMap{}).IsSorted() {
		t.Error("empty timemap should count as sorted")
	}
}

func TestTimeMap_SortedCopies(t *testing.T) {
	tm := TimeMap{
		NewMemento("b", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)),
		NewMemento("a", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	got := tm.Sorted()
	if got[0].URI != "a" || got[1].URI != "b" {
		t.Errorf("sorted order wrong: %v", got)
	}
	if tm[0].URI != "b" {
		t.Error("Sorted mutated the receiver")
	}
}
