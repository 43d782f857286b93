package models

import (
	"encoding/json"
	"testing"
)

func TestDateSetBasics(t *testing.T) {
	s := NewDateSet("2026-08-24", "2026-08-25")

	if !s.Contains("2026-08-24") {
		t.Error("expected set to contain 2026-08-24")
	}
	if s.Contains("2026-08-26") {
		t.Error("did not expect set to contain 2026-08-26")
	}

	s.Add("2026-08-26")
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}

	// Adding an existing member is a no-op
	s.Add("2026-08-24")
	if s.Len() != 3 {
		t.Errorf("Len after duplicate add = %d, want 3", s.Len())
	}

	s.Remove("2026-08-25")
	if s.Contains("2026-08-25") {
		t.Error("expected 2026-08-25 removed")
	}
	s.Remove("not-a-member")
	if s.Len() != 2 {
		t.Errorf("Len after removing non-member = %d, want 2", s.Len())
	}
}

func TestDateSetSorted(t *testing.T) {
	s := NewDateSet("2026-08-26", "2026-08-24", "2026-08-25")
	got := s.Sorted()
	want := []string{"2026-08-24", "2026-08-25", "2026-08-26"}
	if len(got) != len(want) {
		t.Fatalf("Sorted len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDateSetClone(t *testing.T) {
	s := NewDateSet("2026-08-24")
	c := s.Clone()
	c.Add("2026-08-25")

	if s.Contains("2026-08-25") {
		t.Error("mutating the clone changed the original")
	}

	var nilSet DateSet
	nc := nilSet.Clone()
	if nc == nil {
		t.Fatal("Clone of nil set returned nil")
	}
	nc.Add("2026-08-24")
	if !nc.Contains("2026-08-24") {
		t.Error("clone of nil set is not usable")
	}
}

func TestDateSetEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b DateSet
		want bool
	}{
		{"both empty", NewDateSet(), NewDateSet(), true},
		{"nil vs empty", nil, NewDateSet(), true},
		{"same members", NewDateSet("a", "b"), NewDateSet("b", "a"), true},
		{"different size", NewDateSet("a"), NewDateSet("a", "b"), false},
		{"different members", NewDateSet("a", "b"), NewDateSet("a", "c"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateSetJSON(t *testing.T) {
	s := NewDateSet("2026-08-26", "2026-08-24")
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["2026-08-24","2026-08-26"]`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back DateSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(s) {
		t.Errorf("round trip lost members: %v", back.Sorted())
	}

	if err := json.Unmarshal([]byte(`{"bad":"shape"}`), &back); err == nil {
		t.Error("expected error unmarshalling an object into a DateSet")
	}
}

func TestIsScheduledOn(t *testing.T) {
	h := Habit{ScheduledDays: []string{"Monday", "Wednesday"}}

	if !h.IsScheduledOn("Monday") {
		t.Error("expected Monday to be scheduled")
	}
	if h.IsScheduledOn("Tuesday") {
		t.Error("did not expect Tuesday to be scheduled")
	}
	// Labels are case sensitive; near-misses never match
	if h.IsScheduledOn("monday") {
		t.Error("lowercase label must not match")
	}
	if h.IsScheduledOn("Mon") {
		t.Error("abbreviated label must not match")
	}
}

func TestLastCompleted(t *testing.T) {
	h := Habit{CompletedDates: NewDateSet("2026-08-20", "2026-08-25", "2026-08-22")}
	last, ok := h.LastCompleted()
	if !ok || last != "2026-08-25" {
		t.Errorf("LastCompleted = %q, %v; want %q, true", last, ok, "2026-08-25")
	}

	empty := Habit{}
	if _, ok := empty.LastCompleted(); ok {
		t.Error("expected no last completion for an empty habit")
	}
}

func TestDayLegacyAccessor(t *testing.T) {
	h := Habit{ScheduledDays: []string{"Friday", "Saturday"}}
	if got := h.Day(); got != "Friday" {
		t.Errorf("Day = %q, want %q", got, "Friday")
	}

	empty := Habit{}
	if got := empty.Day(); got != "Monday" {
		t.Errorf("Day on empty schedule = %q, want Monday", got)
	}
}

func TestCommitmentLabel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Low"},
		{3, "Low"},
		{4, "Medium"},
		{6, "Medium"},
		{7, "High"},
		{9, "High"},
		{10, "Maximum"},
	}
	for _, tt := range tests {
		if got := CommitmentLabel(tt.level); got != tt.want {
			t.Errorf("CommitmentLabel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
