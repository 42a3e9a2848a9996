package model

import (
	"errors"
	"testing"
)

func TestParseIntervalValid(t *testing.T) {
	n, err := ParseInterval(" 3 ")
	if err != nil {
		t.Fatalf("expected valid interval, got error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestParseIntervalRejectsBadInput(t *testing.T) {
	for _, in := range []string{"0", "-3", "abc", "", "3.5"} {
		if _, err := ParseInterval(in); !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("input %q: expected ErrInvalidInterval, got: %v", in, err)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	task := Task{Title: "Water", Description: "Check soil", IntervalDays: 3}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}

	task.IntervalDays = 0
	if err := task.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got: %v", err)
	}

	task = Task{Title: "  ", IntervalDays: 3}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank title, got nil")
	}
}

func TestFieldEnums(t *testing.T) {
	if !TaskFieldInterval.IsValid() || TaskField("color").IsValid() {
		t.Fatal("task field validity mismatch")
	}
	if !PlantFieldAge.IsValid() || PlantField("height").IsValid() {
		t.Fatal("plant field validity mismatch")
	}
}

func TestDocumentUserCreatesRecord(t *testing.T) {
	doc := Document{}
	rec := doc.User("42")
	if rec == nil || doc["42"] != rec {
		t.Fatal("expected record created in place")
	}
	if rec.Plants == nil {
		t.Fatal("expected empty plant list, got nil")
	}
	if doc.User("42") != rec {
		t.Fatal("expected same record on second call")
	}
}

func TestNormalizeAssignsIDsAndRepairsIntervals(t *testing.T) {
	doc := Document{
		"7": {
			Plants: []Plant{
				{
					Name: "Monstera",
					Age:  "6 months",
					Tasks: []Task{
						{Title: "Water", IntervalDays: 0},
						{Title: "Mist", IntervalDays: 2},
					},
				},
			},
		},
		"8": {},
	}

	doc.Normalize()

	p := doc["7"].Plants[0]
	if p.ID == "" {
		t.Fatal("expected plant ID assigned")
	}
	if p.Tasks[0].ID == "" || p.Tasks[1].ID == "" {
		t.Fatal("expected task IDs assigned")
	}
	if p.Tasks[0].ID == p.Tasks[1].ID {
		t.Fatalf("expected distinct task IDs, got %q twice", p.Tasks[0].ID)
	}
	if p.Tasks[0].IntervalDays != DefaultIntervalDays {
		t.Fatalf("expected default interval, got %d", p.Tasks[0].IntervalDays)
	}
	if p.Tasks[1].IntervalDays != 2 {
		t.Fatalf("expected interval preserved, got %d", p.Tasks[1].IntervalDays)
	}
	if doc["8"].Plants == nil {
		t.Fatal("expected nil plant list repaired")
	}
}

func TestNormalizeKeepsCounterAheadOfExistingIDs(t *testing.T) {
	doc := Document{
		"7": {
			Plants: []Plant{
				{ID: "p9", Name: "Fern", Tasks: []Task{{Title: "Water", IntervalDays: 3}}},
			},
		},
	}
	doc.Normalize()

	rec := doc["7"]
	if rec.Plants[0].Tasks[0].ID != "t10" {
		t.Fatalf("expected counter to continue past p9, got task ID %q", rec.Plants[0].Tasks[0].ID)
	}
	if id := rec.MintPlantID(); id != "p11" {
		t.Fatalf("expected next minted ID p11, got %q", id)
	}
}

func TestPlantDoneCountAndLookups(t *testing.T) {
	p := Plant{
		ID:   "p1",
		Name: "Monstera",
		Tasks: []Task{
			{ID: "t1", Title: "Water", IntervalDays: 3, DoneToday: true},
			{ID: "t2", Title: "Mist", IntervalDays: 2},
		},
	}
	if p.DoneCount() != 1 {
		t.Fatalf("expected 1 done task, got %d", p.DoneCount())
	}
	if p.TaskIndex("t2") != 1 {
		t.Fatalf("expected index 1 for t2, got %d", p.TaskIndex("t2"))
	}
	if p.TaskIndex("t9") != -1 {
		t.Fatal("expected -1 for unknown task ID")
	}
	if !p.NameEquals("monstera") {
		t.Fatal("expected case-insensitive name match")
	}

	rec := &UserRecord{Plants: []Plant{p}}
	if rec.PlantIndex("p1") != 0 || rec.Plant("p1") == nil {
		t.Fatal("expected plant lookup by ID")
	}
	if rec.Plant("p9") != nil {
		t.Fatal("expected nil for unknown plant ID")
	}
}
