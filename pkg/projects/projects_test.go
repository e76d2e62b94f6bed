package projects

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkhandekar/personnel-cv/pkg/dates"
)

//nolint:gochecknoglobals // Shared fixture time
var testNow = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestOverlaps(t *testing.T) {
	project := Project{
		Start: dates.Date{Year: 2018, Month: time.January},
		End:   dates.Date{Year: 2020, Month: time.June},
	}

	tests := []struct {
		name        string
		tenureStart dates.Date
		tenureEnd   dates.Date
		want        bool
	}{
		{
			name:        "tenure inside project window",
			tenureStart: dates.Date{Year: 2019, Month: time.January},
			tenureEnd:   dates.CurrentMonth(testNow),
			want:        true,
		},
		{
			name:        "tenure starts after project ended",
			tenureStart: dates.Date{Year: 2021, Month: time.January},
			tenureEnd:   dates.CurrentMonth(testNow),
			want:        false,
		},
		{
			name:        "boundary month overlaps",
			tenureStart: dates.Date{Year: 2020, Month: time.June},
			tenureEnd:   dates.CurrentMonth(testNow),
			want:        true,
		},
		{
			name:        "tenure ends before project started",
			tenureStart: dates.Date{Year: 2015, Month: time.January},
			tenureEnd:   dates.Date{Year: 2017, Month: time.December},
			want:        false,
		},
		{
			name:        "absent tenure start",
			tenureStart: dates.Date{},
			tenureEnd:   dates.CurrentMonth(testNow),
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := project.Overlaps(tt.tenureStart, tt.tenureEnd, testNow)
			if got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.tenureStart, tt.tenureEnd, got, tt.want)
			}
		})
	}
}

func TestOverlapsDefaults(t *testing.T) {
	tenureStart := dates.Date{Year: 2019, Month: time.January}
	tenureEnd := dates.CurrentMonth(testNow)

	// Absent end means still ongoing: overlaps a current tenure.
	ongoing := Project{Start: dates.Date{Year: 2010, Month: time.May}}
	if !ongoing.Overlaps(tenureStart, tenureEnd, testNow) {
		t.Error("Expected ongoing project to overlap current tenure")
	}

	// Absent start defaults to 1900: overlaps any early tenure.
	openStart := Project{End: dates.Date{Year: 2019, Month: time.June}}
	if !openStart.Overlaps(tenureStart, tenureEnd, testNow) {
		t.Error("Expected open-start project to overlap")
	}
}

func TestEligibleIndices(t *testing.T) {
	projects := []Project{
		{Label: "active", Start: dates.Date{Year: 2018, Month: time.January}, End: dates.Date{Year: 2020, Month: time.June}},
		{Label: "too old", Start: dates.Date{Year: 2000, Month: time.January}, End: dates.Date{Year: 2005, Month: time.December}},
		{Label: "no dates at all"},
		{Label: "ongoing", Start: dates.Date{Year: 2021, Month: time.January}},
	}

	tenureStart := dates.Date{Year: 2019, Month: time.January}
	tenureEnd := dates.CurrentMonth(testNow)

	eligible := EligibleIndices(projects, tenureStart, tenureEnd, testNow)

	want := []int{0, 3}
	if len(eligible) != len(want) {
		t.Fatalf("Expected eligible %v, got %v", want, eligible)
	}
	for i := range want {
		if eligible[i] != want[i] {
			t.Errorf("Expected eligible %v, got %v", want, eligible)
		}
	}
}

func TestSelectorPrefersUnused(t *testing.T) {
	// With 3 eligible projects and 3 picks, no index repeats until all
	// have been used once, across many seeds.
	eligible := []int{0, 1, 2}

	for seed := int64(0); seed < 50; seed++ {
		s := NewSelector(seed)
		seen := map[int]bool{}
		for i := 0; i < 3; i++ {
			idx, ok := s.Pick(eligible)
			if !ok {
				t.Fatalf("Seed %d: expected a pick", seed)
			}
			if seen[idx] {
				t.Fatalf("Seed %d: index %d repeated before exhaustion", seed, idx)
			}
			seen[idx] = true
		}
		if s.UsedCount() != 3 {
			t.Errorf("Seed %d: expected 3 used, got %d", seed, s.UsedCount())
		}
	}
}

func TestSelectorReuseAfterExhaustion(t *testing.T) {
	// One eligible project and two people: the second pick must reuse.
	eligible := []int{7}

	s := NewSelector(1)
	first, ok := s.Pick(eligible)
	if !ok || first != 7 {
		t.Fatalf("Expected first pick 7, got %d ok=%v", first, ok)
	}
	second, ok := s.Pick(eligible)
	if !ok || second != 7 {
		t.Fatalf("Expected reuse of 7, got %d ok=%v", second, ok)
	}
	if s.UsedCount() != 1 {
		t.Errorf("Expected used count 1 after reuse, got %d", s.UsedCount())
	}
}

func TestSelectorEmptyEligible(t *testing.T) {
	s := NewSelector(1)
	_, ok := s.Pick(nil)
	if ok {
		t.Error("Expected no pick from empty eligible set")
	}
}

func TestSelectorDeterministic(t *testing.T) {
	eligible := []int{0, 1, 2, 3, 4}

	run := func() (picks []int) {
		s := NewSelector(42)
		for i := 0; i < 5; i++ {
			idx, _ := s.Pick(eligible)
			picks = append(picks, idx)
		}
		return picks
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Same seed diverged: %v vs %v", first, second)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "projects.csv")

	content := "Start Date,Work Completion date,Company / Project / Position,Relevant Technical & Managerial Experience\n" +
		"01-2018,06-2020,Acme / Metro Line 3 / Site Engineer,--Piling works--Slurry wall\n" +
		",,No Dates Co,\n"

	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	projects, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}

	p := projects[0]
	if p.Start != (dates.Date{Year: 2018, Month: time.January}) {
		t.Errorf("Expected parsed start, got %v", p.Start)
	}
	if p.End != (dates.Date{Year: 2020, Month: time.June}) {
		t.Errorf("Expected parsed end, got %v", p.End)
	}

	if !projects[1].Start.IsZero() || !projects[1].End.IsZero() {
		t.Errorf("Expected absent dates to stay zero, got %+v", projects[1])
	}
}

func TestFromRowsMissingColumn(t *testing.T) {
	_, err := FromRows([]string{"Start Date", "Company / Project / Position"}, nil)
	if err == nil {
		t.Error("Expected error for missing columns, got nil")
	}
}
