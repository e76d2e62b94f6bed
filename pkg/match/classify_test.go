package match

import (
	"testing"

	"github.com/mkhandekar/personnel-cv/pkg/roster"
)

func testRoster() (r roster.Roster) {
	r = roster.Roster{
		{Name: "Asha", JobTitle: "Civil Engineer", Qualification: "B.E. Civil", YearsExperience: 8},
		{Name: "Ravi", JobTitle: "Civil Engineer", Qualification: "B.E. Civil", YearsExperience: 3},
		{Name: "Meera", JobTitle: "Site Supervisor", Qualification: "M.Tech. Civil", YearsExperience: 10},
		{Name: "Kiran", JobTitle: "Site Supervisor", Qualification: "B.E. Civil", YearsExperience: 2},
		{Name: "Vikram", JobTitle: "Site Supervisor", Qualification: "Diploma Civil", YearsExperience: 10},
		{Name: "Sunita", JobTitle: "Accountant", Qualification: "B.Com", YearsExperience: 12},
	}
	return r
}

func criterionCivil() (c Criterion) {
	c = NewCriterion("Civil Engineer", 2, "civil")
	c.MinExperience = 5
	c.Mode = ModeContains
	c.IncludeDiploma = false
	return c
}

func TestClassifyBothFiltersActive(t *testing.T) {
	rep := Classify(testRoster(), criterionCivil())

	if !rep.QualificationActive || !rep.ExperienceActive {
		t.Fatal("Expected both filters active")
	}

	assertNames(t, "Full", rep.Full, "Asha")
	// E2E: right title and qualification, 3 < 5 years.
	assertNames(t, "TitleQualNoExp", rep.TitleQualNoExp, "Ravi")
	assertNames(t, "QualExpNoTitle", rep.QualExpNoTitle, "Meera")
	assertNames(t, "QualOnly", rep.QualOnly, "Kiran")
	// E2E: Vikram's Diploma Civil is excluded by the diploma policy even
	// with 10 years of experience.
	assertNames(t, "NoMatch", rep.NoMatch, "Vikram", "Sunita")

	if rep.Missing != 1 {
		t.Errorf("Expected missing 1 (required 2, matched 1), got %d", rep.Missing)
	}
}

func TestClassifyIncludeDiploma(t *testing.T) {
	c := criterionCivil()
	c.IncludeDiploma = true

	rep := Classify(testRoster(), c)

	// With diplomas included, Vikram has qualification and experience
	// but the wrong title.
	assertNames(t, "QualExpNoTitle", rep.QualExpNoTitle, "Meera", "Vikram")
}

func TestClassifyQualificationOnlyFilter(t *testing.T) {
	c := NewCriterion("Civil Engineer", 1, "civil")
	c.IncludeDiploma = true

	rep := Classify(testRoster(), c)

	assertNames(t, "Full", rep.Full, "Asha", "Ravi")
	assertNames(t, "QualOnly", rep.QualOnly, "Meera", "Kiran", "Vikram")
	assertNames(t, "NoMatch", rep.NoMatch, "Sunita")
	if len(rep.TitleQualNoExp) != 0 || len(rep.QualExpNoTitle) != 0 {
		t.Error("Expected tiers 2 and 3 empty with only the qualification filter")
	}
}

func TestClassifyExperienceOnlyFilter(t *testing.T) {
	c := NewCriterion("Civil Engineer", 1)
	c.MinExperience = 5

	rep := Classify(testRoster(), c)

	assertNames(t, "Full", rep.Full, "Asha")
	assertNames(t, "QualExpNoTitle", rep.QualExpNoTitle, "Meera", "Vikram", "Sunita")
	assertNames(t, "NoMatch", rep.NoMatch, "Ravi", "Kiran")
	if len(rep.TitleQualNoExp) != 0 || len(rep.QualOnly) != 0 {
		t.Error("Expected tiers 2 and 4 empty with only the experience filter")
	}
}

func TestClassifyNoFilters(t *testing.T) {
	c := NewCriterion("Site Supervisor", 1)

	rep := Classify(testRoster(), c)

	assertNames(t, "Full", rep.Full, "Meera", "Kiran", "Vikram")
	assertNames(t, "NoMatch", rep.NoMatch, "Asha", "Ravi", "Sunita")
}

func TestClassifyPartitionInvariant(t *testing.T) {
	// Every filter combination must partition the roster with no
	// overlap and no gap.
	people := testRoster()

	criteria := []Criterion{}

	base := NewCriterion("Civil Engineer", 1, "civil")
	base.MinExperience = 5
	criteria = append(criteria, base)

	qualOnly := NewCriterion("Civil Engineer", 1, "civil")
	criteria = append(criteria, qualOnly)

	expOnly := NewCriterion("Civil Engineer", 1)
	expOnly.MinExperience = 5
	criteria = append(criteria, expOnly)

	criteria = append(criteria, NewCriterion("Civil Engineer", 1))

	exact := NewCriterion("Engineer", 3, "civil", "mechanical")
	exact.Mode = ModeExactWord
	exact.MinExperience = 2.5
	exact.IncludeDiploma = true
	criteria = append(criteria, exact)

	for _, c := range criteria {
		rep := Classify(people, c)

		if rep.Total() != len(people) {
			t.Errorf("Criterion %+v: tiers cover %d of %d people", c, rep.Total(), len(people))
		}

		seen := map[string]int{}
		for _, tier := range []roster.Roster{rep.Full, rep.TitleQualNoExp, rep.QualExpNoTitle, rep.QualOnly, rep.NoMatch} {
			for _, p := range tier {
				seen[p.Name]++
			}
		}
		for name, count := range seen {
			if count != 1 {
				t.Errorf("Criterion %+v: %s classified %d times", c, name, count)
			}
		}
	}
}

func TestQualificationExactWord(t *testing.T) {
	c := NewCriterion("Engineer", 1, "civil")
	c.Mode = ModeExactWord
	c.IncludeDiploma = true

	tests := []struct {
		name          string
		qualification string
		want          bool
	}{
		{
			name:          "token after dot",
			qualification: "B.E. Civil",
			want:          true,
		},
		{
			name:          "token in phrase",
			qualification: "Civil Engineering",
			want:          true,
		},
		{
			name:          "substring is not a token",
			qualification: "Civilization Studies",
			want:          false,
		},
		{
			name:          "slash delimited",
			qualification: "B.Tech/Civil",
			want:          true,
		},
		{
			name:          "hyphen delimited",
			qualification: "Civil-Structural",
			want:          true,
		},
		{
			name:          "no match",
			qualification: "B.Com",
			want:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qualificationMatches(tt.qualification, c)
			if got != tt.want {
				t.Errorf("qualificationMatches(%q) = %v, want %v", tt.qualification, got, tt.want)
			}
		})
	}
}

func TestDiplomaAllowed(t *testing.T) {
	c := NewCriterion("X", 1)
	c.IncludeDiploma = false

	if diplomaAllowed("Diploma Civil", c) {
		t.Error("Expected diploma holder excluded")
	}
	if diplomaAllowed("Post-DIPLOMA Mechanical", c) {
		t.Error("Expected case-insensitive whole-word diploma exclusion")
	}
	if !diplomaAllowed("B.E. Civil", c) {
		t.Error("Expected degree holder allowed")
	}
	// "diploma" as substring of a longer word is not a whole-word hit.
	if !diplomaAllowed("Diplomatic Studies", c) {
		t.Error("Expected non-whole-word match allowed")
	}
}

func assertNames(t *testing.T, tier string, got roster.Roster, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: expected %v, got %d rows", tier, want, len(got))
		return
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("%s[%d]: expected %s, got %s", tier, i, name, got[i].Name)
		}
	}
}
