package match

import (
	"regexp"
	"strings"

	"github.com/mkhandekar/personnel-cv/pkg/roster"
)

var (
	diplomaRegex = regexp.MustCompile(`(?i)\bdiploma\b`)
	tokenRegex   = regexp.MustCompile(`[\s.,/()\-]+`)
)

// Report is the outcome of classifying a roster against one criterion.
// The five tier slices are pairwise disjoint and together cover the
// whole roster. Which tiers are populated depends on the active filters;
// the Active flags let renderers show only the applicable columns.
type Report struct {
	Role     string
	Required int

	// Tier 1: every active filter satisfied.
	Full roster.Roster
	// Tier 2: title and qualification match, experience insufficient.
	TitleQualNoExp roster.Roster
	// Tier 3: qualification and experience match, title mismatch.
	QualExpNoTitle roster.Roster
	// Tier 4: qualification only.
	QualOnly roster.Roster
	// Tier 5: nothing matched.
	NoMatch roster.Roster

	Missing int

	QualificationActive bool
	ExperienceActive    bool
}

// Classify sorts every person into exactly one tier for the given
// criterion. Pure query: the roster is never mutated.
func Classify(people roster.Roster, c Criterion) (rep Report) {
	rep = Report{
		Role:                c.Name,
		Required:            c.Required,
		QualificationActive: c.HasQualificationFilter(),
		ExperienceActive:    c.HasExperienceFilter(),
	}

	for _, p := range people {
		titleHit := containsFold(p.JobTitle, c.Name)
		expOK := !rep.ExperienceActive || float64(p.YearsExperience) >= c.MinExperience
		// The diploma policy qualifies the qualification filter; it is
		// never applied on its own.
		qualOK := qualificationMatches(p.Qualification, c) && diplomaAllowed(p.Qualification, c)

		switch {
		case rep.QualificationActive && rep.ExperienceActive:
			switch {
			case titleHit && expOK && qualOK:
				rep.Full = append(rep.Full, p)
			case titleHit && qualOK && !expOK:
				rep.TitleQualNoExp = append(rep.TitleQualNoExp, p)
			case !titleHit && expOK && qualOK:
				rep.QualExpNoTitle = append(rep.QualExpNoTitle, p)
			case qualOK && !expOK && !titleHit:
				rep.QualOnly = append(rep.QualOnly, p)
			default:
				rep.NoMatch = append(rep.NoMatch, p)
			}
		case rep.QualificationActive:
			switch {
			case titleHit && qualOK:
				rep.Full = append(rep.Full, p)
			case !titleHit && qualOK:
				rep.QualOnly = append(rep.QualOnly, p)
			default:
				rep.NoMatch = append(rep.NoMatch, p)
			}
		case rep.ExperienceActive:
			switch {
			case titleHit && expOK:
				rep.Full = append(rep.Full, p)
			case !titleHit && expOK:
				rep.QualExpNoTitle = append(rep.QualExpNoTitle, p)
			default:
				rep.NoMatch = append(rep.NoMatch, p)
			}
		default:
			if titleHit {
				rep.Full = append(rep.Full, p)
			} else {
				rep.NoMatch = append(rep.NoMatch, p)
			}
		}
	}

	rep.Missing = c.Required - len(rep.Full)
	if rep.Missing < 0 {
		rep.Missing = 0
	}

	return rep
}

// Total returns the number of classified people across all tiers.
func (r Report) Total() (n int) {
	n = len(r.Full) + len(r.TitleQualNoExp) + len(r.QualExpNoTitle) + len(r.QualOnly) + len(r.NoMatch)
	return n
}

func qualificationMatches(qualification string, c Criterion) (ok bool) {
	if !c.HasQualificationFilter() {
		return true
	}

	lower := strings.ToLower(qualification)
	if c.Mode == ModeExactWord {
		tokens := tokenRegex.Split(lower, -1)
		for _, token := range tokens {
			if token == "" {
				continue
			}
			if c.Keywords.Contains(token) {
				return true
			}
		}
		return false
	}

	for _, kw := range c.Keywords.ToSlice() {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func diplomaAllowed(qualification string, c Criterion) (ok bool) {
	if c.IncludeDiploma {
		return true
	}
	ok = !diplomaRegex.MatchString(qualification)
	return ok
}

func containsFold(haystack, needle string) (ok bool) {
	if needle == "" {
		return false
	}
	ok = strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	return ok
}
