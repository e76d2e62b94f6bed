package roster

import (
	"fmt"
	"strings"

	"github.com/mkhandekar/personnel-cv/pkg/dates"
)

// Issue is one field-level validation finding. Blocking issues must be
// corrected before generation; the rest are data-quality warnings.
type Issue struct {
	Row      int
	Name     string
	Field    string
	Message  string
	Blocking bool
}

// String renders the issue with a 1-based row reference, using the
// person's name when one is present.
func (i Issue) String() (out string) {
	if i.Name != "" {
		out = fmt.Sprintf("row %d (%s): %s", i.Row+1, i.Name, i.Message)
		return out
	}
	out = fmt.Sprintf("row %d: %s", i.Row+1, i.Message)
	return out
}

// Validate checks every row for missing required fields (blocking) and
// format problems (warnings). It never mutates the roster.
func (r Roster) Validate() (issues []Issue) {
	for i, p := range r {
		name := strings.TrimSpace(p.Name)
		add := func(field, message string, blocking bool) {
			issues = append(issues, Issue{
				Row:      i,
				Name:     name,
				Field:    field,
				Message:  message,
				Blocking: blocking,
			})
		}

		if name == "" {
			add(ColName, "no name", true)
		}
		if strings.TrimSpace(p.JobTitle) == "" {
			add(ColTitle, "no job title", true)
		}
		if strings.TrimSpace(p.Qualification) == "" {
			add(ColQual, "no qualification", true)
		}

		from := strings.TrimSpace(p.From)
		if from == "" {
			add(ColFrom, "no 'From' date (years of experience will be 0)", true)
		} else if _, ok := dates.Parse(from); !ok {
			add(ColFrom, fmt.Sprintf("'From' date %q is in an unsupported format (use MM-YYYY)", from), false)
		}

		if p.YearsExperience == 0 && from != "" {
			add(ColExperience, "0 years of experience (check the 'From' date)", false)
		}
	}
	return issues
}

// HasBlocking reports whether any issue must be fixed before generation.
func HasBlocking(issues []Issue) (blocked bool) {
	for _, issue := range issues {
		if issue.Blocking {
			blocked = true
			return blocked
		}
	}
	return blocked
}
