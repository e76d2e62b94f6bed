package roster

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkhandekar/personnel-cv/pkg/dates"
	"github.com/pkg/errors"
)

// Canonical column names of the personnel table.
const (
	ColName       = "Name"
	ColQual       = "Qualification"
	ColTitle      = "Job Title"
	ColFrom       = "From"
	ColTo         = "To"
	ColExperience = "Years of Experience"
)

// RequiredColumns are the columns every personnel table must carry.
//
//nolint:gochecknoglobals // Column schema constants
var RequiredColumns = []string{ColName, ColQual, ColTitle, ColFrom, ColExperience}

// Person is one personnel record. Extra holds columns outside the known
// schema, passed through untouched.
type Person struct {
	ID              string
	Name            string
	Qualification   string
	JobTitle        string
	From            string
	To              string
	YearsExperience int
	Extra           map[string]string
}

// Roster is an ordered personnel table.
type Roster []Person

// FromRows builds a roster from a loosely-typed table. Unknown columns
// land in Extra, stored experience values are coerced to integers (0 on
// failure), and To is normalized to "Present".
func FromRows(header []string, rows [][]string) (r Roster, err error) {
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	missing := []string{}
	for _, want := range RequiredColumns {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		err = errors.Errorf("personnel table missing required columns: %s", strings.Join(missing, ", "))
		return r, err
	}

	r = make(Roster, 0, len(rows))
	for _, row := range rows {
		cell := func(name string) (val string) {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			val = strings.TrimSpace(row[idx])
			return val
		}

		p := Person{
			ID:              uuid.New().String(),
			Name:            cell(ColName),
			Qualification:   cell(ColQual),
			JobTitle:        cell(ColTitle),
			From:            cell(ColFrom),
			To:              "Present",
			YearsExperience: coerceYears(cell(ColExperience)),
		}

		for name, idx := range cols {
			if isKnownColumn(name) || idx >= len(row) {
				continue
			}
			if p.Extra == nil {
				p.Extra = map[string]string{}
			}
			p.Extra[name] = strings.TrimSpace(row[idx])
		}

		r = append(r, p)
	}

	return r, err
}

// RecomputeExperience overwrites YearsExperience for every person with a
// parseable From date; everyone else keeps the stored value. This is the
// single place tenure is re-derived; call it after any mutation of From.
func (r Roster) RecomputeExperience(now time.Time) {
	for i := range r {
		start, ok := dates.Parse(r[i].From)
		if ok {
			r[i].YearsExperience = dates.YearsSince(start, now)
		}
		if r[i].YearsExperience < 0 {
			r[i].YearsExperience = 0
		}
	}
}

// NormalizeDates rewrites every parseable From value to display form
// MM-YYYY and pins To to "Present". Unparseable From values are left
// as entered so validation can report them.
func (r Roster) NormalizeDates() {
	for i := range r {
		if formatted := dates.Format(r[i].From, false); formatted != "" {
			r[i].From = formatted
		}
		r[i].To = "Present"
	}
}

// DropEmptyRows removes rows where every field is blank.
func (r Roster) DropEmptyRows() (out Roster, removed int) {
	out = make(Roster, 0, len(r))
	for _, p := range r {
		if p.Name == "" && p.Qualification == "" && p.JobTitle == "" && p.From == "" {
			removed++
			continue
		}
		out = append(out, p)
	}
	return out, removed
}

// Delete removes the rows with the selected IDs. Unknown IDs are
// ignored.
func (r Roster) Delete(selected []string) (out Roster) {
	drop := map[string]bool{}
	for _, id := range selected {
		drop[id] = true
	}
	out = make(Roster, 0, len(r))
	for _, p := range r {
		if drop[p.ID] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Add validates and appends a new person. All fields are mandatory and
// From must be hand-entered in MM-YYYY form; tenure is derived, never
// taken from the caller.
func (r Roster) Add(p Person, now time.Time) (out Roster, err error) {
	out = r

	problems := []string{}
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(p.Qualification) == "" {
		problems = append(problems, "qualification is required")
	}
	if strings.TrimSpace(p.JobTitle) == "" {
		problems = append(problems, "job title is required")
	}
	from := strings.TrimSpace(p.From)
	switch {
	case from == "":
		problems = append(problems, "from date is required")
	case !dates.IsMonthYear(from):
		problems = append(problems, "from date must be in MM-YYYY format")
	}
	if len(problems) > 0 {
		err = errors.Errorf("invalid personnel record: %s", strings.Join(problems, "; "))
		return out, err
	}

	start, _ := dates.Parse(from)
	added := Person{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(p.Name),
		Qualification:   strings.TrimSpace(p.Qualification),
		JobTitle:        strings.TrimSpace(p.JobTitle),
		From:            start.String(),
		To:              "Present",
		YearsExperience: dates.YearsSince(start, now),
	}

	out = append(out, added)
	return out, err
}

// BulkAssign writes value into the given column for every row whose ID
// is selected. Assigning From re-validates the MM-YYYY dialect and
// recomputes tenure for the whole roster.
func (r Roster) BulkAssign(selected []string, column, value string, now time.Time) (err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		err = errors.Errorf("%s cannot be empty", column)
		return err
	}

	switch column {
	case ColTitle, ColQual, ColFrom:
	default:
		err = errors.Errorf("column %q does not support bulk assignment", column)
		return err
	}

	if column == ColFrom && !dates.IsMonthYear(value) {
		err = errors.Errorf("invalid From date %q: use MM-YYYY format", value)
		return err
	}

	pick := map[string]bool{}
	for _, id := range selected {
		pick[id] = true
	}

	for i := range r {
		if !pick[r[i].ID] {
			continue
		}
		switch column {
		case ColTitle:
			r[i].JobTitle = value
		case ColQual:
			r[i].Qualification = value
		case ColFrom:
			start, _ := dates.Parse(value)
			r[i].From = start.String()
		}
	}

	if column == ColFrom {
		r.RecomputeExperience(now)
	}

	return err
}

func coerceYears(raw string) (years int) {
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	years = int(f)
	if years < 0 {
		years = 0
	}
	return years
}

func isKnownColumn(name string) (known bool) {
	switch name {
	case ColName, ColQual, ColTitle, ColFrom, ColTo, ColExperience:
		known = true
	}
	return known
}
