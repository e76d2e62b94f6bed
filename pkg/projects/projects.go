package projects

import (
	"encoding/csv"
	"os"
	"strings"
	"time"

	"github.com/mkhandekar/personnel-cv/pkg/dates"
	"github.com/pkg/errors"
)

// Column names of the project-history table.
const (
	ColStart       = "Start Date"
	ColEnd         = "Work Completion date"
	ColLabel       = "Company / Project / Position"
	ColDescription = "Relevant Technical & Managerial Experience"
)

// earliestStart stands in for an absent project start date.
//
//nolint:gochecknoglobals // Defaulting constant
var earliestStart = dates.Date{Year: 1900, Month: time.January}

// Project is one row of the project-history table. Start and End are
// zero when the source cell was absent or unparseable.
type Project struct {
	Label       string
	Description string
	Start       dates.Date
	End         dates.Date
}

// FromRows builds the project table from a loosely-typed table, parsing
// the date columns up front.
func FromRows(header []string, rows [][]string) (projects []Project, err error) {
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	for _, want := range []string{ColStart, ColEnd, ColLabel, ColDescription} {
		if _, ok := cols[want]; !ok {
			err = errors.Errorf("project table missing column %q", want)
			return projects, err
		}
	}

	projects = make([]Project, 0, len(rows))
	for _, row := range rows {
		cell := func(name string) (val string) {
			idx := cols[name]
			if idx >= len(row) {
				return ""
			}
			val = strings.TrimSpace(row[idx])
			return val
		}

		start, _ := dates.Parse(cell(ColStart))
		end, _ := dates.Parse(cell(ColEnd))

		projects = append(projects, Project{
			Label:       cell(ColLabel),
			Description: cell(ColDescription),
			Start:       start,
			End:         end,
		})
	}

	return projects, err
}

// LoadCSV reads the project-history table from a CSV file.
func LoadCSV(path string) (projects []Project, err error) {
	file, err := os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open project file: %s", path)
		return projects, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		err = errors.Wrapf(err, "failed to parse project CSV: %s", path)
		return projects, err
	}

	if len(records) == 0 {
		err = errors.Errorf("project file is empty: %s", path)
		return projects, err
	}

	projects, err = FromRows(records[0], records[1:])
	if err != nil {
		err = errors.Wrapf(err, "invalid project table: %s", path)
		return projects, err
	}

	return projects, err
}

// Overlaps reports whether the project's active interval overlaps the
// person's tenure, inclusive at month granularity. An absent project
// start defaults to January 1900 and an absent end to the current month
// (still ongoing). An absent tenure bound places no constraint on that
// side.
func (p Project) Overlaps(tenureStart, tenureEnd dates.Date, now time.Time) (overlap bool) {
	start := p.Start
	if start.IsZero() {
		start = earliestStart
	}
	end := p.End
	if end.IsZero() {
		end = dates.CurrentMonth(now)
	}

	if !tenureStart.IsZero() && end.Before(tenureStart) {
		return false
	}
	if !tenureEnd.IsZero() && start.After(tenureEnd) {
		return false
	}
	return true
}

// EligibleIndices returns the indices of projects whose interval
// overlaps the tenure. Projects with neither date are skipped entirely.
func EligibleIndices(projects []Project, tenureStart, tenureEnd dates.Date, now time.Time) (eligible []int) {
	for i, p := range projects {
		if p.Start.IsZero() && p.End.IsZero() {
			continue
		}
		if p.Overlaps(tenureStart, tenureEnd, now) {
			eligible = append(eligible, i)
		}
	}
	return eligible
}
