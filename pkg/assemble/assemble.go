package assemble

import (
	"time"

	"github.com/mkhandekar/personnel-cv/pkg/dates"
	"github.com/mkhandekar/personnel-cv/pkg/projects"
	"github.com/mkhandekar/personnel-cv/pkg/roster"
	"github.com/pkg/errors"
)

// Pair is one person matched with at most one project, carrying the
// display strings the document needs. Project is nil when no eligible
// project existed; Label then holds the placeholder built from the
// person's own employment.
type Pair struct {
	Person       roster.Person
	Project      *projects.Project
	ProjectIndex int
	Label        string
	Bullets      string
	FromDisplay  string
	ToDisplay    string
}

// DocumentWriter receives the generation stream one pair at a time. The
// core's responsibility ends at the pair; formatting belongs to the
// writer.
type DocumentWriter interface {
	WritePair(pair Pair) (err error)
	Close() (err error)
}

// Assembler pairs every person with an eligible project and streams the
// result to a DocumentWriter in roster order.
type Assembler struct {
	Selector *projects.Selector
	Now      time.Time
	// Employer names the present employer for placeholder rows.
	Employer string
}

// Run produces one pair per person, in input order, threading the
// selector's used set sequentially through the loop. An empty project
// table is a structural precondition failure: no partial document is
// produced.
func (a *Assembler) Run(people roster.Roster, table []projects.Project, writer DocumentWriter) (err error) {
	if len(table) == 0 {
		err = errors.New("project table is empty: load project history before generating")
		return err
	}

	for i, person := range people {
		pair := a.pairFor(person, table)
		err = writer.WritePair(pair)
		if err != nil {
			err = errors.Wrapf(err, "failed to write CV %d (%s)", i+1, person.Name)
			return err
		}
	}

	err = writer.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to finalize document")
		return err
	}

	return err
}

func (a *Assembler) pairFor(person roster.Person, table []projects.Project) (pair Pair) {
	tenureStart, _ := dates.Parse(person.From)
	tenureEnd, ok := dates.ParseWithPresent(person.To, a.Now)
	if !ok {
		tenureEnd = dates.CurrentMonth(a.Now)
	}

	pair = Pair{
		Person:       person,
		ProjectIndex: -1,
		FromDisplay:  dates.Format(person.From, false),
		// The To column always reads Present: tenure is ongoing.
		ToDisplay: "Present",
	}

	eligible := projects.EligibleIndices(table, tenureStart, tenureEnd, a.Now)
	idx, found := a.Selector.Pick(eligible)
	if !found {
		pair.Label = a.Employer + " / " + person.JobTitle
		return pair
	}

	pair.Project = &table[idx]
	pair.ProjectIndex = idx
	pair.Label = table[idx].Label
	pair.Bullets = Bulletize(table[idx].Description)
	return pair
}
