package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mkhandekar/personnel-cv/pkg/config"
	"github.com/mkhandekar/personnel-cv/pkg/match"
	"github.com/mkhandekar/personnel-cv/pkg/roster"
)

//nolint:gochecknoglobals // Cobra boilerplate
var searchRosterPath string

//nolint:gochecknoglobals // Cobra boilerplate
var searchCmd = &cobra.Command{
	Use:   "search <roles-file>",
	Short: "Match roster people against role requirements",
	Long: `Match every person in the roster against the role criteria in a YAML
roles file, and report who satisfies each role fully, partially, or not
at all.

Example:
  personnel-cv search roles.yaml
  personnel-cv search roles.yaml --roster input/personnel.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchRosterPath, "roster", "", "Roster CSV path (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	rosterPath := searchRosterPath
	if rosterPath == "" {
		rosterPath = cfg.Defaults.RosterPath
	}
	if rosterPath == "" {
		err = errors.New("no roster path given (use --roster or set defaults.roster_path in config)")
		return err
	}

	var roles match.RoleSet
	roles, err = match.LoadRoles(args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to load roles")
		return err
	}

	if getVerbose() {
		fmt.Printf("Loading roster from: %s\n", rosterPath)
	}

	var people roster.Roster
	people, err = roster.LoadCSV(rosterPath)
	if err != nil {
		err = errors.Wrap(err, "failed to load roster")
		return err
	}

	people, _ = people.DropEmptyRows()
	people.NormalizeDates()
	people.RecomputeExperience(time.Now())

	titler := cases.Title(language.English)

	for _, criterion := range roles.Criteria() {
		report := match.Classify(people, criterion)
		printReport(report, criterion, titler)
	}

	return err
}

func printReport(report match.Report, criterion match.Criterion, titler cases.Caser) {
	fmt.Printf("=== %s (need %d) ===\n", report.Role, report.Required)

	if report.QualificationActive {
		fmt.Printf("Qualification filter: %s match on [%s]\n",
			titler.String(criterion.Mode.String()),
			strings.Join(criterion.KeywordList(), ", "))
	}
	if report.ExperienceActive {
		fmt.Printf("Experience filter: >= %.1f years\n", criterion.MinExperience)
	}

	printTier("Full match", report.Full)
	printTier("Title+qualification, short on experience", report.TitleQualNoExp)
	printTier("Qualification+experience, different title", report.QualExpNoTitle)
	printTier("Qualification only", report.QualOnly)
	printTier("No match", report.NoMatch)

	if report.Missing > 0 {
		fmt.Printf("SHORTFALL: need %d more full match(es)\n", report.Missing)
	} else {
		fmt.Println("Requirement satisfied")
	}
	fmt.Println()
}

func printTier(label string, people roster.Roster) {
	if len(people) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, len(people))
	for _, person := range people {
		fmt.Printf("  - %s (%s, %d yrs)\n", person.Name, person.JobTitle, person.YearsExperience)
	}
}
