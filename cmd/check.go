package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mkhandekar/personnel-cv/pkg/config"
	"github.com/mkhandekar/personnel-cv/pkg/roster"
)

//nolint:gochecknoglobals // Cobra boilerplate
var checkRosterPath string

//nolint:gochecknoglobals // Cobra boilerplate
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a personnel roster",
	Long: `Validate a personnel roster CSV for missing or malformed fields.

Blocking problems (missing name, job title, qualification, or start date)
cause a non-zero exit. Warnings are printed but do not fail the check.

Example:
  personnel-cv check --roster input/personnel.csv`,
	RunE: runCheck,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkRosterPath, "roster", "", "Roster CSV path (default from config)")
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	rosterPath := checkRosterPath
	if rosterPath == "" {
		rosterPath = cfg.Defaults.RosterPath
	}
	if rosterPath == "" {
		err = errors.New("no roster path given (use --roster or set defaults.roster_path in config)")
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

	people, dropped := people.DropEmptyRows()
	people.NormalizeDates()
	people.RecomputeExperience(time.Now())

	if getVerbose() && dropped > 0 {
		fmt.Printf("Dropped %d empty rows\n", dropped)
	}

	issues := people.Validate()
	for _, issue := range issues {
		if issue.Blocking {
			fmt.Printf("ERROR: %s\n", issue)
		} else {
			fmt.Printf("warning: %s\n", issue)
		}
	}

	if roster.HasBlocking(issues) {
		err = errors.Errorf("roster has blocking problems (%d issues total)", len(issues))
		return err
	}

	fmt.Printf("Roster OK: %d people, %d warnings\n", len(people), len(issues))

	return err
}
