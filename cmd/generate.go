package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mkhandekar/personnel-cv/pkg/assemble"
	"github.com/mkhandekar/personnel-cv/pkg/config"
	"github.com/mkhandekar/personnel-cv/pkg/projects"
	"github.com/mkhandekar/personnel-cv/pkg/renderer"
	"github.com/mkhandekar/personnel-cv/pkg/roster"
)

//nolint:gochecknoglobals // Cobra boilerplate
var generateRosterPath string

//nolint:gochecknoglobals // Cobra boilerplate
var generateProjectsPath string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var seed int64

//nolint:gochecknoglobals // Cobra boilerplate
var keepMarkdown bool

//nolint:gochecknoglobals // Cobra boilerplate
var skipDocx bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Bulk-generate CV documents for every person in the roster",
	Long: `Generate one CV section per roster row and combine them into a single
Word document. Each person is paired with one project from the project
history whose timeline overlaps their tenure; projects are not repeated
until every eligible project has been used.

Example:
  personnel-cv generate --roster input/personnel.csv --projects input/projects.csv
  personnel-cv generate --seed 42 --output-dir ./out`,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateRosterPath, "roster", "", "Roster CSV path (default from config)")
	generateCmd.Flags().StringVar(&generateProjectsPath, "projects", "", "Project history CSV path (default from config)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for project selection (0 uses current time)")
	generateCmd.Flags().BoolVar(&keepMarkdown, "keep-markdown", false, "Keep the markdown file after document generation")
	generateCmd.Flags().BoolVar(&skipDocx, "skip-docx", false, "Skip document generation, write markdown only")
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	now := time.Now()

	// Load configuration
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	rosterPath := generateRosterPath
	if rosterPath == "" {
		rosterPath = cfg.Defaults.RosterPath
	}
	projectsPath := generateProjectsPath
	if projectsPath == "" {
		projectsPath = cfg.Defaults.ProjectsPath
	}
	if rosterPath == "" || projectsPath == "" {
		err = errors.New("roster and projects paths are required (flags or config defaults)")
		return err
	}

	outDir := outputDir
	if outDir == "" {
		outDir = cfg.Defaults.OutputDir
	}

	// Load and prepare the roster
	var people roster.Roster
	people, err = loadRosterForGeneration(rosterPath, now)
	if err != nil {
		return err
	}

	// Load the project history
	if getVerbose() {
		fmt.Printf("Loading project history from: %s\n", projectsPath)
	}
	var table []projects.Project
	table, err = projects.LoadCSV(projectsPath)
	if err != nil {
		err = errors.Wrap(err, "failed to load project history")
		return err
	}

	// Assemble the combined document
	markdownPath := filepath.Join(outDir, "personnel-cvs.md")
	var writer *renderer.MarkdownWriter
	writer, err = renderer.NewMarkdownWriter(markdownPath, cfg.Employer)
	if err != nil {
		return err
	}

	selectorSeed := seed
	if selectorSeed == 0 {
		selectorSeed = now.UnixNano()
	}

	assembler := assemble.Assembler{
		Selector: projects.NewSelector(selectorSeed),
		Now:      now,
		Employer: cfg.Employer.Name,
	}

	err = assembler.Run(people, table, writer)
	if err != nil {
		err = errors.Wrap(err, "failed to assemble CVs")
		return err
	}

	fmt.Printf("Assembled %d CV sections\n", len(people))

	if skipDocx {
		fmt.Printf("Markdown saved at: %s (document generation skipped)\n", markdownPath)
		return err
	}

	// Render the combined document
	docxPath := filepath.Join(outDir, "personnel-cvs.docx")
	err = renderer.RenderDocx(markdownPath, docxPath, cfg.Pandoc.ReferenceDoc)
	if err != nil {
		fmt.Printf("Warning: Failed to render document: %v\n", err)
		fmt.Printf("Markdown saved at: %s\n", markdownPath)
		return err
	}
	fmt.Printf("Document saved at: %s\n", docxPath)

	// Clean up markdown unless --keep-markdown is set
	if !keepMarkdown {
		err = renderer.CleanupMarkdown(markdownPath)
		if err != nil {
			fmt.Printf("Warning: Failed to clean up markdown file: %v\n", err)
			err = nil
		}
	}

	fmt.Println("\nGeneration complete!")

	return err
}

// loadRosterForGeneration loads, normalizes, and validates the roster,
// refusing to generate when blocking problems are present.
func loadRosterForGeneration(rosterPath string, now time.Time) (people roster.Roster, err error) {
	if getVerbose() {
		fmt.Printf("Loading roster from: %s\n", rosterPath)
	}

	people, err = roster.LoadCSV(rosterPath)
	if err != nil {
		err = errors.Wrap(err, "failed to load roster")
		return people, err
	}

	people, dropped := people.DropEmptyRows()
	people.NormalizeDates()
	people.RecomputeExperience(now)

	if getVerbose() && dropped > 0 {
		fmt.Printf("Dropped %d empty rows\n", dropped)
	}

	issues := people.Validate()
	if roster.HasBlocking(issues) {
		for _, issue := range issues {
			if issue.Blocking {
				fmt.Printf("ERROR: %s\n", issue)
			}
		}
		err = errors.New("roster has blocking problems, fix them or run 'personnel-cv check'")
		return people, err
	}

	return people, err
}
