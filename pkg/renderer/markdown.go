package renderer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mkhandekar/personnel-cv/pkg/assemble"
	"github.com/mkhandekar/personnel-cv/pkg/config"
)

// MarkdownWriter collects one CV section per roster row and writes the
// combined markdown document on Close. It satisfies assemble.DocumentWriter.
type MarkdownWriter struct {
	path     string
	employer config.Employer
	sections []string
}

// NewMarkdownWriter returns a writer that will produce the combined
// document at path.
func NewMarkdownWriter(path string, employer config.Employer) (w *MarkdownWriter, err error) {
	if path == "" {
		err = errors.New("output path is required")
		return w, err
	}
	w = &MarkdownWriter{
		path:     path,
		employer: employer,
	}
	return w, err
}

// WritePair renders one person's CV section.
func (w *MarkdownWriter) WritePair(pair assemble.Pair) (err error) {
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n\n")
	}

	line("# Curriculum Vitae")
	line("Position: %s", pair.Person.JobTitle)
	line("Name of Bidder: %s", w.employer.Name)

	line("**Personnel Information**")
	line("Name: %s", pair.Person.Name)
	line("Qualification / Certification / Licence / Training: %s", pair.Person.Qualification)

	line("**Present Employment**")
	line("Name of Employer: %s", w.employer.Name)
	if w.employer.Address != "" {
		line("Address of Employer: %s", w.employer.Address)
	}
	if w.employer.Telephone != "" {
		line("Telephone: %s", w.employer.Telephone)
	}
	if w.employer.Contact != "" {
		line("Contact (Manager / Personnel Officer): %s", w.employer.Contact)
	}
	if w.employer.Fax != "" {
		line("Fax: %s", w.employer.Fax)
	}
	if w.employer.Email != "" {
		line("E-mail: %s", w.employer.Email)
	}
	line("Job Title: %s", pair.Person.JobTitle)
	line("Years with Present Employer: %d", pair.Person.YearsExperience)
	if w.employer.Mobile != "" {
		line("Mobile: %s", w.employer.Mobile)
	}

	line("**Professional Experience (Last 10 Years)**")
	line("From (MM-YYYY): %s", pair.FromDisplay)
	line("To (MM-YYYY): %s", pair.ToDisplay)
	line("Company / Project / Position: %s", pair.Label)
	if pair.Bullets != "" {
		line("Relevant Technical & Managerial Experience:")
		line("%s", pair.Bullets)
	}

	w.sections = append(w.sections, b.String())
	return err
}

// Close writes the assembled document to disk.
func (w *MarkdownWriter) Close() (err error) {
	content := strings.Join(w.sections, "---\n\n")
	err = WriteMarkdown(content, w.path)
	if err != nil {
		return err
	}
	return err
}

// Path returns the destination of the markdown document.
func (w *MarkdownWriter) Path() (path string) {
	path = w.path
	return path
}
