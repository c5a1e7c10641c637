package codegen

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/dyesthetics/scanner"
)

// Status is the overall state of one component in a report
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// ComponentReport is the report entry for one component directory
type ComponentReport struct {
	Path   string          `json:"path" yaml:"path"`
	Status Status          `json:"status" yaml:"status"`
	Issues []scanner.Issue `json:"issues" yaml:"issues"`
}

// Summary counts components by status
type Summary struct {
	Total        int `json:"total" yaml:"total"`
	Valid        int `json:"valid" yaml:"valid"`
	WithWarnings int `json:"withWarnings" yaml:"withWarnings"`
	WithErrors   int `json:"withErrors" yaml:"withErrors"`
}

// Report is the user-facing projection of a scan, keyed by component name.
// Skipped directories are included with status error.
type Report struct {
	ID         string                     `json:"id" yaml:"id"`
	Timestamp  time.Time                  `json:"timestamp" yaml:"timestamp"`
	Components map[string]ComponentReport `json:"components" yaml:"components"`
	Summary    Summary                    `json:"summary" yaml:"summary"`
}

// NewReport builds a report from a scan result
func NewReport(result *scanner.Result, at time.Time) *Report {
	r := &Report{
		ID:         uuid.NewString(),
		Timestamp:  at.UTC(),
		Components: make(map[string]ComponentReport, len(result.Components)+len(result.Skipped)),
	}

	for _, c := range result.Components {
		r.add(c.Name, c.EntryFilePath, c.Validation.Issues)
	}
	for _, s := range result.Skipped {
		r.add(s.Name, s.Path, s.Validation.Issues)
	}
	return r
}

func (r *Report) add(name, path string, issues []scanner.Issue) {
	if issues == nil {
		issues = []scanner.Issue{}
	}
	status := StatusOf(issues)
	r.Components[name] = ComponentReport{Path: path, Status: status, Issues: issues}

	r.Summary.Total++
	switch status {
	case StatusValid:
		r.Summary.Valid++
	case StatusWarning:
		r.Summary.WithWarnings++
	default:
		r.Summary.WithErrors++
	}
}

// StatusOf derives a status: error if any issue is an error, warning if
// any is a warning, valid otherwise.
func StatusOf(issues []scanner.Issue) Status {
	status := StatusValid
	for _, issue := range issues {
		switch issue.Severity {
		case scanner.SeverityError:
			return StatusError
		case scanner.SeverityWarn:
			status = StatusWarning
		}
	}
	return status
}

// Names returns the component names in sorted order
func (r *Report) Names() []string {
	names := make([]string, 0, len(r.Components))
	for name := range r.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clean reports whether every component is valid
func (r *Report) Clean() bool {
	return r.Summary.Valid == r.Summary.Total
}
