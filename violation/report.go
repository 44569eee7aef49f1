package violation

import (
	"time"

	"github.com/google/uuid"
)

// Report is the append-only aggregate of everything one validation run
// found. It is created at the start of a run, filled by each stage, and
// discarded when the run ends; nothing in it persists between runs.
type Report struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// Network names the partition that was checked (e.g. "mainnet").
	Network string `json:"network"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run completed. Zero while in progress.
	FinishedAt time.Time `json:"finished_at,omitzero"`

	// FilesChecked is the number of record files the run examined,
	// including files that failed to parse.
	FilesChecked int `json:"files_checked"`

	// Violations holds every problem found, in the order the stages
	// reported them.
	Violations []Violation `json:"violations,omitempty"`
}

// NewReport creates an empty report for one run over the named network
// partition.
func NewReport(network string) *Report {
	return &Report{
		ID:        uuid.New().String(),
		Network:   network,
		StartedAt: time.Now(),
	}
}

// Add appends violations to the report.
func (r *Report) Add(violations ...Violation) {
	r.Violations = append(r.Violations, violations...)
}

// Finish stamps the completion time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// OK reports whether the run passed: true iff no error-severity violation
// was recorded. Warnings alone do not fail a run.
func (r *Report) OK() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Count returns the number of violations with the given severity.
func (r *Report) Count(severity Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == severity {
			n++
		}
	}
	return n
}

// OfKind returns the violations of the given kind, in report order.
func (r *Report) OfKind(kind Kind) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// FileOK reports whether a specific file recorded no error-severity
// violations. Corpus-wide violations count against every file they name in
// their occurrences.
func (r *Report) FileOK(file string) bool {
	for _, v := range r.Violations {
		if v.Severity != SeverityError {
			continue
		}
		if v.File == file {
			return false
		}
		for _, o := range v.Occurrences {
			if o.File == file {
				return false
			}
		}
	}
	return true
}
