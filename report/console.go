package report

import (
	"fmt"
	"io"

	"github.com/chainregistry/protoreg/probe"
	"github.com/chainregistry/protoreg/violation"
)

// Printer writes human-readable validation output.
type Printer struct {
	w       io.Writer
	verbose bool
}

// NewPrinter creates a printer. With verbose set, passing files and
// verified addresses are listed too, not just failures.
func NewPrinter(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose}
}

// PrintReport renders a validation report: a per-file verdict line for every
// checked file, then every violation with enough context to fix it.
func (p *Printer) PrintReport(r *violation.Report, files []string) {
	fmt.Fprintf(p.w, "Validated %d files in %s\n", r.FilesChecked, r.Network)

	for _, file := range files {
		if r.FileOK(file) {
			if p.verbose {
				fmt.Fprintf(p.w, "  ok    %s\n", file)
			}
			continue
		}
		fmt.Fprintf(p.w, "  FAIL  %s\n", file)
	}

	if len(r.Violations) > 0 {
		fmt.Fprintln(p.w)
		for _, v := range r.Violations {
			marker := "error"
			if v.Severity == violation.SeverityWarning {
				marker = "warn "
			}
			fmt.Fprintf(p.w, "  %s  %s\n", marker, v.String())
		}
	}

	fmt.Fprintln(p.w)
	errors := r.Count(violation.SeverityError)
	warnings := r.Count(violation.SeverityWarning)
	switch {
	case errors == 0 && warnings == 0:
		fmt.Fprintln(p.w, "All protocols are valid")
	case errors == 0:
		fmt.Fprintf(p.w, "All protocols are valid (%d warnings)\n", warnings)
	default:
		fmt.Fprintf(p.w, "Validation failed: %d errors, %d warnings\n", errors, warnings)
	}
}

// PrintProbeSummary renders the outcome of a network liveness pass.
func (p *Printer) PrintProbeSummary(s *probe.Summary) {
	fmt.Fprintln(p.w, "Contract verification results")

	for _, r := range s.Contracts {
		if r.Status.Verified() && !p.verbose {
			continue
		}
		marker := "ok  "
		if !r.Status.Verified() {
			marker = "FAIL"
		}
		fmt.Fprintf(p.w, "  %s  %s: %s -> %s [%s]\n", marker, r.File, r.Label, r.Address, r.Detail)
	}
	for _, r := range s.Links {
		if r.OK && !p.verbose {
			continue
		}
		marker := "ok  "
		if !r.OK {
			marker = "FAIL"
		}
		fmt.Fprintf(p.w, "  %s  %s: link %q %s\n", marker, r.File, r.URL, r.Detail)
	}

	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "  Files probed:      %d\n", s.Files)
	fmt.Fprintf(p.w, "  Addresses checked: %d\n", len(s.Contracts))
	fmt.Fprintf(p.w, "  Verified:          %d\n", s.Verified())
	fmt.Fprintf(p.w, "  Not verified:      %d\n", s.Unverified())
	fmt.Fprintf(p.w, "  Links checked:     %d\n", len(s.Links))
	fmt.Fprintf(p.w, "  Dead links:        %d\n", s.DeadLinks())
}
