// Package violation defines the closed set of problems a validation run can
// report, and the Report aggregate that collects them.
//
// A violation is data, not an exception: every check accumulates violations
// and returns them, so one run surfaces every problem in the corpus instead
// of stopping at the first. Single-file schema problems, corpus-wide
// consistency problems, and network-probe outcomes all travel through the
// same reporting channel, distinguished by Kind and Severity.
package violation
