// Package export flattens validated protocol records into tabular rows for
// ingestion by the downstream protocols database.
//
// Each address of each record becomes one row carrying the protocol name,
// the primary category split into type and subtype, the contract label, the
// lower-cased address, and the full semicolon-joined category list. Rows are
// sorted by (category type, category subtype, protocol name, contract label)
// and written as CSV or JSON.
package export
