// Package schema validates a single protocol record in isolation: required
// fields, category membership and format, address format, and link shape.
//
// The allowed category set is data, not code: it is loaded from the
// registry's categories.json file, so adding a category never requires a
// code change. All checks on one record are collected before returning;
// nothing here looks across files (that is the corpus package).
package schema
