// Package corpus implements the cross-file consistency checks that make the
// registry trustworthy as a whole: no address may be known under two
// different names, and no protocol may re-declare a canonical contract.
//
// The package works on records that have already been loaded and
// schema-checked. Its state is a single Index value built fresh for each
// run by a deterministic fold over the records; the index is owned by the
// run, passed explicitly to the checks, and discarded afterwards. Both
// checks collect every violation they find before returning.
package corpus
