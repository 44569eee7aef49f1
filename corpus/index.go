package corpus

import (
	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/violation"
)

// Index maps every canonical address declared anywhere in the corpus to the
// ordered list of its (file, label) declarations. Entries are append-only:
// nothing is removed once indexed, and malformed addresses are indexed like
// any other (rejecting them is the schema validator's job).
type Index struct {
	// order holds canonical addresses in first-seen order, so reporting
	// is deterministic across runs.
	order   []string
	entries map[string][]violation.Occurrence
}

// NewIndex returns an empty index. Useful for building synthetic indices in
// tests; production code uses BuildIndex.
func NewIndex() *Index {
	return &Index{entries: make(map[string][]violation.Occurrence)}
}

// Add appends one (file, label) occurrence for the given address. The
// address is canonicalized before insertion.
func (x *Index) Add(file, label, address string) {
	canon := record.CanonicalAddress(address)
	if _, seen := x.entries[canon]; !seen {
		x.order = append(x.order, canon)
	}
	x.entries[canon] = append(x.entries[canon], violation.Occurrence{File: file, Label: label})
}

// Occurrences returns the declarations of an address in encounter order.
// The address is canonicalized before lookup.
func (x *Index) Occurrences(address string) []violation.Occurrence {
	return x.entries[record.CanonicalAddress(address)]
}

// Addresses returns every indexed canonical address in first-seen order.
func (x *Index) Addresses() []string {
	return x.order
}

// Len returns the number of distinct canonical addresses in the index.
func (x *Index) Len() int {
	return len(x.order)
}

// BuildIndex folds the records of one partition into an Index. Records must
// already be in deterministic order (LoadDir returns them sorted by file
// name); within a record, labels are walked in sorted order.
func BuildIndex(records []*record.Protocol) *Index {
	idx := NewIndex()
	for _, p := range records {
		for _, label := range p.Labels() {
			idx.Add(p.File, label, p.Addresses[label])
		}
	}
	return idx
}
