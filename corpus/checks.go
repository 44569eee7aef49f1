package corpus

import (
	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/violation"
)

// CanonicalSet holds the canonical contract addresses: infrastructure-level
// contracts declared once in a dedicated record and never re-declared by
// individual protocols. Read-only after construction.
type CanonicalSet struct {
	addrs map[string]struct{}
}

// NewCanonicalSet builds a canonical set from the address map of the
// canonical record. Addresses are canonicalized on insertion.
func NewCanonicalSet(addresses map[string]string) *CanonicalSet {
	s := &CanonicalSet{addrs: make(map[string]struct{}, len(addresses))}
	for _, addr := range addresses {
		s.addrs[record.CanonicalAddress(addr)] = struct{}{}
	}
	return s
}

// Contains reports whether the address (in any casing) is canonical.
func (s *CanonicalSet) Contains(address string) bool {
	_, ok := s.addrs[record.CanonicalAddress(address)]
	return ok
}

// Len returns the number of canonical addresses.
func (s *CanonicalSet) Len() int {
	return len(s.addrs)
}

// CheckDuplicateLabels reports every address that the corpus knows under
// more than one distinct label. An address declared many times under the
// same label is benign shared infrastructure; only disagreement on what an
// address is called is a violation. Violations are emitted in the index's
// first-seen address order, with occurrences in encounter order.
func CheckDuplicateLabels(idx *Index) []violation.Violation {
	var out []violation.Violation
	for _, addr := range idx.Addresses() {
		occurrences := idx.Occurrences(addr)
		if len(occurrences) < 2 {
			continue
		}
		distinct := make(map[string]struct{}, len(occurrences))
		for _, o := range occurrences {
			distinct[o.Label] = struct{}{}
		}
		if len(distinct) >= 2 {
			out = append(out, violation.NewDuplicateLabel(addr, occurrences))
		}
	}
	return out
}

// CheckCanonicalOverlap reports every (file, label, address) triple in the
// given records whose address also appears in the canonical set. Callers
// must pass the corpus without the canonical record itself (and without any
// documentation records); label text plays no part in the comparison.
// Violations follow record order, with labels in sorted order per record.
func CheckCanonicalOverlap(records []*record.Protocol, canonical *CanonicalSet) []violation.Violation {
	var out []violation.Violation
	if canonical == nil || canonical.Len() == 0 {
		return out
	}
	for _, p := range records {
		for _, label := range p.Labels() {
			addr := p.Addresses[label]
			if canonical.Contains(addr) {
				out = append(out, violation.NewCanonicalOverlap(
					p.File, label, record.CanonicalAddress(addr)))
			}
		}
	}
	return out
}
