package violation

import (
	"fmt"
	"strings"
)

// Kind identifies the type of problem a violation reports.
type Kind string

const (
	// KindParseError indicates a file that could not be parsed as JSON/JSONC.
	KindParseError Kind = "parse_error"

	// KindMissingField indicates a required top-level field is absent.
	KindMissingField Kind = "missing_field"

	// KindInvalidCategory indicates a category tag that is malformed or not
	// in the allowed category set.
	KindInvalidCategory Kind = "invalid_category"

	// KindInvalidAddress indicates a contract address that is not a
	// 0x-prefixed 40-hex-digit string.
	KindInvalidAddress Kind = "invalid_address"

	// KindEmptyAddressMap indicates a record that declares no addresses.
	// Benign but unusual, so it is a warning.
	KindEmptyAddressMap Kind = "empty_address_map"

	// KindInvalidLink indicates a link whose value is not a URL string.
	KindInvalidLink Kind = "invalid_link"

	// KindDuplicateLabel indicates one address referenced under two or more
	// distinct labels anywhere in the corpus.
	KindDuplicateLabel Kind = "duplicate_label"

	// KindCanonicalOverlap indicates a protocol record re-declaring an
	// address that belongs to the canonical contract set.
	KindCanonicalOverlap Kind = "canonical_overlap"

	// KindDeadLink indicates a documentation link that failed a liveness
	// probe (4xx/5xx status or transport failure).
	KindDeadLink Kind = "dead_link"

	// KindUnverifiedContract indicates an address the verification API did
	// not report as a verified contract. Probe outcomes are advisory, so
	// this is a warning.
	KindUnverifiedContract Kind = "unverified_contract"
)

// IsValid returns true if the kind is one of the defined variants.
func (k Kind) IsValid() bool {
	switch k {
	case KindParseError,
		KindMissingField,
		KindInvalidCategory,
		KindInvalidAddress,
		KindEmptyAddressMap,
		KindInvalidLink,
		KindDuplicateLabel,
		KindCanonicalOverlap,
		KindDeadLink,
		KindUnverifiedContract:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Severity returns the default severity of the kind. Empty address maps and
// unverified contracts are warnings; everything else fails the run.
func (k Kind) Severity() Severity {
	switch k {
	case KindEmptyAddressMap, KindUnverifiedContract:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Severity classifies how a violation affects the run outcome.
type Severity string

const (
	// SeverityWarning marks a benign but unusual condition. Warnings are
	// reported but do not fail the run.
	SeverityWarning Severity = "warning"

	// SeverityError marks a condition that fails the run.
	SeverityError Severity = "error"
)

// IsValid returns true if the severity is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// Occurrence is one declaration of an address: the file it appears in and
// the label it is declared under.
type Occurrence struct {
	// File is the base name of the record declaring the address.
	File string `json:"file"`

	// Label is the key the address is declared under.
	Label string `json:"label"`
}

// String returns "file:label".
func (o Occurrence) String() string {
	return o.File + ":" + o.Label
}

// Violation is one reported inconsistency. Which fields are populated
// depends on the kind: single-file kinds carry File (and usually Label or
// Detail), DuplicateLabel carries Address and Occurrences, CanonicalOverlap
// carries File, Label and Address.
type Violation struct {
	// Kind identifies the variant.
	Kind Kind `json:"kind"`

	// Severity is the effect on the run outcome.
	Severity Severity `json:"severity"`

	// File is the record the violation belongs to. Empty for corpus-wide
	// kinds such as duplicate labels.
	File string `json:"file,omitempty"`

	// Label is the address or link label involved, if any.
	Label string `json:"label,omitempty"`

	// Address is the canonical address involved, if any.
	Address string `json:"address,omitempty"`

	// Detail is additional human-readable context.
	Detail string `json:"detail,omitempty"`

	// Occurrences lists every (file, label) declaration of Address, in
	// encounter order. Populated for duplicate-label violations.
	Occurrences []Occurrence `json:"occurrences,omitempty"`
}

// String renders the violation with enough context to fix it directly.
func (v Violation) String() string {
	switch v.Kind {
	case KindParseError:
		return fmt.Sprintf("%s: parse error: %s", v.File, v.Detail)
	case KindMissingField:
		return fmt.Sprintf("%s: missing required field %q", v.File, v.Label)
	case KindInvalidCategory:
		return fmt.Sprintf("%s: invalid category %q", v.File, v.Detail)
	case KindInvalidAddress:
		return fmt.Sprintf("%s: invalid address: %s -> %s", v.File, v.Label, v.Address)
	case KindEmptyAddressMap:
		return fmt.Sprintf("%s: empty address map", v.File)
	case KindInvalidLink:
		return fmt.Sprintf("%s: link %q is not a valid URL string", v.File, v.Label)
	case KindDuplicateLabel:
		occ := make([]string, len(v.Occurrences))
		for i, o := range v.Occurrences {
			occ[i] = o.String()
		}
		return fmt.Sprintf("address %s declared under conflicting labels: %s",
			v.Address, strings.Join(occ, ", "))
	case KindCanonicalOverlap:
		return fmt.Sprintf("%s: %s -> %s re-declares a canonical contract",
			v.File, v.Label, v.Address)
	case KindDeadLink:
		return fmt.Sprintf("%s: link %q unreachable: %s", v.File, v.Label, v.Detail)
	case KindUnverifiedContract:
		return fmt.Sprintf("%s: %s -> %s not verified: %s", v.File, v.Label, v.Address, v.Detail)
	default:
		return fmt.Sprintf("%s: %s", v.File, v.Kind)
	}
}

// NewParseError builds a parse-error violation for one file.
func NewParseError(file string, err error) Violation {
	return Violation{
		Kind:     KindParseError,
		Severity: KindParseError.Severity(),
		File:     file,
		Detail:   err.Error(),
	}
}

// NewMissingField builds a missing-required-field violation. The field name
// is carried in Label.
func NewMissingField(file, field string) Violation {
	return Violation{
		Kind:     KindMissingField,
		Severity: KindMissingField.Severity(),
		File:     file,
		Label:    field,
	}
}

// NewInvalidCategory builds an invalid-category violation. The offending
// category string is carried in Detail.
func NewInvalidCategory(file, category string) Violation {
	return Violation{
		Kind:     KindInvalidCategory,
		Severity: KindInvalidCategory.Severity(),
		File:     file,
		Detail:   category,
	}
}

// NewInvalidAddress builds an invalid-address violation.
func NewInvalidAddress(file, label, address string) Violation {
	return Violation{
		Kind:     KindInvalidAddress,
		Severity: KindInvalidAddress.Severity(),
		File:     file,
		Label:    label,
		Address:  address,
	}
}

// NewEmptyAddressMap builds the empty-address-map warning.
func NewEmptyAddressMap(file string) Violation {
	return Violation{
		Kind:     KindEmptyAddressMap,
		Severity: KindEmptyAddressMap.Severity(),
		File:     file,
	}
}

// NewInvalidLink builds an invalid-link violation.
func NewInvalidLink(file, label, detail string) Violation {
	return Violation{
		Kind:     KindInvalidLink,
		Severity: KindInvalidLink.Severity(),
		File:     file,
		Label:    label,
		Detail:   detail,
	}
}

// NewDuplicateLabel builds a duplicate-label violation for one canonical
// address, carrying all of its occurrences in encounter order.
func NewDuplicateLabel(address string, occurrences []Occurrence) Violation {
	return Violation{
		Kind:        KindDuplicateLabel,
		Severity:    KindDuplicateLabel.Severity(),
		Address:     address,
		Occurrences: occurrences,
	}
}

// NewCanonicalOverlap builds a canonical-overlap violation for one
// (file, label, address) triple.
func NewCanonicalOverlap(file, label, address string) Violation {
	return Violation{
		Kind:     KindCanonicalOverlap,
		Severity: KindCanonicalOverlap.Severity(),
		File:     file,
		Label:    label,
		Address:  address,
	}
}

// NewDeadLink builds a dead-link violation from a probe outcome.
func NewDeadLink(file, label, detail string) Violation {
	return Violation{
		Kind:     KindDeadLink,
		Severity: KindDeadLink.Severity(),
		File:     file,
		Label:    label,
		Detail:   detail,
	}
}

// NewUnverifiedContract builds an unverified-contract warning from a probe
// outcome.
func NewUnverifiedContract(file, label, address, detail string) Violation {
	return Violation{
		Kind:     KindUnverifiedContract,
		Severity: KindUnverifiedContract.Severity(),
		File:     file,
		Label:    label,
		Address:  address,
		Detail:   detail,
	}
}
