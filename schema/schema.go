package schema

import (
	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/violation"
)

// RequiredFields are the top-level keys every protocol record must declare.
var RequiredFields = []string{"name", "description", "links", "categories"}

// Validator checks one record at a time against the registry schema.
type Validator struct {
	categories *CategorySet
}

// NewValidator creates a validator enforcing membership in the given
// category set. A nil set disables the membership check (format is still
// enforced), which is how the canonical record is validated.
func NewValidator(categories *CategorySet) *Validator {
	return &Validator{categories: categories}
}

// Validate runs every single-file check on the record and returns all
// violations found. An empty result means the record is schema-valid,
// possibly modulo warnings already included in the result.
func (v *Validator) Validate(p *record.Protocol) []violation.Violation {
	var out []violation.Violation

	for _, field := range RequiredFields {
		if !p.HasField(field) {
			out = append(out, violation.NewMissingField(p.File, field))
		}
	}

	// A present but empty category list is as useless as an absent one.
	if p.HasField("categories") && len(p.Categories) == 0 {
		out = append(out, violation.NewMissingField(p.File, "categories"))
	}
	for _, category := range p.Categories {
		if !IsWellFormed(category) {
			out = append(out, violation.NewInvalidCategory(p.File, category))
			continue
		}
		if v.categories != nil && !v.categories.Contains(category) {
			out = append(out, violation.NewInvalidCategory(p.File, category))
		}
	}

	for _, label := range p.LinkLabels() {
		url, ok := p.Links[label].(string)
		if !ok || url == "" {
			out = append(out, violation.NewInvalidLink(p.File, label, "not a URL string"))
		}
	}

	if len(p.Addresses) == 0 {
		out = append(out, violation.NewEmptyAddressMap(p.File))
	}
	for _, label := range p.Labels() {
		addr := p.Addresses[label]
		if !record.IsValidAddress(addr) {
			out = append(out, violation.NewInvalidAddress(p.File, label, addr))
		}
	}

	return out
}
