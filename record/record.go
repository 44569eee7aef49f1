package record

import (
	"path/filepath"
	"sort"
	"strings"
)

// Protocol is one parsed protocol metadata record.
//
// File is the identity of the record: the base name of the source file within
// its network partition. The remaining fields mirror the JSON document.
// Address labels are unique within a record by construction (they are map
// keys); address values may repeat.
type Protocol struct {
	// File is the base name of the source file (e.g. "uniswap.jsonc").
	File string `json:"-"`

	// Name is the human-readable protocol name.
	Name string `json:"name"`

	// Description is a short free-text description of the protocol.
	Description string `json:"description"`

	// Categories are category tags of the form "Type::Subtype", in the
	// order they appear in the document. The first entry is the primary
	// category used by the exporter.
	Categories []string `json:"categories"`

	// Links maps a link label (e.g. "website", "docs") to a URL. Values
	// are decoded loosely so that schema validation can report a non-string
	// link instead of failing the whole file.
	Links map[string]any `json:"links"`

	// Addresses maps a contract label (e.g. "Router", "Vault") to the
	// contract address as written in the document.
	Addresses map[string]string `json:"addresses"`

	// fields records the top-level keys present in the source document,
	// so validation can distinguish a missing field from an empty one.
	fields map[string]struct{}
}

// HasField reports whether the named top-level key was present in the source
// document, regardless of its value.
func (p *Protocol) HasField(name string) bool {
	_, ok := p.fields[name]
	return ok
}

// Slug returns the protocol identifier derived from the file name: the base
// name without its extension, lower-cased. Used to select a single protocol
// on the command line.
func (p *Protocol) Slug() string {
	return Slug(p.File)
}

// Labels returns the record's address labels in sorted order. Go maps have no
// iteration order, so every corpus-level pass that must be deterministic
// walks addresses through this accessor.
func (p *Protocol) Labels() []string {
	labels := make([]string, 0, len(p.Addresses))
	for label := range p.Addresses {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// LinkLabels returns the record's link labels in sorted order.
func (p *Protocol) LinkLabels() []string {
	labels := make([]string, 0, len(p.Links))
	for label := range p.Links {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Slug derives a protocol identifier from a file name: the base name without
// extension, lower-cased.
func Slug(file string) string {
	base := filepath.Base(file)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
