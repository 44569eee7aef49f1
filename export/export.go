package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/schema"
	"github.com/chainregistry/protoreg/violation"
)

// Format selects the output encoding for exported rows.
type Format string

const (
	// FormatCSV writes rows as comma-separated values with a header.
	FormatCSV Format = "csv"

	// FormatJSON writes rows as a JSON array.
	FormatJSON Format = "json"
)

// IsValid returns true if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatCSV, FormatJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// FileExtension returns the conventional file extension for the format.
func (f Format) FileExtension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}

// ParseFormat parses a string into a Format value.
// Returns an error if the string is not a valid format.
func ParseFormat(s string) (Format, error) {
	format := Format(s)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid export format: %s", s)
	}
	return format, nil
}

// header is the fixed CSV column order.
var header = []string{"name", "ctype", "csubtype", "contract", "address", "all_categories"}

// Row is one exported address: the unit the downstream database ingests.
type Row struct {
	// Name is the protocol name.
	Name string `json:"name"`

	// CType is the type half of the record's first category.
	CType string `json:"ctype"`

	// CSubtype is the subtype half of the record's first category.
	CSubtype string `json:"csubtype"`

	// Contract is the label the address is declared under.
	Contract string `json:"contract"`

	// Address is the contract address in canonical (lower-case) form.
	Address string `json:"address"`

	// AllCategories is the record's full category list joined with ";".
	AllCategories string `json:"all_categories"`
}

// Rows flattens the records into export rows, one per address, with labels
// in sorted order within each record. Records with no categories or with a
// malformed first category cannot be classified and are skipped; each skip
// is reported as an invalid-category violation so the caller can surface it.
func Rows(records []*record.Protocol) ([]Row, []violation.Violation) {
	var (
		rows    []Row
		skipped []violation.Violation
	)
	for _, p := range records {
		if len(p.Categories) == 0 {
			skipped = append(skipped, violation.NewInvalidCategory(p.File, ""))
			continue
		}
		first := p.Categories[0]
		ctype, csubtype, ok := schema.SplitCategory(first)
		if !ok {
			skipped = append(skipped, violation.NewInvalidCategory(p.File, first))
			continue
		}

		all := strings.Join(p.Categories, ";")
		for _, label := range p.Labels() {
			rows = append(rows, Row{
				Name:          p.Name,
				CType:         ctype,
				CSubtype:      csubtype,
				Contract:      label,
				Address:       record.CanonicalAddress(p.Addresses[label]),
				AllCategories: all,
			})
		}
	}
	Sort(rows)
	return rows, skipped
}

// Sort orders rows by (ctype, csubtype, name, contract), the order the
// downstream loader expects.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CType != b.CType {
			return a.CType < b.CType
		}
		if a.CSubtype != b.CSubtype {
			return a.CSubtype < b.CSubtype
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Contract < b.Contract
	})
}

// WriteCSV writes the rows with the fixed header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.Name, r.CType, r.CSubtype, r.Contract, r.Address, r.AllCategories}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Write encodes the rows in the given format.
func Write(w io.Writer, rows []Row, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("invalid export format: %s", format)
	}
}
