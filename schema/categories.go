package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"
)

// categorySeparator splits a category tag into its type and subtype halves.
const categorySeparator = "::"

// CategorySet is the allowed set of category tags, loaded once per run from
// the registry's categories file and read-only afterwards.
type CategorySet struct {
	ordered []string
	members map[string]struct{}
}

// NewCategorySet builds a set from an explicit list of tags, preserving
// order and dropping duplicates.
func NewCategorySet(categories []string) *CategorySet {
	s := &CategorySet{members: make(map[string]struct{}, len(categories))}
	for _, c := range categories {
		if _, dup := s.members[c]; dup {
			continue
		}
		s.members[c] = struct{}{}
		s.ordered = append(s.ordered, c)
	}
	return s
}

// LoadCategories reads the allowed category tags from a JSON/JSONC file of
// the form {"categories": ["Type::Subtype", ...]}.
func LoadCategories(path string) (*CategorySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize categories file: %w", err)
	}

	var doc struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("decode categories file: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s declares no categories", path)
	}
	return NewCategorySet(doc.Categories), nil
}

// Contains reports whether the exact category tag is allowed.
func (s *CategorySet) Contains(category string) bool {
	_, ok := s.members[category]
	return ok
}

// All returns the allowed tags in declaration order.
func (s *CategorySet) All() []string {
	return s.ordered
}

// Len returns the number of allowed tags.
func (s *CategorySet) Len() int {
	return len(s.ordered)
}

// IsWellFormed reports whether a category tag has the required
// "Type::Subtype" shape: exactly one separator with non-empty halves.
func IsWellFormed(category string) bool {
	_, _, ok := SplitCategory(category)
	return ok
}

// SplitCategory splits "Type::Subtype" into its halves. ok is false when the
// tag does not contain exactly one separator or either half is empty.
func SplitCategory(category string) (ctype, csubtype string, ok bool) {
	parts := strings.Split(category, categorySeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
