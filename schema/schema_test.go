package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/violation"
)

func testCategories() *CategorySet {
	return NewCategorySet([]string{
		"DeFi::DEX",
		"DeFi::Lending",
		"DeFi::Yield",
		"Infra::Oracle",
	})
}

func parse(t *testing.T, file, doc string) *record.Protocol {
	t.Helper()
	p, err := record.Parse([]byte(doc), file)
	require.NoError(t, err)
	return p
}

func kinds(violations []violation.Violation) []violation.Kind {
	out := make([]violation.Kind, len(violations))
	for i, v := range violations {
		out[i] = v.Kind
	}
	return out
}

func TestValidate_CleanRecord(t *testing.T) {
	p := parse(t, "acme.json", `{
		"name": "Acme",
		"description": "A protocol.",
		"categories": ["DeFi::DEX"],
		"links": {"website": "https://acme.example"},
		"addresses": {"Router": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111"}
	}`)

	assert.Empty(t, NewValidator(testCategories()).Validate(p))
}

func TestValidate_MissingFields(t *testing.T) {
	p := parse(t, "bare.json", `{"addresses": {"A": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111"}}`)

	violations := NewValidator(testCategories()).Validate(p)
	require.Len(t, violations, 4)

	fields := make([]string, len(violations))
	for i, v := range violations {
		assert.Equal(t, violation.KindMissingField, v.Kind)
		assert.Equal(t, "bare.json", v.File)
		fields[i] = v.Label
	}
	assert.Equal(t, []string{"name", "description", "links", "categories"}, fields)
}

func TestValidate_EmptyCategoriesIsMissing(t *testing.T) {
	p := parse(t, "empty-cats.json", `{
		"name": "X", "description": "Y", "links": {},
		"categories": [],
		"addresses": {"A": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111"}
	}`)

	violations := NewValidator(testCategories()).Validate(p)
	require.Len(t, violations, 1)
	assert.Equal(t, violation.KindMissingField, violations[0].Kind)
	assert.Equal(t, "categories", violations[0].Label)
}

func TestValidate_CategoryFormat(t *testing.T) {
	tests := []struct {
		name     string
		category string
		valid    bool
	}{
		{"well-formed member", "DeFi::DEX", true},
		{"no separator", "DeFi", false},
		{"double separator", "DeFi::DEX::Spot", false},
		{"empty type", "::DEX", false},
		{"empty subtype", "DeFi::", false},
		{"well-formed non-member", "Gaming::Casino", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, "c.json", `{
				"name": "X", "description": "Y", "links": {},
				"categories": ["`+tt.category+`"],
				"addresses": {"A": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111"}
			}`)

			violations := NewValidator(testCategories()).Validate(p)
			if tt.valid {
				assert.Empty(t, violations)
			} else {
				require.Len(t, violations, 1)
				assert.Equal(t, violation.KindInvalidCategory, violations[0].Kind)
				assert.Equal(t, tt.category, violations[0].Detail)
			}
		})
	}
}

func TestValidate_NilCategorySetSkipsMembership(t *testing.T) {
	p := parse(t, "canonical.jsonc", `{
		"name": "Canonical", "description": "Shared contracts.", "links": {},
		"categories": ["Anything::Goes"],
		"addresses": {"WETH": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111"}
	}`)

	assert.Empty(t, NewValidator(nil).Validate(p))
}

func TestValidate_Addresses(t *testing.T) {
	p := parse(t, "addr.json", `{
		"name": "X", "description": "Y", "links": {},
		"categories": ["DeFi::DEX"],
		"addresses": {
			"Good":     "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111",
			"NoPrefix": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111",
			"Short":    "0xaaaa"
		}
	}`)

	violations := NewValidator(testCategories()).Validate(p)
	require.Len(t, violations, 2)
	assert.Equal(t, violation.KindInvalidAddress, violations[0].Kind)
	assert.Equal(t, "NoPrefix", violations[0].Label)
	assert.Equal(t, "Short", violations[1].Label)
}

func TestValidate_EmptyAddressMapIsWarning(t *testing.T) {
	p := parse(t, "empty.json", `{
		"name": "X", "description": "Y", "links": {}, "categories": ["DeFi::DEX"],
		"addresses": {}
	}`)

	violations := NewValidator(testCategories()).Validate(p)
	require.Len(t, violations, 1)
	assert.Equal(t, violation.KindEmptyAddressMap, violations[0].Kind)
	assert.Equal(t, violation.SeverityWarning, violations[0].Severity)
}

func TestValidate_Links(t *testing.T) {
	p := parse(t, "links.json", `{
		"name": "X", "description": "Y", "categories": ["DeFi::DEX"],
		"links": {"website": "https://x.example", "docs": 42, "blank": ""},
		"addresses": {"A": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111"}
	}`)

	violations := NewValidator(testCategories()).Validate(p)
	require.Len(t, violations, 2)
	assert.Equal(t, []violation.Kind{violation.KindInvalidLink, violation.KindInvalidLink}, kinds(violations))
	assert.Equal(t, "blank", violations[0].Label)
	assert.Equal(t, "docs", violations[1].Label)
}
