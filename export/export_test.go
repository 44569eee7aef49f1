package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/violation"
)

func TestRows_SingleRecord(t *testing.T) {
	records := []*record.Protocol{{
		File:       "foo.json",
		Name:       "Foo",
		Categories: []string{"DeFi::Lending", "DeFi::Yield"},
		Addresses:  map[string]string{"Pool": "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1111"},
	}}

	rows, skipped := Rows(records)
	require.Empty(t, skipped)
	require.Len(t, rows, 1)

	assert.Equal(t, Row{
		Name:          "Foo",
		CType:         "DeFi",
		CSubtype:      "Lending",
		Contract:      "Pool",
		Address:       "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111",
		AllCategories: "DeFi::Lending;DeFi::Yield",
	}, rows[0])
}

func TestRows_SortOrder(t *testing.T) {
	records := []*record.Protocol{
		{
			File: "z.json", Name: "Zeta",
			Categories: []string{"DeFi::DEX"},
			Addresses: map[string]string{
				"Vault":  "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb2222",
				"Router": "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111",
			},
		},
		{
			File: "a.json", Name: "Alpha",
			Categories: []string{"DeFi::Lending"},
			Addresses:  map[string]string{"Pool": "0xcccccccccccccccccccccccccccccccccccc3333"},
		},
		{
			File: "o.json", Name: "Omega",
			Categories: []string{"DeFi::DEX"},
			Addresses:  map[string]string{"Factory": "0xdddddddddddddddddddddddddddddddddddd4444"},
		},
	}

	rows, skipped := Rows(records)
	require.Empty(t, skipped)
	require.Len(t, rows, 4)

	got := make([][2]string, len(rows))
	for i, r := range rows {
		got[i] = [2]string{r.Name, r.Contract}
	}
	assert.Equal(t, [][2]string{
		{"Omega", "Factory"},
		{"Zeta", "Router"},
		{"Zeta", "Vault"},
		{"Alpha", "Pool"},
	}, got, "sorted by (ctype, csubtype, name, contract)")
}

func TestRows_SkipsUnclassifiable(t *testing.T) {
	records := []*record.Protocol{
		{File: "nocat.json", Name: "NoCat", Addresses: map[string]string{"A": "0x01"}},
		{File: "badcat.json", Name: "BadCat", Categories: []string{"Lending"},
			Addresses: map[string]string{"A": "0x01"}},
	}

	rows, skipped := Rows(records)
	assert.Empty(t, rows)
	require.Len(t, skipped, 2)
	assert.Equal(t, violation.KindInvalidCategory, skipped[0].Kind)
	assert.Equal(t, "nocat.json", skipped[0].File)
	assert.Equal(t, "badcat.json", skipped[1].File)
	assert.Equal(t, "Lending", skipped[1].Detail)
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{{
		Name: "Foo", CType: "DeFi", CSubtype: "Lending", Contract: "Pool",
		Address:       "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111",
		AllCategories: "DeFi::Lending",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,ctype,csubtype,contract,address,all_categories", lines[0])
	assert.Equal(t, "Foo,DeFi,Lending,Pool,0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111,DeFi::Lending", lines[1])
}

func TestWriteJSON(t *testing.T) {
	rows := []Row{{Name: "Foo", CType: "DeFi", CSubtype: "DEX"}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rows))

	var decoded []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, ".csv", f.FileExtension())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
