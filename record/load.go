package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

// ParseFailure describes a file that could not be parsed at all. It is
// fatal for that file only; loading continues for the rest of the partition.
type ParseFailure struct {
	// File is the base name of the offending file.
	File string

	// Err is the underlying parse or read error.
	Err error
}

// Error implements the error interface.
func (f ParseFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.File, f.Err)
}

// Unwrap returns the underlying error.
func (f ParseFailure) Unwrap() error {
	return f.Err
}

// Parse decodes a single protocol document. The input may be plain JSON or
// JSON with comments and trailing commas; comments are stripped with hujson
// before decoding. file is recorded as the record's identity.
func Parse(data []byte, file string) (*Protocol, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardize jsonc: %w", err)
	}

	// Decode the top level twice: once into a raw map to capture which
	// keys are present, once into the typed record.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(std, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	var p Protocol
	if err := json.Unmarshal(std, &p); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	p.File = file
	p.fields = make(map[string]struct{}, len(raw))
	for key := range raw {
		p.fields[key] = struct{}{}
	}
	return &p, nil
}

// ParseFile reads and decodes one protocol file.
func ParseFile(path string) (*Protocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Base(path))
}

// ListFiles returns the protocol file names (*.json and *.jsonc) in dir,
// sorted lexicographically. Only base names are returned.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".json" || ext == ".jsonc" {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir loads every protocol file in dir in lexicographic order.
// Files that fail to parse are collected as ParseFailures; the returned
// record slice preserves the file order of the successfully parsed records.
// Only a missing or unreadable directory is returned as an error.
func LoadDir(dir string) ([]*Protocol, []ParseFailure, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	var (
		records  []*Protocol
		failures []ParseFailure
	)
	for _, file := range files {
		p, err := ParseFile(filepath.Join(dir, file))
		if err != nil {
			failures = append(failures, ParseFailure{File: file, Err: err})
			continue
		}
		records = append(records, p)
	}
	return records, failures, nil
}
