package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses rosters and staff files from a YAML sequence.
// Line numbers come from the YAML nodes, so errors point at the source.
type YAMLParser struct{}

// ParseRoster reads a YAML sequence of roster entries.
func (p *YAMLParser) ParseRoster(r io.Reader) ([]RawRosterEntry, error) {
	items, err := readSequence(r)
	if err != nil {
		return nil, err
	}

	entries := make([]RawRosterEntry, 0, len(items))
	for _, item := range items {
		var entry RawRosterEntry
		if err := item.Decode(&entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", item.Line, err)
		}
		entry.LineNum = item.Line
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseStaff reads a YAML sequence of staff records.
func (p *YAMLParser) ParseStaff(r io.Reader) ([]RawStaff, error) {
	items, err := readSequence(r)
	if err != nil {
		return nil, err
	}

	staff := make([]RawStaff, 0, len(items))
	for _, item := range items {
		var raw RawStaff
		if err := item.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", item.Line, err)
		}
		raw.LineNum = item.Line
		staff = append(staff, raw)
	}
	return staff, nil
}

// readSequence decodes the document and returns the items of its top-level
// sequence. An empty document yields no items.
func readSequence(r io.Reader) ([]*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parsing YAML: expected a list at line %d", root.Line)
	}
	return root.Content, nil
}
