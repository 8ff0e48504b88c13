package features

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Manifest parse failures, matchable with errors.Is through *ParseError.
var (
	// ErrMalformed reports input that is not a well-formed JSON array of objects.
	ErrMalformed = errors.New("features: malformed manifest")
	// ErrMissingField reports an entry lacking key, description or value.
	ErrMissingField = errors.New("features: missing manifest field")
	// ErrUnsupportedType reports a value outside the four supported kinds.
	ErrUnsupportedType = errors.New("features: unsupported value type")
	// ErrDuplicateKey reports two entries sharing a key.
	ErrDuplicateKey = errors.New("features: duplicate manifest key")
	// ErrInvalidKey reports a key that is not identifier-safe. Keys are
	// rejected here rather than mangled during generation.
	ErrInvalidKey = errors.New("features: invalid manifest key")
)

// ParseError decorates a manifest failure with the offending entry.
type ParseError struct {
	Index int
	Key   string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Field != "" && e.Key != "":
		return fmt.Sprintf("%v: entry %d key %q field %q", e.Err, e.Index, e.Key, e.Field)
	case e.Field != "":
		return fmt.Sprintf("%v: entry %d field %q", e.Err, e.Index, e.Field)
	case e.Key != "":
		return fmt.Sprintf("%v: entry %d key %q", e.Err, e.Index, e.Key)
	default:
		return fmt.Sprintf("%v: entry %d", e.Err, e.Index)
	}
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Entry is one feature definition: a unique identifier-safe key, a human
// description, and a typed default value.
type Entry struct {
	Key         string
	Description string
	Value       Value
}

// Manifest is an ordered sequence of feature entries. Insertion order is
// preserved and drives deterministic generated-code ordering.
type Manifest struct {
	entries []Entry
	index   map[string]int
}

// NewManifest assembles a manifest from entries, enforcing the same key
// uniqueness and validity rules as ParseManifest.
func NewManifest(entries []Entry) (*Manifest, error) {
	m := &Manifest{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, entry := range entries {
		if err := m.append(i, entry); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ParseManifest decodes a JSON manifest: an array of objects with fields
// `key` (string), `description` (string) and `value` (string, boolean,
// integer or floating-point). Number literals are classified by the
// FromJSONNumber rule. Parsing has no side effects beyond the returned
// manifest or error.
func ParseManifest(raw []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if dec.More() {
		return nil, &ParseError{Err: fmt.Errorf("%w: trailing data after manifest array", ErrMalformed)}
	}

	m := &Manifest{
		entries: make([]Entry, 0, len(rows)),
		index:   make(map[string]int, len(rows)),
	}
	for i, row := range rows {
		if row == nil {
			return nil, &ParseError{Index: i, Err: fmt.Errorf("%w: entry is not an object", ErrMalformed)}
		}
		entry, err := parseEntry(i, row)
		if err != nil {
			return nil, err
		}
		if err := m.append(i, entry); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func parseEntry(index int, row map[string]any) (Entry, error) {
	rawKey, ok := row["key"]
	if !ok {
		return Entry{}, &ParseError{Index: index, Field: "key", Err: ErrMissingField}
	}
	key, ok := rawKey.(string)
	if !ok {
		return Entry{}, &ParseError{Index: index, Field: "key", Err: fmt.Errorf("%w: key must be a string", ErrMalformed)}
	}

	rawDescription, ok := row["description"]
	if !ok {
		return Entry{}, &ParseError{Index: index, Key: key, Field: "description", Err: ErrMissingField}
	}
	description, ok := rawDescription.(string)
	if !ok {
		return Entry{}, &ParseError{Index: index, Key: key, Field: "description", Err: fmt.Errorf("%w: description must be a string", ErrMalformed)}
	}

	rawValue, ok := row["value"]
	if !ok {
		return Entry{}, &ParseError{Index: index, Key: key, Field: "value", Err: ErrMissingField}
	}
	value, ok := ValueOf(rawValue)
	if !ok {
		return Entry{}, &ParseError{Index: index, Key: key, Field: "value", Err: fmt.Errorf("%w: %T", ErrUnsupportedType, rawValue)}
	}

	return Entry{Key: key, Description: description, Value: value}, nil
}

func (m *Manifest) append(index int, entry Entry) error {
	if !validKey(entry.Key) {
		return &ParseError{Index: index, Key: entry.Key, Err: ErrInvalidKey}
	}
	if !entry.Value.IsValid() {
		return &ParseError{Index: index, Key: entry.Key, Field: "value", Err: ErrUnsupportedType}
	}
	if _, exists := m.index[entry.Key]; exists {
		return &ParseError{Index: index, Key: entry.Key, Err: ErrDuplicateKey}
	}
	m.index[entry.Key] = len(m.entries)
	m.entries = append(m.entries, entry)
	return nil
}

// Entries returns the manifest entries in insertion order. The slice is
// detached from the manifest.
func (m *Manifest) Entries() []Entry {
	if m == nil {
		return nil
	}
	return append([]Entry(nil), m.entries...)
}

// Len reports the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Lookup returns the entry for key when present.
func (m *Manifest) Lookup(key string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// validKey reports whether key is usable as an identifier: ASCII letter or
// underscore first, letters, digits or underscores after.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
