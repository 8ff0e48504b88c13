package features

import (
	"errors"
	"testing"
)

const sampleManifest = `[
	{"key": "featureA", "description": "Gates the A flow", "value": false},
	{"key": "promo_code", "description": "Current promo code", "value": "SALE25"},
	{"key": "max_retries", "description": "Retry budget", "value": 3},
	{"key": "sample_rate", "description": "Trace sampling", "value": 0.25}
]`

func TestParseManifestPreservesOrderAndKinds(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", m.Len())
	}

	expected := []struct {
		key  string
		kind Kind
	}{
		{"featureA", KindBool},
		{"promo_code", KindString},
		{"max_retries", KindInt},
		{"sample_rate", KindDouble},
	}
	for i, entry := range m.Entries() {
		if entry.Key != expected[i].key {
			t.Fatalf("entry %d: expected key %q, got %q", i, expected[i].key, entry.Key)
		}
		if entry.Value.Kind() != expected[i].kind {
			t.Fatalf("entry %d: expected kind %s, got %s", i, expected[i].kind, entry.Value.Kind())
		}
	}

	if _, ok := m.Lookup("promo_code"); !ok {
		t.Fatalf("expected lookup to find promo_code")
	}
	if _, ok := m.Lookup("missing"); ok {
		t.Fatalf("expected lookup miss for unknown key")
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not json", `nope`, ErrMalformed},
		{"object not array", `{"key":"a"}`, ErrMalformed},
		{"trailing data", `[] []`, ErrMalformed},
		{"null entry", `[null]`, ErrMalformed},
		{"non-string key", `[{"key": 2, "description": "d", "value": 1}]`, ErrMalformed},
		{"missing key", `[{"description": "d", "value": 1}]`, ErrMissingField},
		{"missing description", `[{"key": "a", "value": 1}]`, ErrMissingField},
		{"missing value", `[{"key": "a", "description": "d"}]`, ErrMissingField},
		{"null value", `[{"key": "a", "description": "d", "value": null}]`, ErrUnsupportedType},
		{"array value", `[{"key": "a", "description": "d", "value": [1]}]`, ErrUnsupportedType},
		{"object value", `[{"key": "a", "description": "d", "value": {"x":1}}]`, ErrUnsupportedType},
		{"duplicate key", `[{"key": "a", "description": "d", "value": 1},{"key": "a", "description": "d", "value": 2}]`, ErrDuplicateKey},
		{"empty key", `[{"key": "", "description": "d", "value": 1}]`, ErrInvalidKey},
		{"leading digit", `[{"key": "1a", "description": "d", "value": 1}]`, ErrInvalidKey},
		{"dashed key", `[{"key": "dark-mode", "description": "d", "value": 1}]`, ErrInvalidKey},
		{"spaced key", `[{"key": "dark mode", "description": "d", "value": 1}]`, ErrInvalidKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.raw))
			if err == nil {
				t.Fatalf("expected error %v", tc.want)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParseManifestDuplicateReportsEntry(t *testing.T) {
	raw := `[
		{"key": "a", "description": "d", "value": 1},
		{"key": "b", "description": "d", "value": 2},
		{"key": "a", "description": "d", "value": 3}
	]`
	_, err := ParseManifest([]byte(raw))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Index != 2 || parseErr.Key != "a" {
		t.Fatalf("expected duplicate reported at entry 2 key a, got entry %d key %q", parseErr.Index, parseErr.Key)
	}
}

func TestNewManifestValidates(t *testing.T) {
	if _, err := NewManifest([]Entry{{Key: "ok", Value: Bool(true)}}); err != nil {
		t.Fatalf("expected valid entry to assemble: %v", err)
	}
	if _, err := NewManifest([]Entry{{Key: "bad", Value: Value{}}}); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected invalid value to be rejected, got %v", err)
	}
	if _, err := NewManifest([]Entry{{Key: "x", Value: Int(1)}, {Key: "x", Value: Int(2)}}); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected duplicate to be rejected, got %v", err)
	}
}
