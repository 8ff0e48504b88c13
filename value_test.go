package features

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFromJSONNumberClassification(t *testing.T) {
	tests := []struct {
		literal string
		kind    Kind
	}{
		{"0", KindInt},
		{"42", KindInt},
		{"-7", KindInt},
		{"0.0", KindDouble},
		{"3.14", KindDouble},
		{"1e3", KindDouble},
		{"2E2", KindDouble},
		{"-0.5", KindDouble},
	}

	for _, tc := range tests {
		t.Run(tc.literal, func(t *testing.T) {
			value, ok := FromJSONNumber(json.Number(tc.literal))
			if !ok {
				t.Fatalf("expected %q to classify", tc.literal)
			}
			if value.Kind() != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, value.Kind())
			}
		})
	}
}

func TestFromJSONNumberRejectsGarbage(t *testing.T) {
	if _, ok := FromJSONNumber(json.Number("not-a-number")); ok {
		t.Fatalf("expected garbled literal to be rejected")
	}
}

func TestValueOfProbingOrder(t *testing.T) {
	tests := []struct {
		name  string
		input any
		kind  Kind
		ok    bool
	}{
		{"bool stays bool", true, KindBool, true},
		{"boolean-like string stays string", "true", KindString, true},
		{"int", 7, KindInt, true},
		{"int64", int64(7), KindInt, true},
		{"uint32", uint32(7), KindInt, true},
		{"uint64", uint64(7), KindInt, true},
		{"uint64 above int64 range", uint64(math.MaxInt64) + 1, KindInvalid, false},
		{"float64", 1.5, KindDouble, true},
		{"integral float stays double", float64(1), KindDouble, true},
		{"json number int", json.Number("12"), KindInt, true},
		{"json number double", json.Number("12.0"), KindDouble, true},
		{"value passthrough", Int(3), KindInt, true},
		{"nil unsupported", nil, KindInvalid, false},
		{"slice unsupported", []string{"a"}, KindInvalid, false},
		{"map unsupported", map[string]any{}, KindInvalid, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, ok := ValueOf(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%t, got %t", tc.ok, ok)
			}
			if value.Kind() != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, value.Kind())
			}
		})
	}
}

func TestValueTypedAccessors(t *testing.T) {
	if s, ok := String("sale").AsString(); !ok || s != "sale" {
		t.Fatalf("expected string accessor to match, got %q ok=%t", s, ok)
	}
	if _, ok := String("sale").AsBool(); ok {
		t.Fatalf("string must not satisfy a bool request")
	}
	if i, ok := Int(42).AsInt(); !ok || i != 42 {
		t.Fatalf("expected int accessor to match, got %d ok=%t", i, ok)
	}
	if _, ok := Int(42).AsDouble(); ok {
		t.Fatalf("int must not satisfy a double request")
	}
	if f, ok := Double(2.5).AsDouble(); !ok || f != 2.5 {
		t.Fatalf("expected double accessor to match, got %g ok=%t", f, ok)
	}
	if (Value{}).IsValid() {
		t.Fatalf("zero value must be invalid")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	inputs := []Value{String("x"), Bool(true), Int(9), Double(0.25)}
	for _, in := range inputs {
		payload, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal %#v: %v", in, err)
		}
		var out Value
		if err := json.Unmarshal(payload, &out); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if out != in {
			t.Fatalf("expected %#v after round trip, got %#v", in, out)
		}
	}
}

func TestValueUnmarshalRejectsComposite(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"a":1}`), &v); err == nil {
		t.Fatalf("expected composite JSON to be rejected")
	}
}
