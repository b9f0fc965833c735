package codec

import (
	"errors"
	"reflect"
	"testing"
)

func TestJSONPrefixClassification(t *testing.T) {
	incomplete := []string{
		``,
		`   `,
		`{`,
		`{"a`,
		`{"a":`,
		`{"a":1`,
		`[1,2`,
		`"abc`,
		`"esc\`,
		`tr`,
		`nul`,
		`-`,
		`1.`,
		`1e`,
		`12`, // number at the end of a prefix may still grow
		`-1.5e1`,
	}
	for _, in := range incomplete {
		if _, err := (JSON[any]{}).DecodePrefix([]byte(in)); !errors.Is(err, ErrIncomplete) {
			t.Fatalf("DecodePrefix(%q) err = %v, want ErrIncomplete", in, err)
		}
	}

	malformed := []string{
		`not json`,
		`{]`,
		`[1,,2]`,
		`{"a" 1}`,
		`}`,
		`,1`,
	}
	for _, in := range malformed {
		_, err := (JSON[any]{}).DecodePrefix([]byte(in))
		if err == nil || errors.Is(err, ErrIncomplete) {
			t.Fatalf("DecodePrefix(%q) err = %v, want malformed", in, err)
		}
	}
}

func TestJSONCompletePrefix(t *testing.T) {
	cases := map[string]any{
		`{}`:              map[string]any{},
		`{"a":1}`:         map[string]any{"a": float64(1)},
		` [1, "x"] `:      []any{float64(1), "x"},
		`"s"`:             "s",
		`true`:            true,
		`null`:            nil,
		"12 ":             float64(12), // delimited by whitespace
		"{\"a\":[]}\n\t ": map[string]any{"a": []any{}},
		// first complete value wins; the rest is never looked at
		`{"a":1}x`: map[string]any{"a": float64(1)},
		`{}{}`:      map[string]any{},
		`12a`:       float64(12),
		`"s"]]`:     "s",
	}
	for in, want := range cases {
		got, err := (JSON[any]{}).DecodePrefix([]byte(in))
		if err != nil {
			t.Fatalf("DecodePrefix(%q): %v", in, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("DecodePrefix(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestJSONDecodeAtEOF(t *testing.T) {
	got, err := (JSON[any]{}).Decode([]byte("12"))
	if err != nil || got != float64(12) {
		t.Fatalf("Decode(12) = %v, %v", got, err)
	}
	if _, err := (JSON[any]{}).Decode([]byte(`{"a":`)); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Decode truncated err = %v, want ErrIncomplete", err)
	}
	if got, err := (JSON[any]{}).Decode([]byte(`1 2`)); err != nil || got != float64(1) {
		t.Fatalf("Decode(1 2) = %v, %v, want first value", got, err)
	}
}

func TestJSONTyped(t *testing.T) {
	type item struct {
		ID int `json:"id"`
	}
	c := JSON[item]{}
	b, err := c.Encode(item{ID: 7})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(b) != `{"id":7}` {
		t.Fatalf("Encode = %s", b)
	}
	if _, err := c.DecodePrefix(b[:len(b)-1]); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("truncated typed value err = %v", err)
	}
	got, err := c.DecodePrefix(b)
	if err != nil || got.ID != 7 {
		t.Fatalf("DecodePrefix = %+v, %v", got, err)
	}
	if _, err := c.Decode([]byte(`{"id":"x"}`)); err == nil || errors.Is(err, ErrIncomplete) {
		t.Fatalf("type mismatch err = %v, want malformed", err)
	}
}
