package domain

import (
	"encoding/json"
	"testing"
)

type stringerID struct{ v string }

func (s stringerID) String() string { return s.v }

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string", in: "abc", want: "abc"},
		{name: "padded string", in: " 123 ", want: "123"},
		{name: "int", in: 123, want: "123"},
		{name: "int64", in: int64(7340032), want: "7340032"},
		{name: "uint64", in: uint64(42), want: "42"},
		{name: "integral float", in: float64(123), want: "123"},
		{name: "fractional float", in: 1.5, want: "1.5"},
		{name: "json number", in: json.Number("99"), want: "99"},
		{name: "stringer", in: stringerID{v: "obj-1"}, want: "obj-1"},
		{name: "nil", in: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalID(tt.in); got != tt.want {
				t.Fatalf("CanonicalID(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalID_NumericAndStringEqual(t *testing.T) {
	if CanonicalID(123) != CanonicalID("123") {
		t.Fatalf("numeric and string ids must share a canonical form")
	}
}
