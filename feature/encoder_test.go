package feature

import (
	"reflect"
	"testing"

	"github.com/rushteam/outfit/core"
)

func TestLabelEncoder_SortedCodes(t *testing.T) {
	enc := FitLabelEncoder("color", []string{"white", "black", "red", "black", "blue"})

	want := []string{"black", "blue", "red", "white"}
	if got := enc.Classes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Classes() = %v, want %v", got, want)
	}
	if enc.Len() != 4 {
		t.Errorf("Len() = %d, want 4", enc.Len())
	}

	for i, c := range want {
		code, err := enc.Encode(c)
		if err != nil {
			t.Fatalf("Encode(%q) error = %v", c, err)
		}
		if code != i {
			t.Errorf("Encode(%q) = %d, want %d", c, code, i)
		}
	}
}

func TestLabelEncoder_OrderIndependent(t *testing.T) {
	a := FitLabelEncoder("purpose", []string{"formal", "casual", "ceremonial"})
	b := FitLabelEncoder("purpose", []string{"ceremonial", "casual", "formal", "casual"})
	if !reflect.DeepEqual(a.Classes(), b.Classes()) {
		t.Errorf("codes depend on input order: %v vs %v", a.Classes(), b.Classes())
	}
}

func TestLabelEncoder_RoundTrip(t *testing.T) {
	values := []string{"black", "white", "navy", "beige"}
	enc := FitLabelEncoder("color", values)
	for _, v := range values {
		code, err := enc.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%q) error = %v", v, err)
		}
		got, err := enc.Decode(code)
		if err != nil {
			t.Fatalf("Decode(%d) error = %v", code, err)
		}
		if got != v {
			t.Errorf("Decode(Encode(%q)) = %q", v, got)
		}
	}
}

func TestLabelEncoder_Unknown(t *testing.T) {
	enc := FitLabelEncoder("color", []string{"black"})

	if _, err := enc.Encode("neon"); !core.IsUnknownCategory(err) {
		t.Errorf("Encode(neon) error = %v, want UNKNOWN_CATEGORY", err)
	}
	if _, err := enc.Decode(5); !core.IsUnknownCategory(err) {
		t.Errorf("Decode(5) error = %v, want UNKNOWN_CATEGORY", err)
	}
	if _, err := enc.Decode(-1); !core.IsUnknownCategory(err) {
		t.Errorf("Decode(-1) error = %v, want UNKNOWN_CATEGORY", err)
	}
	if enc.Has("neon") || !enc.Has("black") {
		t.Errorf("Has() mismatch")
	}
}
