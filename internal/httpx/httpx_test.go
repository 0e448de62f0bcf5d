package httpx

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		if err := DecodeJSON(strings.NewReader(`{"name":"Hugin"}`), &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != "Hugin" {
			t.Fatalf("name = %q", p.Name)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		var p payload
		if err := DecodeJSON(strings.NewReader(`{"name":"Hugin","extra":1}`), &p); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("trailing object rejected", func(t *testing.T) {
		var p payload
		if err := DecodeJSON(strings.NewReader(`{"name":"a"}{"name":"b"}`), &p); err == nil {
			t.Fatal("expected error for second object")
		}
	})
}

func TestParseStringList(t *testing.T) {
	values := url.Values{
		"projectType": []string{"Demontering,Nybyggnation", " Ombyggnation "},
	}
	got := ParseStringList(values, "projectType")
	want := []string{"Demontering", "Nybyggnation", "Ombyggnation"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if got := ParseStringList(values, "missing"); got != nil {
		t.Fatalf("missing key should give nil, got %v", got)
	}
}

func TestParseIntList(t *testing.T) {
	values := url.Values{
		"years": []string{"2024,2030"},
		"bad":   []string{"2024,x"},
	}

	got, err := ParseIntList(values, "years")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{2024, 2030}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseIntList(values, "bad"); err == nil {
		t.Fatal("expected error for non-numeric element")
	}

	if got, err := ParseIntList(values, "missing"); err != nil || got != nil {
		t.Fatalf("missing key should give nil, got %v, %v", got, err)
	}
}

func TestParseBool(t *testing.T) {
	values := url.Values{
		"a": []string{"true"},
		"b": []string{"1"},
		"c": []string{"yes"},
		"d": []string{"false"},
	}
	if !ParseBool(values, "a") || !ParseBool(values, "b") {
		t.Error("true and 1 should parse as set")
	}
	if ParseBool(values, "c") || ParseBool(values, "d") || ParseBool(values, "missing") {
		t.Error("other values should parse as unset")
	}
}

func TestParseLimitOffset(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		limit, offset, err := ParseLimitOffset(url.Values{}, 20, 100)
		if err != nil || limit != 20 || offset != 0 {
			t.Fatalf("got %d, %d, %v", limit, offset, err)
		}
	})

	t.Run("capped at max", func(t *testing.T) {
		limit, _, err := ParseLimitOffset(url.Values{"limit": []string{"500"}}, 20, 100)
		if err != nil || limit != 100 {
			t.Fatalf("got %d, %v", limit, err)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		if _, _, err := ParseLimitOffset(url.Values{"limit": []string{"0"}}, 20, 100); err == nil {
			t.Fatal("expected error")
		}
	})
}
