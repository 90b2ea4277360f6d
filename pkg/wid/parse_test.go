package wid

import (
	"errors"
	"testing"
)

func TestValidateValidWIDs(t *testing.T) {
	cases := []struct {
		s    string
		w, z int
		unit TimeUnit
	}{
		{"20260212T091530.0000Z", 4, 0, Sec},
		{"20260212T091530.0042Z", 4, 0, Sec},
		{"20260212T091530.0042Z-a3f91c", 4, 6, Sec},
		{"20260212T091530123.0042Z-a3f91c", 4, 6, Ms},
		{"20260212T091530.00042Z-ab", 5, 2, Sec},
	}
	for _, c := range cases {
		if !ValidateWID(c.s, c.w, c.z, c.unit) {
			t.Errorf("expected valid: %q (W=%d Z=%d %s)", c.s, c.w, c.z, c.unit)
		}
	}
}

func TestValidateInvalidWIDs(t *testing.T) {
	cases := []struct {
		s    string
		w, z int
		unit TimeUnit
	}{
		{"waldiez", 4, 6, Sec},
		{"20260212T091530.0000", 4, 0, Sec},         // missing Z
		{"20261312T091530.0000Z", 4, 0, Sec},        // month 13
		{"20260212T091530.0000Z", 0, 0, Sec},        // W=0 invalid everywhere
		{"20260212T091530.0000Z-ABCDEF", 4, 6, Sec}, // uppercase padding
		{"20260212T091530.0000Z-node01", 4, 0, Sec}, // trailing junk without Z
		{"20260212T091530.000Z", 4, 0, Sec},         // wrong seq width
		{"20260212T09153012.0000Z", 4, 0, Ms},       // 8 time digits, not 9
	}
	for _, c := range cases {
		if ValidateWID(c.s, c.w, c.z, c.unit) {
			t.Errorf("expected invalid: %q (W=%d Z=%d %s)", c.s, c.w, c.z, c.unit)
		}
	}
}

func TestParseWID(t *testing.T) {
	p, err := ParseWID("20260212T091530.0042Z", 4, 0, Sec)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Sequence != 42 || p.Padding != "" {
		t.Fatalf("unexpected components: %+v", p)
	}
	if p.Timestamp.Year() != 2026 || p.Timestamp.Second() != 30 {
		t.Fatalf("unexpected timestamp: %v", p.Timestamp)
	}

	p2, err := ParseWID("20260212T091530.0042Z-a3f91c", 4, 6, Sec)
	if err != nil {
		t.Fatalf("parse with padding: %v", err)
	}
	if p2.Padding != "a3f91c" {
		t.Fatalf("padding = %q", p2.Padding)
	}

	p3, err := ParseWID("20260212T091530123.0042Z-a3f91c", 4, 6, Ms)
	if err != nil {
		t.Fatalf("parse ms: %v", err)
	}
	if p3.Timestamp.Nanosecond() != 123_000_000 {
		t.Fatalf("millis = %d", p3.Timestamp.Nanosecond())
	}
}

func TestParseWIDErrorTaxonomy(t *testing.T) {
	if _, err := ParseWID("waldiez", 4, 6, Sec); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("want ErrInvalidFormat, got %v", err)
	}
	if _, err := ParseWID("20260212T091530.0000Z-ABCDEF", 4, 6, Sec); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("want ErrInvalidFormat, got %v", err)
	}
	// Grammar matches before the calendar check runs; Feb 32 is a
	// semantic failure, not a format one.
	if _, err := ParseWID("20260232T091530.0000Z", 4, 0, Sec); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("want ErrInvalidTimestamp, got %v", err)
	}
	if _, err := ParseWID("20260212T091530.0000Z", 0, 0, Sec); !errors.Is(err, ErrInvalidW) {
		t.Fatalf("want ErrInvalidW, got %v", err)
	}
	if _, err := ParseWID("20260212T091530.0000Z", 4, -1, Sec); !errors.Is(err, ErrInvalidZ) {
		t.Fatalf("want ErrInvalidZ, got %v", err)
	}
}

func TestValidateHLCWIDs(t *testing.T) {
	if !ValidateHLCWID("20260212T091530.0000Z-node01", 4, 0, Sec) {
		t.Error("expected valid HLC-WID")
	}
	if !ValidateHLCWID("20260212T091530.0042Z-node01-a3f91c", 4, 6, Sec) {
		t.Error("expected valid HLC-WID with padding")
	}
	if !ValidateHLCWID("20260212T091530123.0042Z-node01-a3f91c", 4, 6, Ms) {
		t.Error("expected valid ms HLC-WID")
	}
	if ValidateHLCWID("20260212T091530.0000Z", 4, 0, Sec) {
		t.Error("node is mandatory for HLC-WIDs")
	}
	if ValidateHLCWID("20260212T091530.0000Z-node-01", 4, 0, Sec) {
		t.Error("dash in node must fail")
	}
	if ValidateHLCWID("20260212T091530.0000Z-node01-ABCDEF", 4, 6, Sec) {
		t.Error("uppercase padding must fail")
	}
}

func TestParseHLCWID(t *testing.T) {
	p, err := ParseHLCWID("20260212T091530.0042Z-node01-a3f91c", 4, 6, Sec)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Node != "node01" || p.LogicalCounter != 42 || p.Padding != "a3f91c" {
		t.Fatalf("unexpected components: %+v", p)
	}

	if _, err := ParseHLCWID("20261312T091530.0000Z-node01", 4, 0, Sec); !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("want ErrInvalidTimestamp, got %v", err)
	}
	if _, err := ParseHLCWID("20260212T091530.0000Z-node01", 0, 0, Sec); !errors.Is(err, ErrInvalidW) {
		t.Fatalf("want ErrInvalidW, got %v", err)
	}
}

func TestPatternCacheReuse(t *testing.T) {
	a := pattern(false, 7, 3, Sec)
	b := pattern(false, 7, 3, Sec)
	if a != b {
		t.Fatal("expected memoized pattern instance")
	}
	if a == pattern(true, 7, 3, Sec) {
		t.Fatal("HLC and plain grammars must not share a pattern")
	}
}
