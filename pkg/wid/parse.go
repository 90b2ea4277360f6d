package wid

import (
	"fmt"
	"strconv"
	"time"
)

// ParsedWID is a read-only view of a successfully parsed plain WID.
type ParsedWID struct {
	// Raw is the input string as given.
	Raw string
	// Timestamp is the decoded UTC time.
	Timestamp time.Time
	// Sequence is the decoded W-digit sequence value.
	Sequence int
	// Padding is the random hex block, empty when absent.
	Padding string
}

// ParsedHLCWID is a read-only view of a successfully parsed HLC-WID.
type ParsedHLCWID struct {
	Raw            string
	Timestamp      time.Time
	LogicalCounter int
	Node           string
	Padding        string
}

// ParseWID parses s against the plain WID grammar for (w, z, unit).
//
// Grammar mismatches return ErrInvalidFormat; strings that match the
// grammar but encode an illegal calendar date-time return
// ErrInvalidTimestamp. Format checks run before semantic checks.
func ParseWID(s string, w, z int, unit TimeUnit) (*ParsedWID, error) {
	if w <= 0 {
		return nil, ErrInvalidW
	}
	if z < 0 {
		return nil, ErrInvalidZ
	}

	m := pattern(false, w, z, unit).FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	ts, ok := parseTimestamp(unit, m[1], m[2])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	seq, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	p := &ParsedWID{Raw: s, Timestamp: ts, Sequence: seq}
	if z > 0 && len(m) > 4 {
		p.Padding = m[4]
	}
	return p, nil
}

// ValidateWID reports whether s is a well-formed plain WID for (w, z, unit).
func ValidateWID(s string, w, z int, unit TimeUnit) bool {
	_, err := ParseWID(s, w, z, unit)
	return err == nil
}

// ParseHLCWID parses s against the HLC-WID grammar for (w, z, unit). The
// node field must pass the same character-class check enforced at
// generator construction.
func ParseHLCWID(s string, w, z int, unit TimeUnit) (*ParsedHLCWID, error) {
	if w <= 0 {
		return nil, ErrInvalidW
	}
	if z < 0 {
		return nil, ErrInvalidZ
	}

	m := pattern(true, w, z, unit).FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	node := m[4]
	if !isValidNode(node) {
		return nil, ErrInvalidNode
	}
	ts, ok := parseTimestamp(unit, m[1], m[2])
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	lc, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	p := &ParsedHLCWID{Raw: s, Timestamp: ts, LogicalCounter: lc, Node: node}
	if z > 0 && len(m) > 5 {
		p.Padding = m[5]
	}
	return p, nil
}

// ValidateHLCWID reports whether s is a well-formed HLC-WID for (w, z, unit).
func ValidateHLCWID(s string, w, z int, unit TimeUnit) bool {
	_, err := ParseHLCWID(s, w, z, unit)
	return err == nil
}
