package wid

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// patternKey identifies one compiled grammar: variant plus the (W, Z, unit)
// triple the caller fixed at construction time.
type patternKey struct {
	hlc  bool
	w    int
	z    int
	unit TimeUnit
}

// patterns is a process-wide read-through cache. Entries are compiled once
// per distinct key and never mutated afterwards, so concurrent readers need
// no further locking.
var patterns sync.Map

func pattern(hlc bool, w, z int, unit TimeUnit) *regexp.Regexp {
	key := patternKey{hlc: hlc, w: w, z: z, unit: unit}
	if p, ok := patterns.Load(key); ok {
		return p.(*regexp.Regexp)
	}
	p, _ := patterns.LoadOrStore(key, buildPattern(hlc, w, z, unit))
	return p.(*regexp.Regexp)
}

func buildPattern(hlc bool, w, z int, unit TimeUnit) *regexp.Regexp {
	timeDigits := 6
	if unit == Ms {
		timeDigits = 9
	}
	node := ""
	if hlc {
		node = `-([A-Za-z0-9_]+)`
	}
	pad := ""
	if z > 0 {
		pad = fmt.Sprintf(`(?:-([0-9a-f]{%d}))?`, z)
	}
	expr := fmt.Sprintf(`^(\d{8})T(\d{%d})\.(\d{%d})Z%s%s$`, timeDigits, w, node, pad)
	return regexp.MustCompile(expr)
}

// formatTick renders a tick as the fixed-width UTC timestamp block.
func formatTick(unit TimeUnit, tick int64) string {
	if unit == Ms {
		t := time.Unix(tick/1000, (tick%1000)*int64(time.Millisecond)).UTC()
		return t.Format("20060102T150405") + fmt.Sprintf("%03d", tick%1000)
	}
	return time.Unix(tick, 0).UTC().Format("20060102T150405")
}

// parseTimestamp decodes the date and time blocks into a UTC time. It
// rejects values that match the grammar but do not form a legal calendar
// date-time (month 13, Feb 32, hour 25): time.Date normalizes such inputs,
// so a field-by-field comparison against the normalized result exposes them.
func parseTimestamp(unit TimeUnit, dateStr, timeStr string) (time.Time, bool) {
	year, _ := strconv.Atoi(dateStr[0:4])
	month, _ := strconv.Atoi(dateStr[4:6])
	day, _ := strconv.Atoi(dateStr[6:8])
	hour, _ := strconv.Atoi(timeStr[0:2])
	minute, _ := strconv.Atoi(timeStr[2:4])
	second, _ := strconv.Atoi(timeStr[4:6])
	millis := 0
	if unit == Ms {
		millis, _ = strconv.Atoi(timeStr[6:9])
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, millis*int(time.Millisecond), time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false
	}
	return t, true
}

func isValidNode(node string) bool {
	if node == "" {
		return false
	}
	for _, c := range node {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

const hexdigits = "0123456789abcdef"

// randPad draws z independent lowercase-hex characters. The padding adds
// collision resistance across generators; it is not part of the ordering key.
func randPad(z int) string {
	out := make([]byte, z)
	for i := range out {
		out[i] = hexdigits[rand.IntN(16)]
	}
	return string(out)
}

// pow10 computes 10^w as an int64; w is a digit width, so small.
func pow10(w int) int64 {
	n := int64(1)
	for i := 0; i < w; i++ {
		n *= 10
	}
	return n
}
