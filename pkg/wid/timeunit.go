package wid

import "time"

// TimeUnit selects the granularity of the timestamp component.
type TimeUnit int

const (
	// Sec renders whole seconds: YYYYMMDDTHHMMSS.
	Sec TimeUnit = iota
	// Ms appends a three-digit millisecond block: YYYYMMDDTHHMMSSmmm.
	Ms
)

// String returns the canonical short name ("sec" or "ms").
func (u TimeUnit) String() string {
	if u == Ms {
		return "ms"
	}
	return "sec"
}

// ParseTimeUnit maps "sec"/"ms" to a TimeUnit.
func ParseTimeUnit(s string) (TimeUnit, bool) {
	switch s {
	case "sec":
		return Sec, true
	case "ms":
		return Ms, true
	default:
		return Sec, false
	}
}

// Now returns the current tick (elapsed units since the Unix epoch) for a
// time unit. It is a variable so tests can pin the clock.
var Now = func(u TimeUnit) int64 {
	if u == Ms {
		return time.Now().UnixMilli()
	}
	return time.Now().Unix()
}
