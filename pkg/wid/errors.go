package wid

import "errors"

// Sentinel errors returned by constructors and parse functions. Match with
// errors.Is; ErrInvalidFormat and ErrInvalidTimestamp are wrapped with the
// offending input.
var (
	ErrInvalidW           = errors.New("wid: W must be > 0")
	ErrInvalidZ           = errors.New("wid: Z must be >= 0")
	ErrInvalidNode        = errors.New("wid: node must be non-empty and contain only [A-Za-z0-9_]")
	ErrInvalidRemoteClock = errors.New("wid: remote clock values must be >= 0")
	ErrInvalidFormat      = errors.New("wid: invalid format")
	ErrInvalidTimestamp   = errors.New("wid: invalid timestamp")
)
