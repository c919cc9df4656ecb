package proc

import "errors"

var (
	// ErrNoStat indicates that <pid>/stat was empty or malformed.
	ErrNoStat = errors.New("proc: malformed or empty stat")

	// ErrShortStat indicates that <pid>/stat had fewer fields than expected.
	ErrShortStat = errors.New("proc: short stat")

	// ErrNoStatus indicates that <pid>/status had no recognized key.
	ErrNoStatus = errors.New("proc: no recognized status keys")

	// ErrNoUptime indicates that the uptime file had no parsable seconds field.
	ErrNoUptime = errors.New("proc: no uptime")

	// ErrNoCPU indicates that the host stat file had no aggregate CPU line.
	ErrNoCPU = errors.New("proc: no cpu line")

	// ErrNoMemInfo indicates that meminfo had no total.
	ErrNoMemInfo = errors.New("proc: no meminfo total")
)
