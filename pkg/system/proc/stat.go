//go:build linux

package proc

import (
	"strconv"
	"strings"

	"github.com/ja7ad/taskman/pkg/system/util"
)

// Stat holds the CPU accounting fields of <pid>/stat, in clock ticks.
type Stat struct {
	UTime     uint64 // field 14
	STime     uint64 // field 15
	StartTime uint64 // field 22, ticks after boot
}

// Ticks returns user plus kernel time.
func (s Stat) Ticks() uint64 { return s.UTime + s.STime }

// ReadStat reads and parses <pid>/stat.
func (p FS) ReadStat(pid uint32) (Stat, error) {
	b, err := p.readFile(p.pidPath(pid, "stat"))
	if err != nil {
		return Stat{}, err
	}
	return ParseStat(string(b))
}

// ParseStat parses one <pid>/stat line.
//
// comm (field 2) is in parens and may contain spaces or parens, so fields
// are counted from the last ") ". A malformed number is left at zero.
func ParseStat(line string) (Stat, error) {
	i := strings.LastIndex(line, ") ")
	if i < 0 {
		return Stat{}, ErrNoStat
	}
	// fields[0] is field 3 (state)
	fields := strings.Fields(line[i+2:])
	if len(fields) < 20 {
		return Stat{}, ErrShortStat
	}
	get := func(n int) uint64 {
		v, _ := strconv.ParseUint(fields[n-3], 10, 64)
		return v
	}
	return Stat{
		UTime:     get(14),
		STime:     get(15),
		StartTime: get(22),
	}, nil
}

// ReadUptime returns the first field of the uptime file, in seconds.
func (p FS) ReadUptime() (float64, error) {
	b, err := p.readFile(p.path("uptime"))
	if err != nil {
		return 0, err
	}
	f := strings.Fields(string(b))
	if len(f) == 0 {
		return 0, ErrNoUptime
	}
	v, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return 0, ErrNoUptime
	}
	return v, nil
}

// LifetimeCPUPercent is CPU time as a share of the wall-clock time since
// the process started. It is not windowed: a burst in a long-lived process
// is diluted by its whole age. Multi-threaded processes may exceed 100.
func LifetimeCPUPercent(s Stat, uptimeSec float64, hz int64) float64 {
	if hz <= 0 {
		return 0
	}
	h := float64(hz)
	age := uptimeSec - float64(s.StartTime)/h
	if age <= 0 {
		return 0
	}
	return max(0, 100*util.SafeDiv(float64(s.Ticks())/h, age))
}

// WindowCPUPercent is CPU time over a wall-clock window of dtSec seconds.
func WindowCPUPercent(dTicks uint64, dtSec float64, hz int64) float64 {
	if hz <= 0 || dtSec <= 0 {
		return 0
	}
	return max(0, 100*util.SafeDiv(float64(dTicks)/float64(hz), dtSec))
}
