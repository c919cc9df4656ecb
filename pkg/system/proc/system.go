//go:build linux

package proc

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/ja7ad/taskman/pkg/system/util"
	"github.com/ja7ad/taskman/pkg/types"
)

// CPUTimes is one reading of the aggregate cpu line, in clock ticks.
type CPUTimes struct {
	Idle  uint64
	Total uint64 // sum of every numeric field on the line
}

// IsZero reports whether t is the unset reading that precedes warm-up.
func (t CPUTimes) IsZero() bool { return t.Idle == 0 && t.Total == 0 }

// ReadSystemCPU parses the first line of the host stat file.
func (p FS) ReadSystemCPU() (CPUTimes, error) {
	f, err := p.fs.Open(p.path("stat"))
	if err != nil {
		return CPUTimes{}, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return CPUTimes{}, err
		}
		return CPUTimes{}, ErrNoCPU
	}
	return ParseCPULine(sc.Text())
}

// ParseCPULine parses "cpu user nice system idle iowait irq softirq ...".
// Idle is the fourth numeric field; an unparsable field counts as zero.
func ParseCPULine(line string) (CPUTimes, error) {
	fs := strings.Fields(line)
	if len(fs) < 5 || !strings.HasPrefix(fs[0], "cpu") {
		return CPUTimes{}, ErrNoCPU
	}
	var t CPUTimes
	for i, s := range fs[1:] {
		v, _ := strconv.ParseUint(s, 10, 64)
		if i == 3 {
			t.Idle = v
		}
		t.Total += v
	}
	return t, nil
}

// CPUUsage returns host CPU usage in percent between two readings.
// ok is false on warm-up (prev unset) and when total did not advance.
func CPUUsage(prev, curr CPUTimes) (pct float64, ok bool) {
	if prev.IsZero() || curr.Total <= prev.Total {
		return 0, false
	}
	dIdle := util.DeltaU64(curr.Idle, prev.Idle)
	dTotal := curr.Total - prev.Total
	return util.Percent(100 * (1 - float64(dIdle)/float64(dTotal))), true
}

// MemInfo is the host memory summary.
type MemInfo struct {
	Total     types.Bytes
	Available types.Bytes
}

// Used is Total minus Available (not minus MemFree), floored at zero.
func (m MemInfo) Used() types.Bytes {
	if m.Available >= m.Total {
		return 0
	}
	return m.Total - m.Available
}

// ReadMemInfo reads and parses the meminfo file.
func (p FS) ReadMemInfo() (MemInfo, error) {
	b, err := p.readFile(p.path("meminfo"))
	if err != nil {
		return MemInfo{}, err
	}
	return ParseMemInfo(bytes.NewReader(b))
}

// ParseMemInfo picks MemTotal and MemAvailable by label. When a label is
// absent it falls back to the kernel's fixed layout: total on line 1 and
// available on line 3.
func ParseMemInfo(r io.Reader) (MemInfo, error) {
	var (
		total, avail         uint64
		haveTotal, haveAvail bool
		line1, line3         uint64
		haveLine1            bool
		sc                   = bufio.NewScanner(r)
	)
	for n := 1; sc.Scan(); n++ {
		fs := strings.Fields(sc.Text())
		if len(fs) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fs[1], 10, 64)
		if err != nil {
			continue
		}
		switch fs[0] {
		case "MemTotal:":
			total, haveTotal = v, true
		case "MemAvailable:":
			avail, haveAvail = v, true
		}
		switch n {
		case 1:
			line1, haveLine1 = v, true
		case 3:
			line3 = v
		}
	}
	if err := sc.Err(); err != nil {
		return MemInfo{}, err
	}
	if !haveTotal {
		total, haveTotal = line1, haveLine1
	}
	if !haveAvail {
		avail = line3
	}
	if !haveTotal {
		return MemInfo{}, ErrNoMemInfo
	}
	return MemInfo{Total: types.FromKiB(total), Available: types.FromKiB(avail)}, nil
}
