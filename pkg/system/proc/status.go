//go:build linux

package proc

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/ja7ad/taskman/pkg/types"
)

// Status is the subset of <pid>/status the samplers consume.
type Status struct {
	Name  string
	State string      // first token of State:, e.g. "S"
	RSS   types.Bytes // VmRSS; zero for kernel threads
	PPid  uint32
}

// ReadStatus reads and parses <pid>/status.
func (p FS) ReadStatus(pid uint32) (Status, error) {
	b, err := p.readFile(p.pidPath(pid, "status"))
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(bytes.NewReader(b))
}

// ParseStatus parses "Key:\tvalue" lines. Key order does not matter and
// unknown keys are ignored. A malformed number leaves that field at zero.
// It fails only when none of the recognized keys is present.
func ParseStatus(r io.Reader) (Status, error) {
	var (
		st   Status
		seen bool
		sc   = bufio.NewScanner(r)
	)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch key {
		case "Name":
			st.Name = val
		case "State":
			if f := strings.Fields(val); len(f) > 0 {
				st.State = f[0]
			}
		case "VmRSS":
			if f := strings.Fields(val); len(f) > 0 {
				if kb, err := strconv.ParseUint(f[0], 10, 64); err == nil {
					st.RSS = types.FromKiB(kb)
				}
			}
		case "PPid":
			if v, err := strconv.ParseUint(val, 10, 32); err == nil {
				st.PPid = uint32(v)
			}
		default:
			continue
		}
		seen = true
	}
	if err := sc.Err(); err != nil {
		return st, err
	}
	if !seen {
		return st, ErrNoStatus
	}
	return st, nil
}
