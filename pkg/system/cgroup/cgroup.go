//go:build linux

// Package cgroup reports which cgroup hierarchies the host mounts.
package cgroup

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ja7ad/taskman/pkg/system/proc"
)

type Version int

const (
	Unsupported Version = iota // no cgroup mounts
	V1                         // legacy multi-hierarchy cgroup v1
	V2                         // unified cgroup v2
	Hybrid                     // both v1 and v2 present
)

func (v Version) String() string {
	switch v {
	case V1:
		return "cgroup v1"
	case V2:
		return "cgroup v2"
	case Hybrid:
		return "cgroup hybrid"
	default:
		return "unsupported"
	}
}

// Info is the detected version and the mount points per hierarchy.
type Info struct {
	Version Version
	V1      []string
	V2      []string
}

func (i Info) String() string {
	switch i.Version {
	case Hybrid:
		return fmt.Sprintf("cgroup2 on %s; cgroup v1 on %s", strings.Join(i.V2, ","), strings.Join(i.V1, ","))
	case V2:
		return "cgroup2 on " + strings.Join(i.V2, ",")
	case V1:
		return "cgroup v1 on " + strings.Join(i.V1, ",")
	default:
		return "no cgroup mounts found"
	}
}

// Detect parses <root>/self/mountinfo.
func Detect(fs proc.FS) (Info, error) {
	f, err := fs.Open("self", "mountinfo")
	if err != nil {
		return Info{}, fmt.Errorf("open mountinfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f)
}

// Parse reads mountinfo lines. Each has the form
// <fields> - <fstype> <source> <superopts>; the mount point is the fifth
// pre-separator field (man 5 proc).
func Parse(r io.Reader) (Info, error) {
	var (
		info Info
		sc   = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line := sc.Text()
		i := strings.LastIndex(line, " - ")
		if i < 0 {
			continue
		}
		tail := strings.Fields(line[i+3:])
		pre := strings.Fields(line[:i])
		if len(tail) < 1 || len(pre) < 5 {
			continue
		}
		switch tail[0] {
		case "cgroup2":
			info.V2 = append(info.V2, pre[4])
		case "cgroup":
			info.V1 = append(info.V1, pre[4])
		}
	}
	if err := sc.Err(); err != nil {
		return Info{}, fmt.Errorf("scan mountinfo: %w", err)
	}

	switch {
	case len(info.V1) > 0 && len(info.V2) > 0:
		info.Version = Hybrid
	case len(info.V2) > 0:
		info.Version = V2
	case len(info.V1) > 0:
		info.Version = V1
	}
	return info, nil
}
