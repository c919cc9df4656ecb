//go:build linux

package proc

import (
	"strconv"
	"strings"
)

// ReadChildren reads <pid>/task/<pid>/children, the live list of direct
// children of the main thread, in kernel order. Tokens that are not pids
// are returned in bad instead of failing the read.
func (p FS) ReadChildren(pid uint32) (children []uint32, bad []string, err error) {
	id := strconv.FormatUint(uint64(pid), 10)
	b, err := p.readFile(p.path(id, "task", id, "children"))
	if err != nil {
		return nil, nil, err
	}
	children, bad = ParseChildren(string(b))
	return children, bad, nil
}

// ParseChildren splits a children list. Empty content means no children.
func ParseChildren(s string) (children []uint32, bad []string) {
	for _, tok := range strings.Fields(s) {
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			bad = append(bad, tok)
			continue
		}
		children = append(children, uint32(v))
	}
	return children, bad
}
