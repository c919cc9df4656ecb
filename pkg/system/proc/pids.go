//go:build linux

package proc

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/afero"
)

// ListPIDs returns the numeric entries of the mount root in ascending order.
// Non-numeric entries (self, sys, meminfo, ...) are skipped.
func (p FS) ListPIDs() ([]uint32, error) {
	entries, err := afero.ReadDir(p.fs, p.root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", p.root, err)
	}
	pids := make([]uint32, 0, len(entries))
	for _, e := range entries {
		pid, err := strconv.ParseUint(e.Name(), 10, 32)
		if err != nil {
			continue
		}
		pids = append(pids, uint32(pid))
	}
	slices.Sort(pids)
	return pids, nil
}
