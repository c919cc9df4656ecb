// Package model holds the value types published by the samplers.
//
// Every value here is created fresh each sampling cycle and never mutated
// after it is handed to a snapshot store.
package model

import (
	"slices"
	"strings"
)

const (
	// OwnerUnknown is reported when the owner lookup output has an unexpected shape.
	OwnerUnknown = "N/A"
	// OwnerRoot is reported when the owner lookup is denied outright.
	OwnerRoot = "root"
	// PathNotFound is reported when the executable path cannot be resolved.
	PathNotFound = "Not found!"
)

// Field identifies one independently read part of a ProcessSample.
type Field uint8

const (
	FieldStatus   Field = 1 << iota // name, state, memory, parent
	FieldCPU                        // utime/stime/start ticks and uptime
	FieldOwner                      // owner lookup
	FieldPath                       // executable path lookup
	FieldChildren                   // kernel children list
)

// AllFields is the set of every sub-read.
const AllFields = FieldStatus | FieldCPU | FieldOwner | FieldPath | FieldChildren

func (f Field) String() string {
	names := []string{}
	for _, x := range []struct {
		f Field
		n string
	}{
		{FieldStatus, "status"},
		{FieldCPU, "cpu"},
		{FieldOwner, "owner"},
		{FieldPath, "path"},
		{FieldChildren, "children"},
	} {
		if f&x.f != 0 {
			names = append(names, x.n)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ProcessSample is one process's observed state at a sampling instant.
type ProcessSample struct {
	PID    uint32
	Name   string
	Status string
	Owner  string

	// CPUPercent is CPU time over the whole lifetime of the process unless
	// the sampler runs in window mode.
	CPUPercent float64
	MemoryMB   float64

	ExecutablePath string
	ParentPID      uint32
	ChildrenPIDs   []uint32

	// Raw counters behind CPUPercent, in clock ticks.
	CPUTicks   uint64
	StartTicks uint64

	// Missing marks the sub-reads that fell back to their defaults.
	Missing Field
}

// NewProcessSample returns a sample for pid with every field at its default
// and every sub-read marked missing.
func NewProcessSample(pid uint32) ProcessSample {
	return ProcessSample{
		PID:            pid,
		Owner:          OwnerUnknown,
		ExecutablePath: PathNotFound,
		Missing:        AllFields,
	}
}

// Complete reports whether every sub-read succeeded.
func (p ProcessSample) Complete() bool { return p.Missing == 0 }

// Has reports whether field f was read successfully.
func (p ProcessSample) Has(f Field) bool { return p.Missing&f == 0 }

// IsRoot reports whether the sample names itself as parent.
func (p ProcessSample) IsRoot() bool { return p.ParentPID == p.PID }

// Clone returns a copy that shares no memory with p.
func (p ProcessSample) Clone() ProcessSample {
	p.ChildrenPIDs = slices.Clone(p.ChildrenPIDs)
	return p
}

// HostCPUSample is host-wide CPU utilization over the last sampling interval.
type HostCPUSample struct {
	UsagePercent float64
	// Valid is false until two consecutive counter readings exist.
	Valid bool
}

// HostMemorySample is host memory in GiB.
type HostMemorySample struct {
	TotalGB float64
	UsedGB  float64
	Valid   bool
}

// UsedFraction returns UsedGB/TotalGB, or 0 for an empty sample.
func (m HostMemorySample) UsedFraction() float64 {
	if m.TotalGB <= 0 {
		return 0
	}
	return m.UsedGB / m.TotalGB
}
