package snapshot

import (
	"iter"
	"slices"

	"github.com/ja7ad/taskman/pkg/model"
)

// ProcessSnapshot maps pid to sample, iterated in ascending pid order.
// It is immutable: accessors return copies, and views such as Filter build
// new snapshots. A nil *ProcessSnapshot is an empty snapshot.
type ProcessSnapshot struct {
	byPID map[uint32]model.ProcessSample
	pids  []uint32
}

// NewProcessSnapshot builds a snapshot from samples. A repeated pid keeps
// the last sample. The samples are copied.
func NewProcessSnapshot(samples []model.ProcessSample) *ProcessSnapshot {
	s := &ProcessSnapshot{byPID: make(map[uint32]model.ProcessSample, len(samples))}
	for _, p := range samples {
		if _, dup := s.byPID[p.PID]; !dup {
			s.pids = append(s.pids, p.PID)
		}
		s.byPID[p.PID] = p.Clone()
	}
	slices.Sort(s.pids)
	return s
}

// Len returns the number of samples.
func (s *ProcessSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pids)
}

// Has reports whether pid is in the snapshot.
func (s *ProcessSnapshot) Has(pid uint32) bool {
	if s == nil {
		return false
	}
	_, ok := s.byPID[pid]
	return ok
}

// Get returns a copy of the sample for pid.
func (s *ProcessSnapshot) Get(pid uint32) (model.ProcessSample, bool) {
	if s == nil {
		return model.ProcessSample{}, false
	}
	p, ok := s.byPID[pid]
	return p.Clone(), ok
}

// PIDs returns the pids in ascending order.
func (s *ProcessSnapshot) PIDs() []uint32 {
	if s == nil {
		return nil
	}
	return slices.Clone(s.pids)
}

// All iterates samples in ascending pid order.
func (s *ProcessSnapshot) All() iter.Seq2[uint32, model.ProcessSample] {
	return func(yield func(uint32, model.ProcessSample) bool) {
		if s == nil {
			return
		}
		for _, pid := range s.pids {
			if !yield(pid, s.byPID[pid].Clone()) {
				return
			}
		}
	}
}

// Samples returns copies of all samples in ascending pid order.
func (s *ProcessSnapshot) Samples() []model.ProcessSample {
	out := make([]model.ProcessSample, 0, s.Len())
	for _, p := range s.All() {
		out = append(out, p)
	}
	return out
}

// Filter returns a new snapshot holding the samples keep accepts.
func (s *ProcessSnapshot) Filter(keep func(model.ProcessSample) bool) *ProcessSnapshot {
	var kept []model.ProcessSample
	for _, p := range s.All() {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	return NewProcessSnapshot(kept)
}

// WithoutOwner drops samples owned by owner, e.g. model.OwnerRoot.
func (s *ProcessSnapshot) WithoutOwner(owner string) *ProcessSnapshot {
	return s.Filter(func(p model.ProcessSample) bool { return p.Owner != owner })
}
