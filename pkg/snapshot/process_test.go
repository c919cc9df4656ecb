package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/taskman/pkg/model"
)

func samples() []model.ProcessSample {
	return []model.ProcessSample{
		{PID: 30, Owner: "alice", ParentPID: 1},
		{PID: 1, Owner: model.OwnerRoot, ChildrenPIDs: []uint32{30, 7}},
		{PID: 7, Owner: model.OwnerRoot, ParentPID: 1},
	}
}

func TestProcessSnapshot_OrderedByPID(t *testing.T) {
	s := NewProcessSnapshot(samples())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []uint32{1, 7, 30}, s.PIDs())

	var seen []uint32
	for pid, p := range s.All() {
		assert.Equal(t, pid, p.PID)
		seen = append(seen, pid)
	}
	assert.Equal(t, []uint32{1, 7, 30}, seen)

	got := s.Samples()
	require.Len(t, got, 3)
	assert.Equal(t, uint32(30), got[2].PID)
}

func TestProcessSnapshot_DuplicateKeepsLast(t *testing.T) {
	s := NewProcessSnapshot([]model.ProcessSample{{PID: 5, Name: "a"}, {PID: 5, Name: "b"}})
	assert.Equal(t, 1, s.Len())
	p, ok := s.Get(5)
	require.True(t, ok)
	assert.Equal(t, "b", p.Name)
}

func TestProcessSnapshot_Immutable(t *testing.T) {
	in := samples()
	s := NewProcessSnapshot(in)

	in[1].ChildrenPIDs[0] = 999
	p, _ := s.Get(1)
	assert.Equal(t, []uint32{30, 7}, p.ChildrenPIDs, "input slice is copied")

	p.ChildrenPIDs[0] = 999
	p2, _ := s.Get(1)
	assert.Equal(t, []uint32{30, 7}, p2.ChildrenPIDs, "returned sample is a copy")

	pids := s.PIDs()
	pids[0] = 999
	assert.Equal(t, []uint32{1, 7, 30}, s.PIDs())
}

func TestProcessSnapshot_Nil(t *testing.T) {
	var s *ProcessSnapshot
	assert.Zero(t, s.Len())
	assert.False(t, s.Has(1))
	_, ok := s.Get(1)
	assert.False(t, ok)
	assert.Empty(t, s.PIDs())
	assert.Empty(t, s.Samples())
	assert.Zero(t, s.Filter(func(model.ProcessSample) bool { return true }).Len())
}

func TestProcessSnapshot_WithoutOwner(t *testing.T) {
	s := NewProcessSnapshot(samples())
	view := s.WithoutOwner(model.OwnerRoot)

	assert.Equal(t, []uint32{30}, view.PIDs())
	assert.True(t, s.Has(1), "the source snapshot is untouched")
	assert.False(t, view.Has(1))
}
