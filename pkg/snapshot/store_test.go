package snapshot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/taskman/pkg/model"
)

func TestStore_PublishLoad(t *testing.T) {
	s := NewStore(model.HostCPUSample{})
	assert.False(t, s.Load().Valid)

	s.Publish(model.HostCPUSample{UsagePercent: 12.5, Valid: true})
	assert.Equal(t, model.HostCPUSample{UsagePercent: 12.5, Valid: true}, s.Load())
}

func TestStore_ZeroValue(t *testing.T) {
	var s Store[model.HostMemorySample]
	assert.Equal(t, model.HostMemorySample{}, s.Load())
}

func TestStore_ReadersSeeWholeValues(t *testing.T) {
	type pair struct{ total, used, gen uint64 }
	s := NewStore(pair{})

	const writes = 5000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(1); i <= writes; i++ {
			s.Publish(pair{total: i * 2, used: i, gen: i})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint64
			for i := 0; i < writes; i++ {
				v := s.Load()
				if v.total != 2*v.gen || v.used != v.gen {
					t.Errorf("torn read: %+v", v)
					return
				}
				if v.gen < last {
					t.Errorf("went backwards: %d after %d", v.gen, last)
					return
				}
				last = v.gen
			}
		}()
	}
	wg.Wait()
	require.Equal(t, uint64(writes), s.Load().gen)
}

func TestStore_ProcessSnapshotSwap(t *testing.T) {
	old := NewProcessSnapshot([]model.ProcessSample{{PID: 1}, {PID: 2}})
	s := NewStore(old)

	held := s.Load()
	s.Publish(NewProcessSnapshot([]model.ProcessSample{{PID: 3}}))

	assert.Equal(t, []uint32{1, 2}, held.PIDs(), "a held reference stays unchanged")
	assert.Equal(t, []uint32{3}, s.Load().PIDs())
}
