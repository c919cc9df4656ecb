//go:build linux

package sampler

import (
	"context"
	"time"

	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/snapshot"
	"github.com/ja7ad/taskman/pkg/system/proc"
	"github.com/ja7ad/taskman/pkg/system/util"
)

// ProcessSource enumerates and reads processes. *proc.Reader implements it.
type ProcessSource interface {
	ListPIDs() ([]uint32, error)
	ReadProcess(ctx context.Context, pid uint32) model.ProcessSample
	ClockTicks() int64
}

// ProcessSampler publishes a full process table each cycle.
type ProcessSampler struct {
	settings
	src   ProcessSource
	store *snapshot.Store[*snapshot.ProcessSnapshot]

	// window mode: counters seen last cycle, private to the worker
	prev map[uint32]tickMark
}

type tickMark struct {
	ticks, start uint64
	at           time.Time
}

func NewProcessSampler(src ProcessSource, opts ...Option) *ProcessSampler {
	return &ProcessSampler{
		settings: newSettings(opts),
		src:      src,
		store:    snapshot.NewStore(snapshot.NewProcessSnapshot(nil)),
		prev:     make(map[uint32]tickMark),
	}
}

// Latest returns the last published snapshot.
func (s *ProcessSampler) Latest() *snapshot.ProcessSnapshot { return s.store.Load() }

// Cycle enumerates, reads every pid and publishes the new snapshot.
// An enumeration failure publishes an empty snapshot. A cancelled context
// abandons the cycle without publishing.
func (s *ProcessSampler) Cycle(ctx context.Context) {
	start := s.clk.Now()

	pids, err := s.src.ListPIDs()
	if err != nil {
		s.log.Warn("list pids", "err", err)
		s.metrics.failure(FamilyProcess)
		pids = nil
	}

	samples := make([]model.ProcessSample, 0, len(pids))
	for _, pid := range pids {
		if ctx.Err() != nil {
			return
		}
		samples = append(samples, s.src.ReadProcess(ctx, pid))
	}
	if s.window {
		s.applyWindow(samples, start)
	}

	snap := snapshot.NewProcessSnapshot(samples)
	s.store.Publish(snap)
	s.metrics.setProcesses(snap.Len())
	s.metrics.cycle(FamilyProcess, s.clk.Since(start))
}

// applyWindow replaces lifetime CPU with CPU over the time since the
// previous cycle for pids seen then with the same start tick.
func (s *ProcessSampler) applyWindow(samples []model.ProcessSample, now time.Time) {
	hz := s.src.ClockTicks()
	next := make(map[uint32]tickMark, len(samples))
	for i := range samples {
		p := &samples[i]
		if !p.Has(model.FieldCPU) {
			continue
		}
		if m, ok := s.prev[p.PID]; ok && m.start == p.StartTicks {
			if dt := now.Sub(m.at).Seconds(); dt > 0 {
				p.CPUPercent = proc.WindowCPUPercent(util.DeltaU64(p.CPUTicks, m.ticks), dt, hz)
			}
		}
		next[p.PID] = tickMark{ticks: p.CPUTicks, start: p.StartTicks, at: now}
	}
	s.prev = next
}
