//go:build linux

package sampler

import (
	"context"

	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/snapshot"
	"github.com/ja7ad/taskman/pkg/system/proc"
	"github.com/ja7ad/taskman/pkg/system/util"
)

// CPUSource reads the aggregate host CPU counters. proc.FS implements it.
type CPUSource interface {
	ReadSystemCPU() (proc.CPUTimes, error)
}

// HostCPUSampler publishes host CPU usage from consecutive counter readings.
type HostCPUSampler struct {
	settings
	src   CPUSource
	store *snapshot.Store[model.HostCPUSample]
	prev  proc.CPUTimes
	ema   *util.EMA
}

func NewHostCPUSampler(src CPUSource, opts ...Option) *HostCPUSampler {
	s := &HostCPUSampler{
		settings: newSettings(opts),
		src:      src,
		store:    snapshot.NewStore(model.HostCPUSample{}),
	}
	if s.smoothing > 0 {
		s.ema = util.NewEMA(s.smoothing)
	}
	return s
}

// Latest returns the last published sample. It is not Valid until two
// readings have succeeded.
func (s *HostCPUSampler) Latest() model.HostCPUSample { return s.store.Load() }

// Cycle reads the counters and publishes usage since the previous reading.
// A failed read keeps the previous sample and the previous counters.
func (s *HostCPUSampler) Cycle(context.Context) {
	start := s.clk.Now()

	curr, err := s.src.ReadSystemCPU()
	if err != nil {
		s.log.Warn("read host cpu", "err", err)
		s.metrics.failure(FamilyCPU)
		return
	}
	warmup := s.prev.IsZero()
	pct, ok := proc.CPUUsage(s.prev, curr)
	s.prev = curr

	switch {
	case ok:
		if s.ema != nil {
			pct = s.ema.Next(pct)
		}
		s.store.Publish(model.HostCPUSample{UsagePercent: pct, Valid: true})
	case warmup:
		s.store.Publish(model.HostCPUSample{})
	default:
		s.log.Debug("host cpu counters did not advance")
	}
	s.metrics.cycle(FamilyCPU, s.clk.Since(start))
}

// MemorySource reads host memory. proc.FS implements it.
type MemorySource interface {
	ReadMemInfo() (proc.MemInfo, error)
}

// HostMemorySampler publishes host memory totals.
type HostMemorySampler struct {
	settings
	src   MemorySource
	store *snapshot.Store[model.HostMemorySample]
}

func NewHostMemorySampler(src MemorySource, opts ...Option) *HostMemorySampler {
	return &HostMemorySampler{
		settings: newSettings(opts),
		src:      src,
		store:    snapshot.NewStore(model.HostMemorySample{}),
	}
}

func (s *HostMemorySampler) Latest() model.HostMemorySample { return s.store.Load() }

// Cycle reads memory info and publishes it. A failed read keeps the
// previous sample.
func (s *HostMemorySampler) Cycle(context.Context) {
	start := s.clk.Now()

	mi, err := s.src.ReadMemInfo()
	if err != nil {
		s.log.Warn("read host memory", "err", err)
		s.metrics.failure(FamilyMemory)
		return
	}
	s.store.Publish(model.HostMemorySample{
		TotalGB: mi.Total.GB(),
		UsedGB:  mi.Used().GB(),
		Valid:   true,
	})
	s.metrics.cycle(FamilyMemory, s.clk.Since(start))
}
