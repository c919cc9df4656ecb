//go:build linux

package sampler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ja7ad/taskman/pkg/config"
	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/snapshot"
	"github.com/ja7ad/taskman/pkg/system/lookup"
	"github.com/ja7ad/taskman/pkg/system/proc"
)

// Monitor owns the three samplers and runs one worker per family.
// The workers share nothing but their own stores.
type Monitor struct {
	cfg config.Config
	set settings

	processes *ProcessSampler
	cpu       *HostCPUSampler
	memory    *HostMemorySampler

	wg sync.WaitGroup
}

// NewMonitor wires samplers for cfg. Options apply to every sampler.
func NewMonitor(cfg config.Config, opts ...Option) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	set := newSettings(opts)

	fs := proc.NewFS(cfg.ProcRoot)
	if set.fs != nil {
		fs = *set.fs
	}

	resolver := set.resolver
	if !set.hasResolver {
		r, err := lookup.New(cfg.Lookup,
			lookup.WithElevate(cfg.Elevate...),
			lookup.WithTimeout(cfg.LookupTimeout),
			lookup.WithProcRoot(fs.Root()),
		)
		if err != nil {
			return nil, fmt.Errorf("monitor: %w", err)
		}
		if r != nil {
			resolver = r
		}
	}

	readerOpts := []proc.Option{proc.WithLogger(set.log)}
	if resolver != nil {
		readerOpts = append(readerOpts, proc.WithResolver(resolver))
	}
	reader := proc.NewReader(fs, readerOpts...)

	sopts := append(opts[:len(opts):len(opts)],
		WithWindowCPU(cfg.CPUMode == config.CPUModeWindow),
		WithCPUSmoothing(cfg.CPUSmoothing),
	)
	return &Monitor{
		cfg:       cfg,
		set:       set,
		processes: NewProcessSampler(reader, sopts...),
		cpu:       NewHostCPUSampler(fs, sopts...),
		memory:    NewHostMemorySampler(fs, sopts...),
	}, nil
}

// Start launches the three workers. They stop when ctx is done; Wait
// blocks until they have.
func (m *Monitor) Start(ctx context.Context) {
	m.spawn(ctx, m.cfg.ProcessInterval, m.processes.Cycle)
	m.spawn(ctx, m.cfg.CPUInterval, m.cpu.Cycle)
	m.spawn(ctx, m.cfg.MemoryInterval, m.memory.Cycle)
}

func (m *Monitor) spawn(ctx context.Context, every time.Duration, cycle func(context.Context)) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		Run(ctx, m.set.clk, every, cycle)
	}()
}

// SampleProcesses runs one process cycle in the caller's goroutine.
func (m *Monitor) SampleProcesses(ctx context.Context) { m.processes.Cycle(ctx) }

// SampleHost runs one host CPU and one host memory cycle. CPU usage needs
// two calls spaced apart before it is Valid.
func (m *Monitor) SampleHost(ctx context.Context) {
	m.cpu.Cycle(ctx)
	m.memory.Cycle(ctx)
}

// Wait blocks until every worker has returned.
func (m *Monitor) Wait() { m.wg.Wait() }

// Processes returns the latest process table.
func (m *Monitor) Processes() *snapshot.ProcessSnapshot { return m.processes.Latest() }

// CPU returns the latest host CPU sample.
func (m *Monitor) CPU() model.HostCPUSample { return m.cpu.Latest() }

// Memory returns the latest host memory sample.
func (m *Monitor) Memory() model.HostMemorySample { return m.memory.Latest() }
