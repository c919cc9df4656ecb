//go:build linux

package sampler

import (
	"log/slog"

	"github.com/benbjohnson/clock"

	"github.com/ja7ad/taskman/pkg/system/proc"
)

type settings struct {
	clk       clock.Clock
	metrics   *Metrics
	log       *slog.Logger
	window    bool
	smoothing float64

	// Monitor only
	fs          *proc.FS
	resolver    proc.Resolver
	hasResolver bool
}

type Option func(*settings)

// WithClock sets the clock driving tickers and timestamps. Tests pass
// clock.NewMock().
func WithClock(c clock.Clock) Option { return func(s *settings) { s.clk = c } }

func WithMetrics(m *Metrics) Option { return func(s *settings) { s.metrics = m } }

func WithLogger(l *slog.Logger) Option { return func(s *settings) { s.log = l } }

// WithWindowCPU makes the process sampler report CPU over the last
// sampling interval instead of the process lifetime.
func WithWindowCPU(on bool) Option { return func(s *settings) { s.window = on } }

// WithCPUSmoothing applies an EMA with alpha to host CPU usage. 0 disables it.
func WithCPUSmoothing(alpha float64) Option { return func(s *settings) { s.smoothing = alpha } }

// WithProcFS makes the Monitor read from fs instead of the configured root.
func WithProcFS(fs proc.FS) Option { return func(s *settings) { s.fs = &fs } }

// WithResolver makes the Monitor use r instead of the configured lookup.
func WithResolver(r proc.Resolver) Option {
	return func(s *settings) { s.resolver, s.hasResolver = r, true }
}

func newSettings(opts []Option) settings {
	s := settings{clk: clock.New(), log: slog.Default()}
	for _, o := range opts {
		o(&s)
	}
	return s
}
