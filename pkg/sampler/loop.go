//go:build linux

package sampler

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Run calls cycle once right away and then on every tick of clk until ctx
// is done. Cycles never overlap: a tick that arrives while a cycle is
// running is delivered after it.
func Run(ctx context.Context, clk clock.Clock, interval time.Duration, cycle func(context.Context)) {
	t := clk.Ticker(interval)
	defer t.Stop()

	cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ctx.Err() != nil {
				return
			}
			cycle(ctx)
		}
	}
}
