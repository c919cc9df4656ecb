//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/sampler"
	"github.com/ja7ad/taskman/pkg/snapshot"
	"github.com/ja7ad/taskman/pkg/system/cgroup"
	"github.com/ja7ad/taskman/pkg/system/proc"
	"github.com/ja7ad/taskman/pkg/tree"
)

// visible hides root-owned processes unless all is set.
func visible(snap *snapshot.ProcessSnapshot, all bool) *snapshot.ProcessSnapshot {
	if all {
		return snap
	}
	return snap.WithoutOwner(model.OwnerRoot)
}

func newListCmd(g *globals) *cobra.Command {
	var (
		all    bool
		sortBy string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the process table once",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := g.monitor(cmd)
			if err != nil {
				return err
			}
			m.SampleProcesses(cmd.Context())
			samples := visible(m.Processes(), all).Samples()
			if err := sortSamples(samples, sortBy); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return renderTable(out, samples, newStyles(out, !g.noColor))
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include root-owned processes")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", sortPID, "sort by pid, cpu or mem")
	return cmd
}

func newTreeCmd(g *globals) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the process hierarchy once",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := g.monitor(cmd)
			if err != nil {
				return err
			}
			m.SampleProcesses(cmd.Context())
			rows := tree.Flatten(tree.Build(visible(m.Processes(), all)))
			out := cmd.OutOrStdout()
			return renderTree(out, rows, newStyles(out, !g.noColor))
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include root-owned processes")
	return cmd
}

func newHostCmd(g *globals) *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Print host CPU and memory usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, cfg, err := g.monitor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			m.SampleHost(ctx)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			m.SampleHost(ctx)
			out := cmd.OutOrStdout()
			st := newStyles(out, !g.noColor)
			if err := renderHost(out, m.CPU(), m.Memory(), st); err != nil {
				return err
			}
			if info, err := cgroup.Detect(proc.NewFS(cfg.ProcRoot)); err == nil {
				fmt.Fprintln(out, st.muted.Render(info.String()))
			} else {
				g.log.Debug("detect cgroup", "err", err)
			}
			return nil
		},
	}
	cmd.Flags().DurationVarP(&wait, "wait", "w", 500*time.Millisecond, "gap between the two CPU readings")
	return cmd
}

func newWatchCmd(g *globals) *cobra.Command {
	var (
		all         bool
		sortBy      string
		top         int
		refresh     time.Duration
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sample continuously and print a refreshed view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sortSamples(nil, sortBy); err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			m, cfg, err := g.monitor(cmd, sampler.WithMetrics(sampler.NewMetrics(reg)))
			if err != nil {
				return err
			}
			if refresh <= 0 {
				refresh = cfg.CPUInterval
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if metricsAddr != "" {
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						g.log.Error("metrics server", "addr", metricsAddr, "err", err)
						cancel()
					}
				}()
				defer func() {
					sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer scancel()
					_ = srv.Shutdown(sctx)
				}()
				g.log.Info("serving metrics", "addr", metricsAddr)
			}

			m.Start(ctx)
			defer func() {
				cancel()
				m.Wait()
			}()

			out := cmd.OutOrStdout()
			st := newStyles(out, !g.noColor)
			t := time.NewTicker(refresh)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					if err := printFrame(out, m, all, sortBy, top, st); err != nil {
						return err
					}
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include root-owned processes")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", sortCPU, "sort by pid, cpu or mem")
	cmd.Flags().IntVarP(&top, "top", "n", 20, "rows to print (0 = all)")
	cmd.Flags().DurationVarP(&refresh, "refresh", "r", 0, "print interval (default cpu_interval)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

func printFrame(w io.Writer, m *sampler.Monitor, all bool, sortBy string, top int, st styles) error {
	samples := visible(m.Processes(), all).Samples()
	if err := sortSamples(samples, sortBy); err != nil {
		return err
	}
	if top > 0 && len(samples) > top {
		samples = samples[:top]
	}
	fmt.Fprintf(w, "\n%s\n", st.muted.Render(time.Now().Format("2006-01-02 15:04:05")))
	if err := renderHost(w, m.CPU(), m.Memory(), st); err != nil {
		return err
	}
	return renderTable(w, samples, st)
}
