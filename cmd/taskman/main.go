//go:build linux

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ja7ad/taskman/pkg/config"
	"github.com/ja7ad/taskman/pkg/sampler"
)

type globals struct {
	configPath string
	procRoot   string
	lookup     string
	cpuMode    string
	logLevel   string
	noColor    bool

	log *slog.Logger
}

func main() {
	var g globals
	root := newRootCmd(&g)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
	stop()
}

func newRootCmd(g *globals) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskman",
		Short: "Linux process and host resource sampler",
		Long: `taskman samples the Linux process table and host CPU and memory from /proc.
Each family is refreshed by its own worker and read without blocking.

Examples:
  taskman list --sort cpu
  taskman tree --all
  taskman watch --metrics-addr :9100`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setupLogger()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&g.procRoot, "proc-root", "", "procfs mount point (default /proc)")
	pf.StringVar(&g.lookup, "lookup", "", "owner/path lookup: shell, native or none")
	pf.StringVar(&g.cpuMode, "cpu-mode", "", "per-process CPU: lifetime or window")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newListCmd(g), newTreeCmd(g), newHostCmd(g), newWatchCmd(g))
	return root
}

func (g *globals) setupLogger() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(g.logLevel))); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	g.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(g.log)
	return nil
}

// config loads the file then applies the flags that were set.
func (g *globals) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("proc-root") {
		cfg.ProcRoot = g.procRoot
	}
	if flags.Changed("lookup") {
		cfg.Lookup = g.lookup
	}
	if flags.Changed("cpu-mode") {
		cfg.CPUMode = g.cpuMode
	}
	return cfg, cfg.Validate()
}

func (g *globals) monitor(cmd *cobra.Command, opts ...sampler.Option) (*sampler.Monitor, config.Config, error) {
	cfg, err := g.config(cmd)
	if err != nil {
		return nil, cfg, err
	}
	m, err := sampler.NewMonitor(cfg, append(opts, sampler.WithLogger(g.log))...)
	return m, cfg, err
}
