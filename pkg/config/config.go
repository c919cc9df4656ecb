// Package config holds the sampler settings and their YAML file form.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CPU modes for per-process CPU percent.
const (
	CPUModeLifetime = "lifetime"
	CPUModeWindow   = "window"
)

// Lookup modes for owner and executable path.
const (
	LookupShell  = "shell"
	LookupNative = "native"
	LookupNone   = "none"
)

// Config is the full sampler configuration.
type Config struct {
	ProcRoot string `yaml:"proc_root"`

	ProcessInterval time.Duration `yaml:"process_interval"`
	CPUInterval     time.Duration `yaml:"cpu_interval"`
	MemoryInterval  time.Duration `yaml:"memory_interval"`

	// CPUMode selects lifetime-average or windowed per-process CPU.
	CPUMode string `yaml:"cpu_mode"`
	// CPUSmoothing is the EMA alpha for host CPU usage; 0 disables it.
	CPUSmoothing float64 `yaml:"cpu_smoothing"`

	Lookup        string        `yaml:"lookup"`
	Elevate       []string      `yaml:"elevate"`
	LookupTimeout time.Duration `yaml:"lookup_timeout"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ProcRoot:        "/proc",
		ProcessInterval: 10 * time.Second,
		CPUInterval:     2 * time.Second,
		MemoryInterval:  2 * time.Second,
		CPUMode:         CPUModeLifetime,
		Lookup:          LookupShell,
		Elevate:         []string{"sudo", "-n"},
		LookupTimeout:   2 * time.Second,
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var (
	ErrInterval = errors.New("config: intervals must be > 0")
	ErrCPUMode  = errors.New("config: cpu_mode must be lifetime or window")
	ErrLookup   = errors.New("config: lookup must be shell, native or none")
)

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.ProcRoot == "" {
		errs = append(errs, errors.New("config: proc_root is empty"))
	}
	if c.ProcessInterval <= 0 || c.CPUInterval <= 0 || c.MemoryInterval <= 0 {
		errs = append(errs, ErrInterval)
	}
	switch c.CPUMode {
	case CPUModeLifetime, CPUModeWindow:
	default:
		errs = append(errs, ErrCPUMode)
	}
	if c.CPUSmoothing < 0 || c.CPUSmoothing > 1 {
		errs = append(errs, errors.New("config: cpu_smoothing must be in [0,1]"))
	}
	switch c.Lookup {
	case LookupShell, LookupNative, LookupNone:
	default:
		errs = append(errs, ErrLookup)
	}
	if c.LookupTimeout < 0 {
		errs = append(errs, errors.New("config: lookup_timeout must be >= 0"))
	}
	return errors.Join(errs...)
}
