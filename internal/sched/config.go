package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors schedsim.yml
type Config struct {
	TickMS        int    `yaml:"tick_ms" json:"tick_ms"`               // replay speed, 5 (by default)
	Quantum       int    `yaml:"quantum" json:"quantum"`               // RR time quantum, 4 (by default)
	Levels        []int  `yaml:"levels" json:"levels"`                 // MLFQ quanta, highest priority first
	BoostInterval int    `yaml:"boost_interval" json:"boost_interval"` // MLFQ boost period in ticks
	Seed          uint64 `yaml:"seed" json:"seed"`                     // 0 picks a seed per run
	MaxTicks      int    `yaml:"max_ticks" json:"max_ticks"`           // largest horizon a run accepts
	STCFSpans     bool   `yaml:"stcf_spans" json:"stcf_spans"`         // one STCF slice per task
	LogLevel      string `yaml:"log_level" json:"log_level"`
	LogFormat     string `yaml:"log_format" json:"log_format"`
}

// DefaultConfig is used when no config file is present.
func DefaultConfig() Config {
	return Config{
		TickMS:        5,
		Quantum:       4,
		Levels:        []int{2, 4, 8},
		BoostInterval: 50,
		MaxTicks:      1_000_000,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads YAML and overrides defaults; empty path or a missing file =
// defaults only. Unset (zero) fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Merge(file)
	return cfg, nil
}

// Merge copies every non-zero field of o into c.
func (c *Config) Merge(o Config) {
	if o.TickMS != 0 {
		c.TickMS = o.TickMS
	}
	if o.Quantum != 0 {
		c.Quantum = o.Quantum
	}
	if o.Levels != nil {
		c.Levels = append([]int(nil), o.Levels...)
	}
	if o.BoostInterval != 0 {
		c.BoostInterval = o.BoostInterval
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.MaxTicks != 0 {
		c.MaxTicks = o.MaxTicks
	}
	if o.STCFSpans {
		c.STCFSpans = true
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
}

// Validate rejects values no policy can run with.
func (c Config) Validate() error {
	if c.TickMS <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalidConfiguration, c.TickMS)
	}
	if c.MaxTicks <= 0 || c.MaxTicks > MaxTick {
		return fmt.Errorf("%w: max_ticks must be in [1, %d], got %d", ErrInvalidConfiguration, MaxTick, c.MaxTicks)
	}
	if err := (&RoundRobin{Quantum: c.Quantum}).validate(); err != nil {
		return err
	}
	return validateLevels(c.Levels, c.BoostInterval)
}
