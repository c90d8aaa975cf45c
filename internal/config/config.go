// Package config loads the lines file: a [defaults] table plus one [[lines]]
// entry per circuit. Per-line values win over [defaults], which win over the
// built-in defaults. The rest of the program only ever sees fully-resolved
// LineConfig values.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/hamed0406/linewatch/internal/domain"
)

const (
	DefaultPingCount          = 5
	DefaultPingTimeoutMS      = 1000
	DefaultTracerouteMaxHops  = 30
	DefaultLossAlertThreshold = 1.0
)

type fileConfig struct {
	Defaults lineDefaults `mapstructure:"defaults"`
	Lines    []lineEntry  `mapstructure:"lines"`
}

type lineDefaults struct {
	PingCount          *int     `mapstructure:"ping_count"`
	PingTimeoutMS      *int     `mapstructure:"ping_timeout_ms"`
	TracerouteMaxHops  *int     `mapstructure:"traceroute_max_hops"`
	LossAlertThreshold *float64 `mapstructure:"packet_loss_alert_threshold"`
}

type lineEntry struct {
	Name               string   `mapstructure:"name"`
	Target             string   `mapstructure:"target"`
	PingCount          *int     `mapstructure:"ping_count"`
	PingTimeoutMS      *int     `mapstructure:"ping_timeout_ms"`
	TracerouteMaxHops  *int     `mapstructure:"traceroute_max_hops"`
	LossAlertThreshold *float64 `mapstructure:"packet_loss_alert_threshold"`
}

// Load reads and resolves the TOML lines file at path.
func Load(path string) ([]domain.LineConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return resolve(raw, path)
}

func resolve(raw fileConfig, path string) ([]domain.LineConfig, error) {
	if len(raw.Lines) == 0 {
		return nil, fmt.Errorf("no lines defined in config %s", path)
	}

	seen := make(map[string]bool, len(raw.Lines))
	lines := make([]domain.LineConfig, 0, len(raw.Lines))
	for i, entry := range raw.Lines {
		if entry.Name == "" {
			return nil, fmt.Errorf("line %d: name is required", i+1)
		}
		if entry.Target == "" {
			return nil, fmt.Errorf("line %q: target is required", entry.Name)
		}
		if seen[entry.Name] {
			return nil, fmt.Errorf("line %q: duplicate name", entry.Name)
		}
		seen[entry.Name] = true

		line := domain.LineConfig{
			Name:               entry.Name,
			Target:             entry.Target,
			PingCount:          pick(entry.PingCount, raw.Defaults.PingCount, DefaultPingCount),
			PingTimeoutMS:      pick(entry.PingTimeoutMS, raw.Defaults.PingTimeoutMS, DefaultPingTimeoutMS),
			TracerouteMaxHops:  pick(entry.TracerouteMaxHops, raw.Defaults.TracerouteMaxHops, DefaultTracerouteMaxHops),
			LossAlertThreshold: pick(entry.LossAlertThreshold, raw.Defaults.LossAlertThreshold, DefaultLossAlertThreshold),
		}
		if err := validate(line); err != nil {
			return nil, fmt.Errorf("line %q: %w", entry.Name, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func validate(line domain.LineConfig) error {
	if line.PingCount <= 0 {
		return fmt.Errorf("ping_count must be positive, got %d", line.PingCount)
	}
	if line.PingTimeoutMS <= 0 {
		return fmt.Errorf("ping_timeout_ms must be positive, got %d", line.PingTimeoutMS)
	}
	if line.TracerouteMaxHops <= 0 {
		return fmt.Errorf("traceroute_max_hops must be positive, got %d", line.TracerouteMaxHops)
	}
	if line.LossAlertThreshold < 0 || line.LossAlertThreshold > 100 {
		return fmt.Errorf("packet_loss_alert_threshold must be within [0,100], got %v", line.LossAlertThreshold)
	}
	return nil
}

func pick[T any](perLine, fileDefault *T, builtin T) T {
	if perLine != nil {
		return *perLine
	}
	if fileDefault != nil {
		return *fileDefault
	}
	return builtin
}
