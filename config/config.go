// Package config loads timer configuration from TOML over compiled defaults
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/core"
	"github.com/lixenwraith/blocktimer/layout"
	"github.com/lixenwraith/blocktimer/palette"
	"github.com/lixenwraith/blocktimer/render"
)

// Duration is a time.Duration written as a string ("1s", "500ms") in TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// SegmentConfig is one [[segments]] table
type SegmentConfig struct {
	Name        string `toml:"name"`
	Color       string `toml:"color"`
	Description string `toml:"description,omitempty"`
}

// AudioConfig is the [audio] table
type AudioConfig struct {
	Enabled      bool `toml:"enabled"`
	SegmentChime bool `toml:"segment_chime"`
}

// Config is the root configuration
type Config struct {
	DurationTicks int             `toml:"duration_ticks"`
	TickInterval  Duration        `toml:"tick_interval"`
	SegmentCount  int             `toml:"segment_count"`
	RemovalOrder  string          `toml:"removal_order"`
	ColorMode     string          `toml:"color_mode"`
	Columns       int             `toml:"columns"`
	Segments      []SegmentConfig `toml:"segments"`
	Audio         AudioConfig     `toml:"audio"`
	Debug         bool            `toml:"debug"`
	LogFile       string          `toml:"log_file,omitempty"`
}

// Default is the three-minute, three-color timer with one block per second
func Default() *Config {
	segs := palette.DefaultSegments()
	out := make([]SegmentConfig, len(segs))
	for i, s := range segs {
		out[i] = SegmentConfig{Name: s.Name, Color: s.Token, Description: s.Description}
	}
	return &Config{
		DurationTicks: constants.DefaultDurationTicks,
		TickInterval:  Duration{constants.DefaultTickInterval},
		SegmentCount:  constants.DefaultSegmentCount,
		RemovalOrder:  layout.OrderSegmentReverse.String(),
		ColorMode:     render.ColorModeActive.String(),
		Columns:       constants.DefaultBlockColumns,
		Segments:      out,
		Audio:         AudioConfig{Enabled: true},
	}
}

// Preset returns a named configuration, empty or "default" is Default
// "classic" is the earlier generation: 36 ticks of 5 s removed in ascending order
func Preset(name string) (*Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return Default(), nil
	case "classic":
		c := Default()
		c.DurationTicks = constants.ClassicDurationTicks
		c.TickInterval = Duration{constants.ClassicTickInterval}
		c.SegmentCount = constants.ClassicSegmentCount
		c.RemovalOrder = layout.OrderAscending.String()
		c.Columns = constants.ClassicDurationTicks / constants.ClassicSegmentCount
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown preset %q", core.ErrInvalidConfiguration, name)
	}
}

// Load decodes path over base, empty path returns base unchanged
// Unknown keys are rejected
func Load(path string, base *Config) (*Config, error) {
	if base == nil {
		base = Default()
	}
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Decode(data, base)
}

// Decode parses TOML data over a copy of base
func Decode(data []byte, base *Config) (*Config, error) {
	cfg := *base
	cfg.Segments = append([]SegmentConfig(nil), base.Segments...)

	// A listed [[segments]] array replaces the base list, a new segment_count
	// without one falls back to generated colors
	var probe struct {
		SegmentCount *int            `toml:"segment_count"`
		Segments     []SegmentConfig `toml:"segments"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfiguration, err)
	}
	if probe.Segments != nil || probe.SegmentCount != nil {
		cfg.Segments = nil
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfiguration, err)
	}
	return &cfg, nil
}

// Encode writes the configuration as TOML
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}
