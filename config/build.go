package config

import (
	"fmt"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/core"
	"github.com/lixenwraith/blocktimer/engine"
	"github.com/lixenwraith/blocktimer/layout"
	"github.com/lixenwraith/blocktimer/palette"
	"github.com/lixenwraith/blocktimer/render"
)

// Validate checks the configuration, every failure wraps core.ErrInvalidConfiguration
func (c *Config) Validate() error {
	if c.DurationTicks <= 0 {
		return fmt.Errorf("%w: duration_ticks must be positive, got %d", core.ErrInvalidConfiguration, c.DurationTicks)
	}
	if c.SegmentCount <= 0 {
		return fmt.Errorf("%w: segment_count must be positive, got %d", core.ErrInvalidConfiguration, c.SegmentCount)
	}
	if c.DurationTicks%c.SegmentCount != 0 {
		return fmt.Errorf("%w: duration_ticks %d not divisible by segment_count %d", core.ErrInvalidConfiguration, c.DurationTicks, c.SegmentCount)
	}
	if c.TickInterval.Duration <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", core.ErrInvalidConfiguration, c.TickInterval.Duration)
	}
	if c.Columns <= 0 {
		return fmt.Errorf("%w: columns must be positive, got %d", core.ErrInvalidConfiguration, c.Columns)
	}
	if _, err := layout.ParseRemovalOrder(c.RemovalOrder); err != nil {
		return err
	}
	if _, err := render.ParseColorMode(c.ColorMode); err != nil {
		return err
	}
	if len(c.Segments) != 0 && len(c.Segments) != c.SegmentCount {
		return fmt.Errorf("%w: %d segments listed for segment_count %d", core.ErrInvalidConfiguration, len(c.Segments), c.SegmentCount)
	}
	for i, s := range c.Segments {
		if _, err := palette.ParseRGB(s.Color); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}

// PaletteSegments returns the configured segments, generating a green to red
// gradient when none are listed
func (c *Config) PaletteSegments() ([]palette.Segment, error) {
	if len(c.Segments) > 0 {
		out := make([]palette.Segment, len(c.Segments))
		for i, s := range c.Segments {
			out[i] = palette.Segment{Index: i, Name: s.Name, Token: s.Color, Description: s.Description}
		}
		return out, nil
	}

	tokens, err := palette.Gradient(constants.ColorGreen, constants.ColorRed, c.SegmentCount)
	if err != nil {
		return nil, err
	}
	out := make([]palette.Segment, c.SegmentCount)
	for i := range out {
		token := tokens[0]
		if i < len(tokens) {
			token = tokens[i]
		}
		out[i] = palette.Segment{Index: i, Name: fmt.Sprintf("segment %d", i+1), Token: token}
	}
	return out, nil
}

// Timer holds the independently constructed core components
type Timer struct {
	Clock  *engine.CountdownClock
	Layout *layout.BlockLayout
	Policy *palette.SegmentColorPolicy
}

// Build validates c and constructs the timer core against ts, nil ts uses the real clock
func (c *Config) Build(ts engine.TimeSource) (*Timer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	order, err := layout.ParseRemovalOrder(c.RemovalOrder)
	if err != nil {
		return nil, err
	}

	clock, err := engine.NewCountdownClock(c.DurationTicks, ts)
	if err != nil {
		return nil, err
	}
	blocks, err := layout.New(c.DurationTicks, c.SegmentCount, order)
	if err != nil {
		return nil, err
	}
	segs, err := c.PaletteSegments()
	if err != nil {
		return nil, err
	}
	policy, err := palette.NewPolicy(blocks.BlocksPerSegment(), segs)
	if err != nil {
		return nil, err
	}
	return &Timer{Clock: clock, Layout: blocks, Policy: policy}, nil
}

// RenderOptions maps the display settings
func (c *Config) RenderOptions() (render.Options, error) {
	mode, err := render.ParseColorMode(c.ColorMode)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{Columns: c.Columns, Mode: mode, TickInterval: c.TickInterval.Duration}, nil
}
