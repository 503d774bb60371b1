// Package palette maps elapsed ticks to color segments and segments to color tokens
package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/core"
)

// Segment is one contiguous span of ticks sharing a color
type Segment struct {
	Index       int
	Name        string
	Token       string // #RRGGBB
	Description string
}

// DefaultSegments is the three-minute green, orange, red sequence
func DefaultSegments() []Segment {
	return []Segment{
		{Index: 0, Name: "green", Token: constants.ColorGreen, Description: "start"},
		{Index: 1, Name: "orange", Token: constants.ColorOrange, Description: "halfway"},
		{Index: 2, Name: "red", Token: constants.ColorRed, Description: "almost done"},
	}
}

// SegmentColorPolicy is an immutable segment lookup table
type SegmentColorPolicy struct {
	blocksPerSegment int
	segments         []Segment
}

// NewPolicy validates tokens and reindexes segments by position
func NewPolicy(blocksPerSegment int, segments []Segment) (*SegmentColorPolicy, error) {
	if blocksPerSegment <= 0 {
		return nil, fmt.Errorf("%w: blocks per segment must be positive, got %d", core.ErrInvalidConfiguration, blocksPerSegment)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: at least one segment required", core.ErrInvalidConfiguration)
	}

	p := &SegmentColorPolicy{
		blocksPerSegment: blocksPerSegment,
		segments:         make([]Segment, len(segments)),
	}
	for i, s := range segments {
		if _, err := colorful.Hex(s.Token); err != nil {
			return nil, fmt.Errorf("%w: segment %d color %q: %v", core.ErrInvalidConfiguration, i, s.Token, err)
		}
		s.Index = i
		p.segments[i] = s
	}
	return p, nil
}

func (p *SegmentColorPolicy) SegmentCount() int     { return len(p.segments) }
func (p *SegmentColorPolicy) BlocksPerSegment() int { return p.blocksPerSegment }

// SegmentFor returns floor(elapsed / blocksPerSegment) clamped to [0, segmentCount-1]
func (p *SegmentColorPolicy) SegmentFor(elapsed int) int {
	if elapsed <= 0 {
		return 0
	}
	seg := elapsed / p.blocksPerSegment
	if last := len(p.segments) - 1; seg > last {
		return last
	}
	return seg
}

// ColorFor returns the configured token, never clamps
func (p *SegmentColorPolicy) ColorFor(segment int) (string, error) {
	if segment < 0 || segment >= len(p.segments) {
		return "", fmt.Errorf("%w: segment %d outside [0,%d)", core.ErrOutOfRange, segment, len(p.segments))
	}
	return p.segments[segment].Token, nil
}

// SegmentInfo returns the full segment record
func (p *SegmentColorPolicy) SegmentInfo(segment int) (Segment, error) {
	if segment < 0 || segment >= len(p.segments) {
		return Segment{}, fmt.Errorf("%w: segment %d outside [0,%d)", core.ErrOutOfRange, segment, len(p.segments))
	}
	return p.segments[segment], nil
}

// Segments returns a copy of all segment records
func (p *SegmentColorPolicy) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}
