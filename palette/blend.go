package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/blocktimer/core"
)

// RGB is an 8-bit color triple
type RGB struct {
	R, G, B uint8
}

// ParseRGB decodes a #RRGGBB token
func ParseRGB(token string) (RGB, error) {
	c, err := colorful.Hex(token)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: color %q: %v", core.ErrInvalidConfiguration, token, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Gradient returns steps colors from start to end inclusive, interpolated in RGB
// Steps below 2 yield only the start color
func Gradient(start, end string, steps int) ([]string, error) {
	from, err := colorful.Hex(start)
	if err != nil {
		return nil, fmt.Errorf("%w: color %q: %v", core.ErrInvalidConfiguration, start, err)
	}
	to, err := colorful.Hex(end)
	if err != nil {
		return nil, fmt.Errorf("%w: color %q: %v", core.ErrInvalidConfiguration, end, err)
	}

	if steps < 2 {
		return []string{from.Hex()}, nil
	}

	out := make([]string, steps)
	for i := 0; i < steps; i++ {
		ratio := float64(i) / float64(steps-1)
		out[i] = from.BlendRgb(to, ratio).Clamped().Hex()
	}
	return out, nil
}

// AdjustBrightness scales each channel by factor, clamped to the valid range
// Factor 1 keeps the color, 0 is black
func AdjustBrightness(token string, factor float64) (string, error) {
	c, err := colorful.Hex(token)
	if err != nil {
		return "", fmt.Errorf("%w: color %q: %v", core.ErrInvalidConfiguration, token, err)
	}
	if factor < 0 {
		factor = 0
	}
	scaled := colorful.Color{R: c.R * factor, G: c.G * factor, B: c.B * factor}
	return scaled.Clamped().Hex(), nil
}

// Blend mixes two tokens, t=0 is a and t=1 is b
func Blend(a, b string, t float64) (string, error) {
	ca, err := colorful.Hex(a)
	if err != nil {
		return "", fmt.Errorf("%w: color %q: %v", core.ErrInvalidConfiguration, a, err)
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return "", fmt.Errorf("%w: color %q: %v", core.ErrInvalidConfiguration, b, err)
	}
	return ca.BlendRgb(cb, t).Clamped().Hex(), nil
}
