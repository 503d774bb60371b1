// Package render draws the block timer into a tcell screen
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/core"
	"github.com/lixenwraith/blocktimer/engine"
	"github.com/lixenwraith/blocktimer/palette"
)

// ColorMode selects how remaining blocks are colored
type ColorMode int

const (
	// ColorModeActive paints every remaining block in the active segment color
	ColorModeActive ColorMode = iota
	// ColorModeSection keeps each section in its own segment color
	ColorModeSection
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeActive:
		return "active"
	case ColorModeSection:
		return "section"
	default:
		return "unknown"
	}
}

// ParseColorMode resolves a configuration name, empty selects active
func ParseColorMode(name string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "active":
		return ColorModeActive, nil
	case "section":
		return ColorModeSection, nil
	default:
		return 0, fmt.Errorf("%w: unknown color mode %q", core.ErrInvalidConfiguration, name)
	}
}

// Options controls the terminal layout
type Options struct {
	Columns      int
	Mode         ColorMode
	TickInterval time.Duration
}

const (
	blockGlyph   = '█'
	emptyGlyph   = '·'
	barFullRune  = '█'
	barEmptyRune = '░'
	blockIndent  = 2
)

// Renderer paints a View
type Renderer struct {
	view *View
	opts Options

	segColors   []tcell.Color
	titleColors []tcell.Color
	fades       [][]tcell.Color
	banner      tcell.Color
	dim         tcell.Style
	text        tcell.Style
}

// NewRenderer precomputes segment colors and removal fades for view
func NewRenderer(view *View, opts Options) (*Renderer, error) {
	if opts.Columns <= 0 {
		opts.Columns = constants.DefaultBlockColumns
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = constants.DefaultTickInterval
	}

	r := &Renderer{
		view: view,
		opts: opts,
		dim:  tcell.StyleDefault.Foreground(tcell.GetColor(constants.ColorDim)),
		text: tcell.StyleDefault.Foreground(tcell.GetColor(constants.ColorText)),
	}

	segs := view.policy.Segments()
	for _, seg := range segs {
		r.segColors = append(r.segColors, tcell.GetColor(seg.Token))

		title, err := palette.AdjustBrightness(seg.Token, constants.InactiveTitleBrightness)
		if err != nil {
			return nil, err
		}
		r.titleColors = append(r.titleColors, tcell.GetColor(title))

		steps, err := paletteFade(seg.Token)
		if err != nil {
			return nil, err
		}
		r.fades = append(r.fades, steps)
	}

	banner, err := palette.Blend(segs[len(segs)-1].Token, constants.ColorText, constants.BannerTextBlend)
	if err != nil {
		return nil, err
	}
	r.banner = tcell.GetColor(banner)
	return r, nil
}

// Draw clears screen and paints the full frame as of now
// The caller is responsible for Show
func (r *Renderer) Draw(screen tcell.Screen, now time.Time) {
	screen.Clear()
	width, _ := screen.Size()

	v := r.view
	y := 0
	rank := 0
	for seg := range r.segColors {
		info, err := v.policy.SegmentInfo(seg)
		if err != nil {
			continue
		}
		lo, hi, err := v.layout.SegmentRange(seg)
		if err != nil {
			continue
		}

		titleStyle := tcell.StyleDefault.Foreground(r.titleColors[seg])
		marker := "  "
		if seg == v.Segment() && v.State() != engine.StateCompleted {
			marker = "> "
			titleStyle = tcell.StyleDefault.Foreground(r.segColors[seg]).Bold(true)
		}
		x := drawText(screen, 0, y, marker+info.Name, titleStyle)
		if info.Description != "" {
			drawText(screen, x, y, " - "+info.Description, r.dim)
		}
		y += constants.SectionTitleHeight

		for i := lo; i < hi; i++ {
			col := (i - lo) % r.opts.Columns
			row := (i - lo) / r.opts.Columns
			ch, style := r.blockCell(i, rank, now)
			if !v.Consumed(i) {
				rank++
			}
			screen.SetContent(blockIndent+col*constants.BlockCellWidth, y+row, ch, nil, style)
		}
		rows := (hi - lo + r.opts.Columns - 1) / r.opts.Columns
		y += rows + 1
	}

	y = r.drawProgressBar(screen, y, width)
	drawText(screen, 0, y, FormatStatus(v.RemainingTicks(), r.opts.TickInterval, v.RemainingBlocks(), v.Progress()), r.text)
	y++

	msgStyle := r.text
	if v.Celebrating(now) {
		msgStyle = tcell.StyleDefault.Foreground(r.banner).Bold(true).Reverse(true)
	}
	drawText(screen, 0, y, v.Message(), msgStyle)
	y += 2

	drawText(screen, 0, y, r.hints(), r.dim)
}

// blockCell resolves the glyph and style for block at wave position rank
func (r *Renderer) blockCell(block, rank int, now time.Time) (rune, tcell.Style) {
	v := r.view
	seg := v.layout.SegmentOfBlock(block)
	if r.opts.Mode == ColorModeActive {
		seg = v.waveSegment(rank, now)
	}

	if !v.Consumed(block) {
		return blockGlyph, tcell.StyleDefault.Foreground(r.segColors[seg])
	}

	ratio := v.FadeRatio(block, now)
	if ratio >= 1 {
		return emptyGlyph, r.dim
	}
	fade := r.fades[seg]
	step := int(ratio * float64(len(fade)-1))
	return blockGlyph, tcell.StyleDefault.Foreground(fade[step])
}

func (r *Renderer) drawProgressBar(screen tcell.Screen, y, screenWidth int) int {
	barWidth := constants.ProgressBarWidth
	if limit := screenWidth - blockIndent - 6; limit < barWidth {
		barWidth = limit
	}
	if barWidth <= 0 {
		return y + 1
	}

	filled := int(math.Round(r.view.Progress() * float64(barWidth)))
	full := tcell.StyleDefault.Foreground(r.segColors[r.view.Segment()])
	for i := 0; i < barWidth; i++ {
		if i < filled {
			screen.SetContent(blockIndent+i, y, barFullRune, nil, full)
		} else {
			screen.SetContent(blockIndent+i, y, barEmptyRune, nil, r.dim)
		}
	}
	drawText(screen, blockIndent+barWidth+1, y, fmt.Sprintf("%3d%%", percent(r.view.Progress())), r.text)
	return y + 1
}

func (r *Renderer) hints() string {
	v := r.view
	var parts []string
	if v.ShowStart() {
		parts = append(parts, "[enter] "+v.StartLabel())
	}
	if v.State() == engine.StateRunning {
		parts = append(parts, "[p] pause")
	}
	if v.ShowReset() {
		parts = append(parts, "[esc] "+v.ResetLabel())
	}
	parts = append(parts, "[q] "+constants.LabelQuit)
	return strings.Join(parts, "  ")
}

// FormatStatus renders "m:ss | blocks: N | progress: P%"
func FormatStatus(remainingTicks int, interval time.Duration, remainingBlocks int, progress float64) string {
	secs := int((time.Duration(remainingTicks) * interval).Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d | blocks: %d | progress: %d%%", secs/60, secs%60, remainingBlocks, percent(progress))
}

func percent(progress float64) int {
	return int(math.Round(progress * 100))
}

// drawText writes s from x and returns the column after the last rune
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
