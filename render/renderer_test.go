package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/core"
	"github.com/lixenwraith/blocktimer/engine"
	"github.com/lixenwraith/blocktimer/events"
	"github.com/lixenwraith/blocktimer/layout"
	"github.com/lixenwraith/blocktimer/palette"
)

// Row positions for the default 180 tick, 3 segment, 20 column layout
const (
	rowSection0 = 0
	rowSection1 = 5
	rowSection2 = 10
	rowBar      = 15
	rowStatus   = 16
	rowMessage  = 17
	rowHints    = 19
)

type frame struct {
	t      *testing.T
	screen tcell.SimulationScreen
	mock   *engine.MockTimeProvider
	source *engine.ManualTickSource
	orch   *engine.Orchestrator
	view   *View
	rend   *Renderer
}

func newFrame(t *testing.T, mode ColorMode) *frame {
	t.Helper()

	mock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	clock, err := engine.NewCountdownClock(180, mock)
	if err != nil {
		t.Fatal(err)
	}
	blocks, err := layout.New(180, 3, layout.OrderSegmentReverse)
	if err != nil {
		t.Fatal(err)
	}
	policy, err := palette.NewPolicy(blocks.BlocksPerSegment(), palette.DefaultSegments())
	if err != nil {
		t.Fatal(err)
	}

	view := NewView(blocks, policy)
	router := events.NewRouter()
	router.Subscribe(view)

	src := engine.NewManualTickSource(16, mock)
	orch, err := engine.NewOrchestrator(clock, blocks, policy, src, router, engine.WithTimeSource(mock))
	if err != nil {
		t.Fatal(err)
	}

	rend, err := NewRenderer(view, Options{Columns: 20, Mode: mode, TickInterval: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	return &frame{t: t, screen: screen, mock: mock, source: src, orch: orch, view: view, rend: rend}
}

func (f *frame) tick(n int) {
	for i := 0; i < n; i++ {
		f.mock.Advance(time.Second)
		f.source.Fire(1)
		f.orch.Pump()
	}
}

func (f *frame) draw(at time.Time) {
	f.rend.Draw(f.screen, at)
}

func (f *frame) row(y int) string {
	w, _ := f.screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := f.screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (f *frame) cell(x, y int) (rune, tcell.Color, tcell.AttrMask) {
	r, _, style, _ := f.screen.GetContent(x, y)
	fg, _, attrs := style.Decompose()
	return r, fg, attrs
}

// blockPos maps a block to screen coordinates in the default layout
func blockPos(block int) (x, y int) {
	seg := block / 60
	off := block % 60
	return blockIndent + (off%20)*constants.BlockCellWidth, seg*5 + 1 + off/20
}

func TestRenderer_IdleFrame(t *testing.T) {
	f := newFrame(t, ColorModeActive)
	f.draw(f.mock.Now())

	if got := f.row(rowSection0); got != "> green - start" {
		t.Errorf("section 0 title = %q", got)
	}
	if got := f.row(rowSection1); got != "  orange - halfway" {
		t.Errorf("section 1 title = %q", got)
	}
	if got := f.row(rowStatus); got != "3:00 | blocks: 180 | progress: 0%" {
		t.Errorf("status = %q", got)
	}
	if got := f.row(rowMessage); got != constants.MessageIdle {
		t.Errorf("message = %q", got)
	}

	hints := f.row(rowHints)
	if !strings.Contains(hints, "[enter] start") || strings.Contains(hints, "[esc]") {
		t.Errorf("idle hints = %q", hints)
	}

	x, y := blockPos(179)
	r, fg, _ := f.cell(x, y)
	if r != blockGlyph || fg != tcell.GetColor(constants.ColorGreen) {
		t.Errorf("block 179: rune %q color %v", r, fg)
	}

	if _, fg, attrs := f.cell(2, rowSection0); fg != tcell.GetColor(constants.ColorGreen) || attrs&tcell.AttrBold == 0 {
		t.Errorf("active title color %v attrs %v", fg, attrs)
	}
	dimOrange, err := palette.AdjustBrightness(constants.ColorOrange, constants.InactiveTitleBrightness)
	if err != nil {
		t.Fatal(err)
	}
	if _, fg, attrs := f.cell(2, rowSection1); fg != tcell.GetColor(dimOrange) || attrs&tcell.AttrBold != 0 {
		t.Errorf("inactive title color %v attrs %v, want %s", fg, attrs, dimOrange)
	}
}

func TestRenderer_RemovedBlockFades(t *testing.T) {
	f := newFrame(t, ColorModeActive)
	if err := f.orch.Start(); err != nil {
		t.Fatal(err)
	}
	f.tick(1)

	x, y := blockPos(59)
	removed := f.mock.Now()

	f.draw(removed)
	if r, fg, _ := f.cell(x, y); r != blockGlyph || fg != tcell.GetColor(constants.ColorGreen) {
		t.Errorf("block 59 at removal: rune %q color %v", r, fg)
	}

	f.draw(removed.Add(constants.BlockFadeDuration / 2))
	if r, fg, _ := f.cell(x, y); r != blockGlyph || fg == tcell.GetColor(constants.ColorGreen) {
		t.Errorf("block 59 mid fade: rune %q color %v", r, fg)
	}

	f.draw(removed.Add(constants.BlockFadeDuration))
	if r, _, _ := f.cell(x, y); r != emptyGlyph {
		t.Errorf("block 59 after fade: rune %q", r)
	}

	x, y = blockPos(58)
	if r, _, _ := f.cell(x, y); r != blockGlyph {
		t.Errorf("block 58 should remain, rune %q", r)
	}

	if got := f.row(rowStatus); got != "2:59 | blocks: 179 | progress: 1%" {
		t.Errorf("status = %q", got)
	}
	hints := f.row(rowHints)
	if strings.Contains(hints, "[enter]") || !strings.Contains(hints, "[esc] reset") || !strings.Contains(hints, "[p] pause") {
		t.Errorf("running hints = %q", hints)
	}
}

func TestRenderer_SegmentWave(t *testing.T) {
	f := newFrame(t, ColorModeActive)
	f.orch.Start()
	f.tick(61)

	// One second after the change: the wave has reached the first remaining
	// blocks but not the tail of the last section
	f.draw(f.mock.Now())
	if got := f.row(rowSection1); !strings.HasPrefix(got, "> orange") {
		t.Errorf("active marker not on section 1: %q", got)
	}

	orange := tcell.GetColor(constants.ColorOrange)
	green := tcell.GetColor(constants.ColorGreen)

	x, y := blockPos(60)
	if _, fg, _ := f.cell(x, y); fg != orange {
		t.Errorf("block 60 color %v, want orange", fg)
	}
	x, y = blockPos(179)
	if _, fg, _ := f.cell(x, y); fg != green {
		t.Errorf("block 179 color %v, want green before the wave arrives", fg)
	}

	f.draw(f.mock.Now().Add(10 * time.Second))
	if _, fg, _ := f.cell(x, y); fg != orange {
		t.Errorf("block 179 color %v, want orange after the wave", fg)
	}
}

func TestRenderer_SectionMode(t *testing.T) {
	f := newFrame(t, ColorModeSection)
	f.orch.Start()
	f.tick(61)
	f.draw(f.mock.Now().Add(10 * time.Second))

	x, y := blockPos(60)
	if _, fg, _ := f.cell(x, y); fg != tcell.GetColor(constants.ColorOrange) {
		t.Errorf("block 60 color %v, want orange", fg)
	}
	x, y = blockPos(120)
	if _, fg, _ := f.cell(x, y); fg != tcell.GetColor(constants.ColorRed) {
		t.Errorf("block 120 color %v, want red in section mode", fg)
	}
}

func TestRenderer_CompletionBanner(t *testing.T) {
	f := newFrame(t, ColorModeActive)
	f.orch.Start()
	f.tick(180)

	done := f.mock.Now()
	f.draw(done)

	if got := f.row(rowMessage); got != constants.MessageCompleted {
		t.Errorf("message = %q", got)
	}
	if _, _, attrs := f.cell(0, rowMessage); attrs&tcell.AttrReverse == 0 {
		t.Error("banner should be highlighted right after completion")
	}
	bannerHex, err := palette.Blend(constants.ColorRed, constants.ColorText, constants.BannerTextBlend)
	if err != nil {
		t.Fatal(err)
	}
	if _, fg, _ := f.cell(0, rowMessage); fg != tcell.GetColor(bannerHex) {
		t.Errorf("banner color %v, want %s", fg, bannerHex)
	}
	if got := f.row(rowBar); !strings.HasSuffix(got, "100%") || strings.ContainsRune(got, barEmptyRune) {
		t.Errorf("bar = %q", got)
	}
	if got := f.row(rowStatus); got != "0:00 | blocks: 0 | progress: 100%" {
		t.Errorf("status = %q", got)
	}
	hints := f.row(rowHints)
	if strings.Contains(hints, "[enter]") || !strings.Contains(hints, "[esc] again") {
		t.Errorf("completed hints = %q", hints)
	}
	if strings.HasPrefix(f.row(rowSection2), ">") {
		t.Error("no section is active after completion")
	}

	f.draw(done.Add(constants.CompletionBannerDuration))
	if _, _, attrs := f.cell(0, rowMessage); attrs&tcell.AttrReverse != 0 {
		t.Error("banner highlight should end after the celebration")
	}
}

func TestRenderer_PauseAndReset(t *testing.T) {
	f := newFrame(t, ColorModeActive)
	f.orch.Start()
	f.tick(5)
	f.orch.Stop()
	f.draw(f.mock.Now())

	hints := f.row(rowHints)
	if !strings.Contains(hints, "[enter] resume") || !strings.Contains(hints, "[esc] reset") {
		t.Errorf("paused hints = %q", hints)
	}
	if got := f.row(rowMessage); got != constants.MessagePaused {
		t.Errorf("message = %q", got)
	}

	f.orch.Reset()
	f.draw(f.mock.Now())
	if f.view.RemainingBlocks() != 180 || f.view.Consumed(59) {
		t.Error("reset did not restore blocks")
	}
	if got := f.row(rowStatus); got != "3:00 | blocks: 180 | progress: 0%" {
		t.Errorf("status after reset = %q", got)
	}
	if hints := f.row(rowHints); !strings.Contains(hints, "[enter] start") {
		t.Errorf("hints after reset = %q", hints)
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		ticks    int
		interval time.Duration
		blocks   int
		progress float64
		want     string
	}{
		{180, time.Second, 180, 0, "3:00 | blocks: 180 | progress: 0%"},
		{61, time.Second, 61, 119.0 / 180, "1:01 | blocks: 61 | progress: 66%"},
		{36, 5 * time.Second, 36, 0, "3:00 | blocks: 36 | progress: 0%"},
		{0, time.Second, 0, 1, "0:00 | blocks: 0 | progress: 100%"},
	}
	for _, tt := range tests {
		if got := FormatStatus(tt.ticks, tt.interval, tt.blocks, tt.progress); got != tt.want {
			t.Errorf("FormatStatus(%d, %v) = %q, want %q", tt.ticks, tt.interval, got, tt.want)
		}
	}
}

func TestParseColorMode(t *testing.T) {
	for name, want := range map[string]ColorMode{"": ColorModeActive, "active": ColorModeActive, "Section": ColorModeSection} {
		got, err := ParseColorMode(name)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseColorMode("rainbow"); !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
	if ColorModeSection.String() != "section" {
		t.Errorf("String = %q", ColorModeSection.String())
	}
}
