package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/blocktimer/config"
	"github.com/lixenwraith/blocktimer/engine"
	"github.com/lixenwraith/blocktimer/events"
)

func newHeadless(t *testing.T, ticks int, interval time.Duration) (*config.Config, *config.Timer, *engine.Orchestrator, *events.Router) {
	t.Helper()
	cfg := config.Default()
	cfg.DurationTicks = ticks
	cfg.TickInterval = config.Duration{Duration: interval}

	timer, err := cfg.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	router := events.NewRouter()
	src := engine.NewIntervalTickSource(interval, nil)
	t.Cleanup(src.Stop)
	orch, err := engine.NewOrchestrator(timer.Clock, timer.Layout, timer.Policy, src, router)
	if err != nil {
		t.Fatal(err)
	}
	return cfg, timer, orch, router
}

func TestRunHeadless_Completes(t *testing.T) {
	cfg, timer, orch, router := newHeadless(t, 6, time.Millisecond)

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runHeadless(ctx, orch, router, timer.Policy, cfg.TickInterval.Duration, &out); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "Timer started!" {
		t.Errorf("first line %q", lines[0])
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "Time is up") {
		t.Errorf("last line %q", last)
	}
	text := out.String()
	for _, want := range []string{"segment: orange", "segment: red", "| blocks: 0 | progress: 100%"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if router.HandlerCount(events.EventProgress) != 0 {
		t.Error("headless printer still subscribed")
	}
}

func TestRunHeadless_Cancelled(t *testing.T) {
	cfg, timer, orch, router := newHeadless(t, 180, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runHeadless(ctx, orch, router, timer.Policy, cfg.TickInterval.Duration, &out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if orch.Snapshot().State != engine.StateIdle {
		t.Errorf("state after cancel %s", orch.Snapshot().State)
	}
}
