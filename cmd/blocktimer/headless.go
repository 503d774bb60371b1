package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/engine"
	"github.com/lixenwraith/blocktimer/events"
	"github.com/lixenwraith/blocktimer/palette"
	"github.com/lixenwraith/blocktimer/render"
)

// runHeadless prints one status line per tick until completion or ctx cancellation
func runHeadless(ctx context.Context, orch *engine.Orchestrator, router *events.Router, policy *palette.SegmentColorPolicy, interval time.Duration, w io.Writer) error {
	id := router.Subscribe(&events.Callbacks{
		OnStarted: func(p events.LifecyclePayload) {
			fmt.Fprintln(w, constants.MessageStarted)
		},
		OnSegmentChanged: func(segment int) {
			if info, err := policy.SegmentInfo(segment); err == nil {
				fmt.Fprintf(w, "segment: %s\n", info.Name)
			}
		},
		OnProgress: func(progress float64, remaining int) {
			// One block per tick, remaining ticks equal remaining blocks
			fmt.Fprintln(w, render.FormatStatus(remaining, interval, remaining, progress))
		},
		OnCompleted: func() {
			fmt.Fprintln(w, constants.MessageCompleted)
		},
	})
	defer router.Unsubscribe(id)

	return orch.Run(ctx)
}
