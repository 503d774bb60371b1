package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blocktimer/audio"
	"github.com/lixenwraith/blocktimer/config"
	"github.com/lixenwraith/blocktimer/constants"
	"github.com/lixenwraith/blocktimer/core"
	"github.com/lixenwraith/blocktimer/engine"
	"github.com/lixenwraith/blocktimer/events"
	"github.com/lixenwraith/blocktimer/input"
	"github.com/lixenwraith/blocktimer/render"
	"github.com/lixenwraith/blocktimer/status"
)

var (
	configFlag      = flag.String("config", "", "Path to a TOML configuration file")
	presetFlag      = flag.String("preset", "", "Base preset: default, classic")
	muteFlag        = flag.Bool("mute", false, "Disable audio")
	debugFlag       = flag.Bool("debug", false, "Write debug logs to logs/blocktimer.log")
	logFlag         = flag.String("log", "", "Debug log path (implies -debug)")
	plainFlag       = flag.Bool("plain", false, "Run without the terminal UI, printing one line per tick")
	printConfigFlag = flag.Bool("print-config", false, "Print the effective configuration and exit")
)

func main() {
	os.Exit(run())
}

func run() int {
	// Panic Recovery: restore the terminal even if the main loop crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	if *printConfigFlag {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode configuration: %v\n", err)
			return 1
		}
		return 0
	}

	logger, logFile := setupLogging(cfg.Debug, cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}

	timer, err := cfg.Build(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	metrics := status.NewRegistry()
	router := events.NewRouter()
	source := engine.NewIntervalTickSource(cfg.TickInterval.Duration, nil)
	orch, err := engine.NewOrchestrator(timer.Clock, timer.Layout, timer.Policy, source, router,
		engine.WithLogger(logger.With().Str("component", "engine").Logger()),
		engine.WithMetrics(metrics),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create timer: %v\n", err)
		return 1
	}
	defer source.Stop()
	defer logMetrics(logger, metrics)

	sound := audio.NewSoundManager(nil, logger.With().Str("component", "audio").Logger())
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err == nil {
			metrics.Bool(status.KeyAudio).Store(true)
			defer sound.Cleanup()
		} else if *plainFlag {
			fmt.Fprintf(os.Stderr, "Audio initialization failed: %v (continuing without audio)\n", err)
		}
	}
	sound.SetSegmentChime(cfg.Audio.SegmentChime)
	router.Subscribe(sound)

	logger.Info().
		Int("ticks", cfg.DurationTicks).
		Dur("interval", cfg.TickInterval.Duration).
		Int("segments", cfg.SegmentCount).
		Str("order", cfg.RemovalOrder).
		Msg("blocktimer starting")

	if *plainFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err := runHeadless(ctx, orch, router, timer.Policy, cfg.TickInterval.Duration, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return 130
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Timer failed: %v\n", err)
			return 1
		}
		if sound.Available() {
			// Let the completion chime finish before the device closes
			time.Sleep(constants.CompletionChimeDuration)
		}
		return 0
	}

	return runTerminal(cfg, timer, orch, router, sound, logger)
}

func loadConfig() (*config.Config, error) {
	base, err := config.Preset(*presetFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(*configFlag, base)
	if err != nil {
		return nil, err
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *logFlag != "" {
		cfg.Debug = true
		cfg.LogFile = *logFlag
	}
	return cfg, cfg.Validate()
}

func runTerminal(cfg *config.Config, timer *config.Timer, orch *engine.Orchestrator, router *events.Router, sound *audio.SoundManager, logger zerolog.Logger) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.SetCrashCleanup(screen.Fini)
	defer core.SetCrashCleanup(nil)

	view := render.NewView(timer.Layout, timer.Policy)
	router.Subscribe(view)

	opts, err := cfg.RenderOptions()
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	renderer, err := render.NewRenderer(view, opts)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to create renderer: %v\n", err)
		return 1
	}

	machine := input.NewMachine(nil, orch, logger.With().Str("component", "input").Logger())

	eventChan := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	draw := func() {
		renderer.Draw(screen, time.Now())
		screen.Show()
	}
	draw()

	muted := false
	for {
		select {
		case ev := <-eventChan:
			intent, err := machine.Handle(ev)
			if err != nil {
				logger.Debug().Err(err).Str("intent", intent.String()).Msg("command refused")
			}
			switch intent {
			case input.IntentQuit:
				orch.Stop()
				return 0
			case input.IntentToggleMute:
				muted = !muted
				sound.SetMuted(muted)
			case input.IntentResize:
				screen.Sync()
			}
			draw()

		case t := <-orch.Source().C():
			orch.HandleTick(t)
			draw()

		case <-frameTicker.C:
			draw()
		}
	}
}

func logMetrics(logger zerolog.Logger, metrics *status.Registry) {
	for _, m := range metrics.Snapshot() {
		logger.Info().Str("metric", m.Key).Str("value", m.Value).Msg("final")
	}
}
