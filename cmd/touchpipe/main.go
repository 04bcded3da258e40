package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/a11ykit/touchpipe"
	"github.com/a11ykit/touchpipe/internal/adapters/trace"
	"github.com/a11ykit/touchpipe/internal/adapters/vsync"
	"github.com/a11ykit/touchpipe/internal/app"
	"github.com/a11ykit/touchpipe/internal/cliconfig"
	"github.com/a11ykit/touchpipe/internal/domain"
	"github.com/a11ykit/touchpipe/internal/pipeline"
	"github.com/a11ykit/touchpipe/pkg/log"
	"github.com/a11ykit/touchpipe/plugins/featurewatcher"
)

const helpDescription = `
Replay touch-event recordings through the accessibility input pipeline.

Raw events are read from a JSONL recording, coalesced into per-frame batches,
run through the enabled transformation stages (magnifier, touch exploration),
and written out as a recording of what would have been injected.

By default frames are stepped deterministically from event timestamps; pass
--realtime to pace the replay against the wall clock instead.
`

var exampleUsage = strings.TrimSpace(`
  touchpipe --recording gestures.jsonl --magnifier
  touchpipe --recording - --touch-exploration --output delivered.jsonl
  touchpipe --config $HOME/.touchpipe/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zlog := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "touchpipe",
		Short:   "Frame-batched touch-event transformation pipeline",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Flags beat env beats file; track what was passed explicitly.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zlog.Info().Interface("config", cfg).Msg("configuration")

			return run(cmd.Context(), cfg, cfgFile, zlog)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.touchpipe/config.toml)")
	root.Flags().StringVar(&cfg.RecordingPath, "recording", cfg.RecordingPath, "input recording, one JSON event per line (\"-\" for stdin)")
	root.Flags().StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "output recording of delivered events (\"-\" for stdout)")
	root.Flags().BoolVar(&cfg.Magnifier, "magnifier", cfg.Magnifier, "enable the screen magnification stage")
	root.Flags().BoolVar(&cfg.TouchExploration, "touch-exploration", cfg.TouchExploration, "enable the touch exploration stage")
	root.Flags().Float64Var(&cfg.RefreshRate, "refresh-rate", cfg.RefreshRate, "display refresh rate in Hz")
	root.Flags().BoolVar(&cfg.Realtime, "realtime", cfg.Realtime, "pace replay against the wall clock")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload feature flags when the config file changes")
	root.Flags().IntVar(&cfg.PoolCapacity, "pool-capacity", cfg.PoolCapacity, "batch node pool capacity")
	root.Flags().IntVar(&cfg.MaxHistorySamples, "max-history", cfg.MaxHistorySamples, "max samples per merged batch (0 = unlimited)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		zlog.Error().Err(err).Msg("touchpipe")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, cfgFile string, zlog zerolog.Logger) error {
	logger := log.NewZerologLogger(zlog)

	reader, err := openRecording(cfg.RecordingPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	out, closeOut, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	writer := trace.NewWriter(out)

	var features touchpipe.Feature
	if cfg.Magnifier {
		features |= touchpipe.FeatureScreenMagnifier
	}
	if cfg.TouchExploration {
		features |= touchpipe.FeatureTouchExploration
	}

	events := make(chan app.InputEvent)
	interval := cfg.FrameInterval()

	var frames <-chan int64
	var feed func(ctx context.Context)

	if cfg.Realtime {
		ticker := vsync.NewTicker(cfg.RefreshRate)
		ticker.Start()
		defer ticker.Stop()
		frames = ticker.Frames()
		feed = func(ctx context.Context) {
			feedRealtime(ctx, reader, events, logger)
		}
	} else {
		step := vsync.NewStepClock()
		frames = step.Frames()
		feed = func(ctx context.Context) {
			feedStepped(ctx, reader, events, step, interval, logger)
		}
	}

	agent := app.New(
		app.Config{
			Features: features,
			Filter: pipeline.Config{
				Merge:        domain.MergePolicy{MaxHistorySamples: cfg.MaxHistorySamples},
				PoolCapacity: cfg.PoolCapacity,
			},
		},
		app.Deps{
			Events:   events,
			Frames:   frames,
			Injector: writer,
			Logger:   logger,
		},
	)

	if cfg.Watch && cfgFile != "" {
		watcher := featurewatcher.New(featurewatcher.DefaultConfig())
		if err := watcher.Initialize(ctx, cfgFile, agent, logger); err != nil {
			return fmt.Errorf("start feature watcher: %w", err)
		}
		defer watcher.Shutdown(context.Background())
	}

	go feed(ctx)

	err = agent.Run(ctx)
	if flushErr := writer.Flush(); flushErr != nil {
		return flushErr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("replay finished", log.Int("delivered", writer.Written()))
	return nil
}

// feedStepped replays the recording deterministically: frame ticks are
// derived from event timestamps, so the same recording always batches the
// same way.
func feedStepped(ctx context.Context, reader *trace.Reader, events chan<- app.InputEvent, step *vsync.StepClock, interval time.Duration, logger log.Logger) {
	defer close(events)
	var nextFrame int64
	for {
		event, flags, err := reader.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Error("read recording", log.Err(err))
			}
			return
		}
		if nextFrame == 0 {
			nextFrame = event.EventTimeNanos() + interval.Nanoseconds()
		}
		for event.EventTimeNanos() >= nextFrame {
			if err := step.AdvanceContext(ctx, nextFrame); err != nil {
				return
			}
			nextFrame += interval.Nanoseconds()
		}
		select {
		case events <- app.InputEvent{Event: event, PolicyFlags: flags}:
		case <-ctx.Done():
			return
		}
	}
}

// feedRealtime paces the recording against the wall clock. Event timestamps
// are shifted onto the current clock so flush deadlines from the frame
// ticker line up.
func feedRealtime(ctx context.Context, reader *trace.Reader, events chan<- app.InputEvent, logger log.Logger) {
	defer close(events)
	var offset int64
	var last int64
	for {
		event, flags, err := reader.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Error("read recording", log.Err(err))
			}
			return
		}
		ts := event.EventTimeNanos()
		if offset == 0 {
			offset = time.Now().UnixNano() - ts
			last = ts
		}
		if delta := ts - last; delta > 0 {
			select {
			case <-time.After(time.Duration(delta)):
			case <-ctx.Done():
				return
			}
		}
		last = ts
		retime(event, offset)
		select {
		case events <- app.InputEvent{Event: event, PolicyFlags: flags}:
		case <-ctx.Done():
			return
		}
	}
}

// retime shifts all sample timestamps by offset nanoseconds.
func retime(event *domain.MotionEvent, offset int64) {
	event.DownTimeNanos += offset
	for i := range event.Samples {
		event.Samples[i].EventTimeNanos += offset
	}
}

func openRecording(path string) (*trace.Reader, error) {
	if path == "-" {
		return trace.NewReader(os.Stdin), nil
	}
	return trace.Open(path)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}
