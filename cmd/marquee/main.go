// marquee runs the home page animation engine.
//
// Windowed mode (default) opens an ebiten window showing the page: scroll
// with the wheel to reveal the sections, hover and click the cards to swap
// them. Stats are polled from the backend and the config file is watched
// for changes.
//
// Script mode (--script) replays a YAML scenario headlessly on a simulated
// clock and prints one line per frame.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/marquee"
	"github.com/phanxgames/marquee/feed"
	"github.com/phanxgames/marquee/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	backend    string
	scriptPath string
	debug      bool
	width      int
	height     int
}

func run(args []string, stdout io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("marquee", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to a YAML config file (watched for changes)")
	flagSet.StringVar(&opts.backend, "backend", "", "backend URL (overrides backend_url)")
	flagSet.StringVar(&opts.scriptPath, "script", "", "replay a YAML scenario headlessly and exit")
	flagSet.BoolVar(&opts.debug, "debug", false, "development logging and the frame overlay")
	flagSet.IntVar(&opts.width, "width", 960, "window width")
	flagSet.IntVar(&opts.height, "height", 640, "window height")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	logger, err := newLogger(opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := marquee.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		cfg.BackendURL = opts.backend
	}

	if opts.scriptPath != "" {
		return runScript(opts.scriptPath, cfg, logger, stdout)
	}
	return runWindow(opts, cfg, logger)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `marquee: home page reveal and panel swap engine.

Usage:
  marquee [flags]
  marquee --script scenario.yaml

Flags:
%s`, flagSet.FlagUsages())
}

// runScript replays a scenario on a manual clock and prints every frame.
func runScript(path string, cfg marquee.Config, logger *zap.Logger, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := marquee.LoadScript(data)
	if err != nil {
		return err
	}
	r := script.NewRun(cfg, logger)
	r.Run(func(s marquee.Snapshot) {
		fmt.Fprintln(stdout, formatSnapshot(s))
	})
	return nil
}

func formatSnapshot(s marquee.Snapshot) string {
	total, hourly := "-", "-"
	if s.CountersVisible {
		total = fmt.Sprint(s.Total)
		hourly = fmt.Sprint(s.Hourly)
	}
	return fmt.Sprintf("%6dms totals=%-5v trending=%-5v video=%-5v swapped=%-5v locked=%-5v hover=%v/%v a=(%g,%g,%.2f) b=(%g,%g,%.2f) total=%s hourly=%s",
		s.At.Milliseconds(),
		s.TotalsVisible, s.TrendingVisible, s.VideoVisible,
		s.State.Swapped, s.State.Animating, s.State.HoverA, s.State.HoverB,
		s.A.X, s.A.Y, s.A.Opacity, s.B.X, s.B.Y, s.B.Opacity,
		total, hourly)
}

// runWindow opens the ebiten window. The poller, trending fetch and config
// watcher run under an errgroup that is cancelled when the window closes.
func runWindow(opts options, cfg marquee.Config, logger *zap.Logger) error {
	engine := marquee.NewEngine(marquee.RealClock())
	engine.SetLogger(logger.Named("engine"))
	engine.SetDebugMode(opts.debug)

	sections := render.NewSections(float64(opts.width), float64(opts.height))
	viewport := marquee.NewViewport(float64(opts.width), float64(opts.height))
	page := marquee.NewPage(engine, cfg, sections.Anchors(viewport))
	defer page.Dispose()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	game := render.NewGame(page, viewport, sections, cfg, render.Options{
		Width:  opts.width,
		Height: opts.height,
		Debug:  opts.debug,
		Logger: logger.Named("render"),
		Done:   gctx.Done(),
	})

	client := &http.Client{Timeout: 10 * time.Second}
	poller := &feed.Poller{
		URL:      cfg.BackendURL,
		Interval: cfg.PollInterval,
		Client:   client,
		Logger:   logger.Named("feed"),
	}
	g.Go(func() error { return poller.Run(gctx, page) })
	g.Go(func() error {
		genres, err := feed.FetchTrending(gctx, client, cfg.BackendURL)
		if err != nil {
			logger.Warn("fetch trending failed", zap.Error(err))
			return nil
		}
		page.SetTrending(genres)
		return nil
	})
	if opts.configPath != "" {
		g.Go(func() error {
			return marquee.WatchConfig(gctx, opts.configPath, logger.Named("config"), game.Reload)
		})
	}

	ebiten.SetWindowSize(opts.width, opts.height)
	ebiten.SetWindowTitle("marquee")
	runErr := ebiten.RunGame(game)

	stop()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
