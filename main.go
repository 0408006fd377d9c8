package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/tschuyebuhl/opinion-scraper/browser"
	"github.com/tschuyebuhl/opinion-scraper/cache"
	"github.com/tschuyebuhl/opinion-scraper/config"
	"github.com/tschuyebuhl/opinion-scraper/data"
	"github.com/tschuyebuhl/opinion-scraper/report"
	"github.com/tschuyebuhl/opinion-scraper/runner"
	"github.com/tschuyebuhl/opinion-scraper/scraper"
	"github.com/tschuyebuhl/opinion-scraper/translate"
)

const (
	exitOK    = 0
	exitSetup = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("opinion-scraper", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modeFlag := fs.String("mode", string(config.ModeLocal), "run mode: local (one Chrome) or remote (five BrowserStack sessions)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	mode, err := config.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(mode, getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitSetup
	}

	runID := uuid.NewString()
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel})).
		With("run", runID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		RunMetricsServer(cfg.MetricsAddr)
	}

	google, err := translate.NewGoogle(ctx, cfg.Google.ProjectID, cfg.Google.CredentialsFile)
	if err != nil {
		slog.Error("translation client setup failed", "error", err)
		return exitSetup
	}
	defer func() {
		if err := google.Close(); err != nil {
			slog.Error("closing translation client", "error", err)
		}
	}()

	acq, caps := sessions(cfg, runID)
	r := runner.New(acq, fetcher(cfg), translate.NewMemo(google, cache.NewInMemoryCache[string]()))

	slog.Info("run starting", "mode", cfg.Mode, "sessions", len(caps), "listing", cfg.ListingURL)
	res := r.Run(ctx, caps)
	slog.Info("run finished", "articles", len(res.Articles), "failed_sessions", res.Failed())

	UpdateMetrics(res)
	if err := report.New(stdout).Write(res); err != nil {
		slog.Error("writing report", "error", err)
		return exitSetup
	}

	if cfg.MetricsAddr != "" {
		slog.Info("metrics still served, waiting for termination signal", "addr", cfg.MetricsAddr)
		<-ctx.Done()
	}
	return exitOK
}

func sessions(cfg *config.Config, runID string) (browser.Acquirer, []data.Capability) {
	if cfg.Mode == config.ModeRemote {
		build := "opinion-scraper " + runID[:8]
		return browser.NewRemote(cfg.BrowserStack.HubURL, cfg.BrowserStack.Username, cfg.BrowserStack.AccessKey, build), cfg.Capabilities
	}
	return browser.NewLocal(cfg.Chromedriver.Path, cfg.Chromedriver.Port, cfg.Chromedriver.Headless),
		[]data.Capability{browser.LocalCapability()}
}

func fetcher(cfg *config.Config) *scraper.Fetcher {
	var images *scraper.ImageSaver
	if cfg.ImagesDir != "" {
		images = scraper.NewImageSaver(cfg.ImagesDir, &http.Client{Timeout: 15 * time.Second})
	}
	return scraper.NewFetcher(cfg.ListingURL, images)
}
