package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/five82/lotwatch/internal/config"
	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/prefs"
	"github.com/five82/lotwatch/internal/state"
	"github.com/five82/lotwatch/internal/ui"
	"github.com/five82/lotwatch/internal/voucher"
)

// Options configure the lotwatch console.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/lotwatch/prefs.toml
	PollEvery   int    // seconds; zero uses the configured value
	Search      string // initial filter; empty restores the last one used
	MetricsAddr string // overrides metrics_addr when set
}

// Run boots the lotwatch TUI until the context is cancelled or the operator
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}
	if addr := strings.TrimSpace(opts.MetricsAddr); addr != "" {
		cfg.MetricsAddr = addr
	}

	logger, closer, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := parking.NewClient(cfg.APIURL, logger)
	if err != nil {
		return fmt.Errorf("init parking client: %w", err)
	}
	logger.Info("lotwatch starting", "api", client.BaseURL(), "poll", cfg.PollInterval().String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.MetricsAddr != "" {
		if _, err := serveMetrics(ctx, cfg.MetricsAddr, logger); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
	}

	var printer voucher.Printer
	if cfg.PrinterAddr != "" {
		printer = voucher.NewNetworkPrinter(cfg.PrinterAddr)
	}

	store := &state.Store{}
	poller := NewPoller(store, client, logger, cfg.PollInterval())

	search := opts.Search
	if strings.TrimSpace(search) == "" {
		search = userPrefs.LastSearch
	}
	poller.SetSearch(ctx, search)
	poller.Start(ctx)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Poller:    poller,
		Config:    &cfg,
		Logger:    logger,
		Printer:   printer,
		ClockTick: time.Second,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
	cancel()
	logger.Info("lotwatch stopped")
	return err
}
