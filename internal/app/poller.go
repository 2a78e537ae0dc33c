package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second

	// Operator-requested refreshes are rate limited; a dropped request is
	// covered by the next tick.
	refreshRate  = rate.Limit(2)
	refreshBurst = 3
)

// Poller refreshes the store on a fixed cadence and on demand. Every fetch
// runs in its own goroutine and is never cancelled; the store's sequence
// numbers decide which result is kept.
type Poller struct {
	store    *state.Store
	client   parking.API
	logger   *slog.Logger
	interval time.Duration
	limiter  *rate.Limiter
	updates  chan struct{}

	mu     sync.Mutex
	search string
	wg     sync.WaitGroup
}

// NewPoller builds a poller. It does nothing until Start or Refresh.
func NewPoller(store *state.Store, client parking.API, logger *slog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Poller{
		store:    store,
		client:   client,
		logger:   logger,
		interval: interval,
		limiter:  rate.NewLimiter(refreshRate, refreshBurst),
		updates:  make(chan struct{}, 1),
	}
}

// Start launches the periodic refresh loop. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			p.spawn(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Refresh requests an immediate fetch. It reports false when the request was
// dropped by the rate limiter.
func (p *Poller) Refresh(ctx context.Context) bool {
	if !p.limiter.Allow() {
		p.logger.Debug("manual refresh throttled")
		return false
	}
	p.spawn(ctx)
	return true
}

// Trigger starts a fetch unconditionally. Used after a successful mutation,
// where the refresh must not be dropped.
func (p *Poller) Trigger(ctx context.Context) {
	p.spawn(ctx)
}

// SetSearch changes the filter used by subsequent fetches and refreshes.
func (p *Poller) SetSearch(ctx context.Context, term string) {
	p.mu.Lock()
	p.search = strings.TrimSpace(term)
	p.mu.Unlock()
	p.spawn(ctx)
}

// Search returns the active search term.
func (p *Poller) Search() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.search
}

// Updates signals after each fetch result is applied to the store. Signals
// coalesce; receivers should read the store rather than count signals.
func (p *Poller) Updates() <-chan struct{} {
	return p.updates
}

// Wait blocks until every fetch started so far has finished.
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) spawn(ctx context.Context) {
	seq := p.store.Begin()
	search := p.Search()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.fetch(ctx, seq, search)
	}()
}

func (p *Poller) fetch(ctx context.Context, seq uint64, search string) {
	cubicles, err := p.client.FetchSnapshot(ctx, search)
	if err != nil && ctx.Err() != nil {
		return
	}
	if !p.store.Update(seq, search, cubicles, err) {
		p.logger.Debug("stale snapshot dropped", "seq", seq)
		return
	}
	if err != nil {
		p.logger.Warn("snapshot poll failed", "seq", seq, "error", err)
	}
	select {
	case p.updates <- struct{}{}:
	default:
	}
}
