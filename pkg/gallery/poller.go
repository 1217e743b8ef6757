package gallery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/snap-party/snapparty/pkg/model"
)

// DefaultPollInterval matches the refresh cadence of the gallery view.
const DefaultPollInterval = 10 * time.Second

// Fetch pulls the full, newest-first photo list of an event.
type Fetch func(ctx context.Context) ([]model.Photo, error)

// NewPoller returns a poller that keeps an event's photo list current for a
// viewer. Every pull re-retrieves the full list; there is no delta fetching.
// onUpdate is invoked from a single goroutine, so results apply in pull
// order (last response wins).
func NewPoller(logger *slog.Logger, interval time.Duration, fetch Fetch, onUpdate func([]model.Photo)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		logger:   logger,
		interval: interval,
		fetch:    fetch,
		onUpdate: onUpdate,
		refresh:  make(chan struct{}, 1),
	}
}

type Poller struct {
	logger   *slog.Logger
	interval time.Duration
	fetch    Fetch
	onUpdate func([]model.Photo)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	refresh chan struct{}
}

// Start performs an immediate pull and then re-pulls on the fixed interval
// until Stop is called. Starting a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx)
}

// Stop cancels the recurring pull. A pull already in flight finishes but its
// result is discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Refresh requests an out-of-band immediate pull. It never blocks; a refresh
// already pending covers this one too.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.pull(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pull(ctx)
		case <-p.refresh:
			p.pull(ctx)
		}
	}
}

func (p *Poller) pull(ctx context.Context) {
	photos, err := p.fetch(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "Gallery pull failed", "error", err)
		return
	}
	if ctx.Err() != nil {
		// the viewer left while the pull was in flight
		return
	}
	p.onUpdate(photos)
}
