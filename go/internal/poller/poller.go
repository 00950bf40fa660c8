package poller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Poller runs async actions immediately and then on a fixed interval
// until stopped. Ticks are fire-and-forget: an action still in flight
// when the next tick fires does not delay or suppress that tick, so
// overlapping invocations are possible and callers must guard result
// application themselves (generation check at apply time).
type Poller struct {
	clock clockwork.Clock
}

// New creates a Poller on the given clock. Use clockwork.NewRealClock()
// in production and a FakeClock in tests.
func New(clock clockwork.Clock) *Poller {
	return &Poller{clock: clock}
}

// Handle identifies one running poll loop.
type Handle struct {
	id       string
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// ID returns a short identifier for the loop, used in logging.
func (h *Handle) ID() string {
	return h.id
}

// Start invokes action now and then every interval. The action receives
// ctx, not the loop's internal context: stopping the handle cancels
// future ticks but never aborts an invocation already in flight.
func (p *Poller) Start(ctx context.Context, interval time.Duration, action func(context.Context)) *Handle {
	loopCtx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:     uuid.New().String()[:8],
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)

		go action(ctx)

		ticker := p.clock.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				log.Debug().Str("poll_id", h.id).Msg("poll loop stopped")
				return
			case <-ticker.Chan():
				go action(ctx)
			}
		}
	}()

	log.Debug().Str("poll_id", h.id).Dur("interval", interval).Msg("poll loop started")
	return h
}

// Stop cancels all future ticks and waits for the loop goroutine to
// exit. Idempotent. Invocations already issued keep running; their
// results must be discarded by the caller.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		h.cancel()
		<-h.done
	})
}
