package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// Dispatcher runs every command in its own goroutine. The caller never waits
// for settlement. With a cap, at most maxWorkers commands settle at the same
// time and the rest queue on the semaphore, so that many hung wallet calls
// stall everything behind them. Without one, a hung call stalls its own
// worker only.
type Dispatcher struct {
	handler ports.CommandHandler
	sem     *semaphore.Weighted
	wg      sync.WaitGroup
	log     zerolog.Logger
}

// NewDispatcher creates a dispatcher. maxWorkers <= 0 means no cap.
func NewDispatcher(handler ports.CommandHandler, maxWorkers int64, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{handler: handler, log: log}
	if maxWorkers > 0 {
		d.sem = semaphore.NewWeighted(maxWorkers)
	}
	return d
}

// Dispatch hands msg to a new worker and returns immediately. The worker owns
// msg from here on.
func (d *Dispatcher) Dispatch(msg *domain.MessageContext) {
	d.wg.Add(1)
	go d.run(msg)
}

// Wait blocks until every dispatched worker has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(msg *domain.MessageContext) {
	defer d.wg.Done()

	// No deadline on the settlement itself.
	ctx := context.Background()
	if d.sem != nil {
		if err := d.sem.Acquire(ctx, 1); err != nil {
			d.log.Error().Err(err).Str("message_id", msg.MessageID).Msg("worker slot unavailable")
			return
		}
		defer d.sem.Release(1)
	}

	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(debug.Stack())).
				Str("platform", string(msg.Platform)).
				Str("message_id", msg.MessageID).
				Msg("worker panic recovered")
		}
	}()

	res, err := d.handler.Handle(ctx, msg)
	if err != nil {
		d.log.Error().Err(err).
			Str("platform", string(msg.Platform)).
			Str("sender_id", msg.SenderID).
			Str("message_id", msg.MessageID).
			Msg("command aborted")
		return
	}

	d.log.Info().
		Str("platform", string(msg.Platform)).
		Str("message_id", msg.MessageID).
		Str("intent", string(res.Intent)).
		Str("outcome", string(res.Kind)).
		Int("transferred", res.Transferred()).
		Msg("command settled")
}
