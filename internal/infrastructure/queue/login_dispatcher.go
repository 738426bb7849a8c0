package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
	drainTimeout   = 10 * time.Second
)

// ErrDispatcherStopped is returned by RecordLogin once the workers have exited.
var ErrDispatcherStopped = errors.New("login dispatcher stopped")

type loginEvent struct {
	userID string
	at     time.Time
}

// LoginDispatcher implements ports.LoginRecorder asynchronously. Events are
// sharded by user id so that writes for one identity are applied in order.
type LoginDispatcher struct {
	workers []chan loginEvent
	repo    ports.UserRepository
	log     zerolog.Logger

	stopped chan struct{}
	wg      sync.WaitGroup
}

var _ ports.LoginRecorder = (*LoginDispatcher)(nil)

// NewLoginDispatcher creates a dispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewLoginDispatcher(numWorkers int, repo ports.UserRepository, log zerolog.Logger) *LoginDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &LoginDispatcher{
		workers: make([]chan loginEvent, numWorkers),
		repo:    repo,
		log:     log,
		stopped: make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan loginEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. Once ctx is cancelled new logins are refused and
// each worker flushes what is already buffered before it exits.
func (d *LoginDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(d.stopped)
	}()
}

// Wait blocks until every worker has flushed its buffer and returned.
func (d *LoginDispatcher) Wait() {
	d.wg.Wait()
}

// RecordLogin queues a last-login write. It blocks only while the target
// shard's buffer is full.
func (d *LoginDispatcher) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	select {
	case <-d.stopped:
		return ErrDispatcherStopped
	default:
	}

	select {
	case d.workers[d.shardIndex(userID)] <- loginEvent{userID: userID, at: at}:
		return nil
	case <-d.stopped:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *LoginDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *LoginDispatcher) runWorker(ctx context.Context, id int, ch <-chan loginEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case ev := <-ch:
			d.write(ctx, id, ev)
		}
	}
}

// drain writes the events still buffered on ch within a single drainTimeout
// budget.
func (d *LoginDispatcher) drain(ctx context.Context, id int, ch <-chan loginEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	for {
		select {
		case ev := <-ch:
			if ctx.Err() != nil {
				d.log.Warn().
					Int("worker_id", id).
					Int("dropped", len(ch)+1).
					Msg("drain deadline reached, dropping last login writes")
				return
			}
			d.write(ctx, id, ev)
		default:
			return
		}
	}
}

// write applies one event. A write already taken off the queue is finished
// even if the dispatcher is being stopped.
func (d *LoginDispatcher) write(ctx context.Context, worker int, ev loginEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	at := ev.at.UTC()
	if _, err := d.repo.Update(ctx, ev.userID, ports.UserPatch{LastLogin: &at}); err != nil {
		d.log.Error().Err(err).
			Str("user_id", ev.userID).
			Int("worker_id", worker).
			Msg("last login write failed")
	}
}
