package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher decouples request handling from broker delivery: events are
// enqueued without blocking and routed to a fixed set of workers using
// consistent hashing on the event key, guaranteeing per-aggregate
// publish ordering. It satisfies ports.EventPublisher so services never
// see the asynchrony.
type Dispatcher struct {
	workers []chan domain.Event
	sink    ports.EventPublisher
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher delivering to sink with numWorkers
// sharded workers. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Event, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Event, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues the event on the worker responsible for its key. The
// call never fails; a full worker channel drops the event with a warning
// rather than stalling the request path.
func (d *Dispatcher) Publish(ctx context.Context, event domain.Event) error {
	select {
	case d.workers[d.shardIndex(event.Key)] <- event:
	default:
		d.log.Warn().Str("event", event.Name).Str("key", event.Key).Msg("event queue full, dropping event")
	}
	return nil
}

// shardIndex maps an event key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Publish(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("event", event.Name).
					Str("key", event.Key).
					Int("worker_id", id).
					Msg("event delivery failed")
			}
		}
	}
}
