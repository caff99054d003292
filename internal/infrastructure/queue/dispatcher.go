package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/czarstudio/studio-api/internal/core/ports"
	"github.com/czarstudio/studio-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on the actor id, so one actor's entries are written in order.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and stop
// when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an entry to the worker responsible for its actor. It never
// blocks: when the worker buffer is full the entry is dropped and counted.
func (d *Dispatcher) Enqueue(entry ports.ActivityInput) {
	idx := d.shardIndex(entry.ActorID)
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("action", entry.Action).
			Str("actor_id", entry.ActorID).
			Int("worker_id", idx).
			Msg("activity queue full, entry dropped")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			d.drain(id, label, ch)
			return
		case entry := <-ch:
			d.process(ctx, id, label, ch, entry)
		}
	}
}

// drain persists what is still buffered after shutdown, bounded by drainTimeout.
func (d *Dispatcher) drain(id int, label string, ch <-chan ports.ActivityInput) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case entry := <-ch:
			d.process(ctx, id, label, ch, entry)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, label string, ch <-chan ports.ActivityInput, entry ports.ActivityInput) {
	metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

	start := time.Now()
	if err := d.service.Record(ctx, entry); err != nil {
		d.log.Error().Err(err).
			Str("action", entry.Action).
			Str("actor_id", entry.ActorID).
			Int("worker_id", id).
			Msg("activity recording failed")
		return
	}
	metrics.ActivityProcessingDuration.Observe(time.Since(start).Seconds())
}
