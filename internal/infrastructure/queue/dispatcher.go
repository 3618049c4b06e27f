package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/radnom/storefront-api/internal/api/metrics"
	"github.com/radnom/storefront-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher delivers queued mail on a fixed set of workers, sharded by
// recipient so repeated mail to one address stays ordered. Delivery happens
// off the request path; a full worker channel drops the job rather than
// block a login or reset request.
type Dispatcher struct {
	workers []chan ports.MailJob
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.MailJob, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a mail job to the worker responsible for its recipient.
func (d *Dispatcher) Enqueue(job ports.MailJob) {
	idx := d.shardIndex(job.To)
	select {
	case d.workers[idx] <- job:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ResetEmailsTotal.WithLabelValues("error").Inc()
		d.log.Error().Str("to", job.To).Int("worker_id", idx).Msg("mail queue full, job dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MailJob) {
	gauge := metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if err := d.mailer.SendPasswordReset(ctx, job.To, job.ResetLink); err != nil {
				metrics.ResetEmailsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("to", job.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			metrics.ResetEmailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
