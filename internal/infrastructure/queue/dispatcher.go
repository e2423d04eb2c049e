package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffcore/employee-system/internal/api/metrics"
	"github.com/staffcore/employee-system/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// MailDispatcher delivers emails asynchronously through a fixed worker pool,
// decoupling SMTP latency and failures from request handling. Delivery is
// best-effort: failures are logged and counted, never propagated to the
// operation that queued the message.
type MailDispatcher struct {
	queue   chan ports.Email
	mailer  ports.Mailer
	workers int
	log     zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers delivery
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &MailDispatcher{
		queue:   make(chan ports.Email, channelBuffer),
		mailer:  mailer,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Enqueue queues an email for delivery. When the queue is full the message
// is dropped and logged rather than blocking the caller.
func (d *MailDispatcher) Enqueue(email ports.Email) {
	select {
	case d.queue <- email:
		metrics.MailQueueDepth.Set(float64(len(d.queue)))
	default:
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		d.log.Warn().Str("to", email.To).Str("subject", email.Subject).Msg("mail queue full, message dropped")
	}
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-d.queue:
			if !ok {
				return
			}
			metrics.MailQueueDepth.Set(float64(len(d.queue)))
			d.deliver(ctx, id, email)
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, workerID int, email ports.Email) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.mailer.Send(sendCtx, email); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("to", email.To).
			Str("subject", email.Subject).
			Int("worker_id", workerID).
			Msg("email delivery failed")
		return
	}

	metrics.EmailsSentTotal.WithLabelValues("sent").Inc()
	d.log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")
}
