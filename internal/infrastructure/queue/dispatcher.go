// Package queue provides an in-process sharded dispatcher for outbound mail.
package queue

import (
	"context"
	"errors"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/api/metrics"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// ErrQueueFull is returned when a worker queue cannot accept more mail.
var ErrQueueFull = errors.New("mail queue full")

type mailJob struct {
	Email    string
	Username string
	Token    string
}

// MailDispatcher delivers verification email asynchronously through a fixed
// set of workers, sharded by recipient so retries for one address never
// reorder against each other. It implements ports.MailSender, wrapping the
// real sender.
type MailDispatcher struct {
	workers []chan mailJob
	sender  ports.MailSender
	log     zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, sender ports.MailSender, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan mailJob, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan mailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// SendVerification enqueues the message for asynchronous delivery. It returns
// an error only when the worker queue for this recipient is full.
func (d *MailDispatcher) SendVerification(_ context.Context, email, username, token string) error {
	job := mailJob{Email: email, Username: username, Token: token}
	select {
	case d.workers[d.shardIndex(email)] <- job:
		return nil
	default:
		metrics.VerificationEmailsTotal.WithLabelValues("failed").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *MailDispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan mailJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.SendVerification(ctx, job.Email, job.Username, job.Token); err != nil {
				metrics.VerificationEmailsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("email", job.Email).
					Int("worker_id", id).
					Msg("verification mail delivery failed")
				continue
			}
			metrics.VerificationEmailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
