// Package mail sends tracking notifications over SMTP. Sending is decoupled
// from the request path by a bounded in-memory queue: lifecycle operations
// enqueue and return, a single worker drains.
package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/PaintToxic22/sistema-rastreo/config"
)

// message is one outgoing email.
type message struct {
	To      string
	Subject string
	Body    string
}

// sender delivers one message synchronously.
type sender interface {
	Send(msg message) error
}

// gomailSender delivers through an SMTP relay using gomail. A fresh dial per
// message keeps the worker free of stale-connection handling; volume is low.
type gomailSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *gomailSender) Send(msg message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	return s.dialer.DialAndSend(m)
}

// ErrQueueFull is returned when the dispatch queue cannot take more messages.
// Callers treat it as any other notification failure: log and move on.
var ErrQueueFull = errors.New("mail queue is full")

// Dispatcher owns the queue and the worker goroutine.
type Dispatcher struct {
	queue       chan message
	sender      sender
	sendTimeout time.Duration
	logger      *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewDispatcher builds a dispatcher backed by the configured SMTP relay.
func NewDispatcher(cfg *config.SMTPConfig, logger *slog.Logger) *Dispatcher {
	return newDispatcher(&gomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, cfg.QueueSize, cfg.SendTimeout, logger)
}

func newDispatcher(s sender, queueSize int, sendTimeout time.Duration, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}

	return &Dispatcher{
		queue:       make(chan message, queueSize),
		sender:      s,
		sendTimeout: sendTimeout,
		logger:      logger,
		stop:        make(chan struct{}),
	}
}

// Start launches the worker. Safe to call once; wired to the Fx OnStart hook.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop drains nothing: queued messages not yet picked up are dropped, which
// is acceptable for best-effort notifications. Blocks until the worker exits.
func (d *Dispatcher) Stop() {
	d.once.Do(func() { close(d.stop) })
	d.wg.Wait()
}

// Enqueue hands a message to the worker without blocking the caller.
func (d *Dispatcher) Enqueue(msg message) error {
	select {
	case d.queue <- msg:
		return nil
	default:
		return errors.WithStack(ErrQueueFull)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case <-d.stop:
			return
		case msg := <-d.queue:
			d.deliver(msg)
		}
	}
}

func (d *Dispatcher) deliver(msg message) {
	done := make(chan error, 1)
	go func() { done <- d.sender.Send(msg) }()

	timeout := d.sendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var err error
	select {
	case err = <-done:
	case <-time.After(timeout):
		err = context.DeadlineExceeded
	}

	if err != nil {
		d.logger.Warn("Failed to send notification email",
			slog.String("to", msg.To), slog.String("subject", msg.Subject), slog.Any("error", err))

		return
	}

	d.logger.Debug("Notification email sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
}
