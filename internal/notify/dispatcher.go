// Package notify fans push notifications out to a user's registered devices.
//
// Requests hand a Message to Enqueue and return immediately. A fixed pool of
// workers resolves the receiver's devices, writes one delivery record per
// device and passes the message to a Pusher.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"photofeed/internal/metrics"
	"photofeed/internal/models"
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 1024
)

var ErrClosed = errors.New("dispatcher closed")

// Message is one notification addressed to a user.
type Message struct {
	Action      string
	Text        string
	ReceiverID  string
	SenderID    *string
	ContentType string
	ObjectID    int64
}

// Pusher delivers a message to one device.
type Pusher interface {
	Push(ctx context.Context, device models.Device, msg Message) error
}

// DeviceLister resolves a user's active devices.
type DeviceLister interface {
	ListActiveByUser(ctx context.Context, userID string) ([]models.Device, error)
}

// Recorder stores the delivery history.
type Recorder interface {
	Create(ctx context.Context, record *models.PushNotificationRecord) error
}

// Dispatcher is a bounded in-memory queue drained by a worker pool.
type Dispatcher struct {
	devices DeviceLister
	records Recorder
	pusher  Pusher

	workers   int
	queueSize int
	log       zerolog.Logger

	queue  chan Message
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(devices DeviceLister, records Recorder, pusher Pusher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		devices:   devices,
		records:   records,
		pusher:    pusher,
		workers:   defaultWorkers,
		queueSize: defaultQueueSize,
		log:       log.Logger.With().Str("component", "notify").Logger(),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.queue = make(chan Message, d.queueSize)
	return d
}

// Start launches the workers. They stop once Shutdown closes the queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(ctx, i)
	}
	d.log.Info().Int("workers", d.workers).Int("queue_size", d.queueSize).Msg("notification dispatcher started")
}

// Enqueue hands msg to the workers without blocking. It returns false when
// the queue is full or closed.
func (d *Dispatcher) Enqueue(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.NotificationsDropped.Inc()
		return false
	}

	select {
	case d.queue <- msg:
		metrics.NotificationsEnqueued.WithLabelValues(msg.Action).Inc()
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		return true
	default:
		metrics.NotificationsDropped.Inc()
		d.log.Warn().Str("action", msg.Action).Int64("object_id", msg.ObjectID).Msg("notification queue full, dropping")
		return false
	}
}

// Shutdown stops accepting messages and waits for queued ones to be delivered.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notification drain timed out: %w", ctx.Err())
	}
}

func (d *Dispatcher) run(ctx context.Context, id int) {
	defer d.wg.Done()

	for msg := range d.queue {
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		if err := d.deliver(ctx, msg); err != nil {
			d.log.Error().Err(err).Int("worker", id).Str("action", msg.Action).
				Int64("object_id", msg.ObjectID).Msg("notification delivery failed")
		}
	}
}

// deliver records and pushes msg to every active device of the receiver.
func (d *Dispatcher) deliver(ctx context.Context, msg Message) error {
	devices, err := d.devices.ListActiveByUser(ctx, msg.ReceiverID)
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}

	if len(devices) == 0 {
		d.log.Debug().Str("receiver", msg.ReceiverID).Msg("no devices registered, skipping")
		return nil
	}

	receiver := msg.ReceiverID
	var errs []error
	for _, device := range devices {
		deviceID := device.DeviceID
		err := d.records.Create(ctx, &models.PushNotificationRecord{
			Action:      msg.Action,
			Message:     msg.Text,
			DeviceID:    &deviceID,
			SenderID:    msg.SenderID,
			ReceiverID:  &receiver,
			ContentType: msg.ContentType,
			ObjectID:    msg.ObjectID,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("record device %d: %w", deviceID, err))
			continue
		}
		if err := d.pusher.Push(ctx, device, msg); err != nil {
			metrics.NotificationsDelivered.WithLabelValues("error").Inc()
			errs = append(errs, fmt.Errorf("push device %d: %w", deviceID, err))
			continue
		}
		metrics.NotificationsDelivered.WithLabelValues("ok").Inc()
	}

	return errors.Join(errs...)
}
