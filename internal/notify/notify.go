// Package notify carries user-facing notifications from the stores to
// whatever presentation layer is listening. It is a fire-and-forget
// channel: stores publish and never read a response.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"storefront/internal/obs"
)

// Topic is the watermill topic notifications are published on.
const Topic = "notifications"

// Kind classifies a notification for the presentation layer.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notification is a user-facing signal, distinct from an error return.
type Notification struct {
	ID      uuid.UUID `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
}

// Sink accepts notifications from the stores.
type Sink interface {
	Publish(n Notification)
}

// Success is a convenience constructor.
func Success(msg string) Notification { return Notification{ID: uuid.New(), Kind: KindSuccess, Message: msg} }

// Error is a convenience constructor.
func Error(msg string) Notification { return Notification{ID: uuid.New(), Kind: KindError, Message: msg} }

// Info is a convenience constructor.
func Info(msg string) Notification { return Notification{ID: uuid.New(), Kind: KindInfo, Message: msg} }

// Bus is a Sink backed by an in-process watermill pub/sub.
type Bus struct {
	pubsub  *gochannel.GoChannel
	metrics *obs.Metrics
	logger  *slog.Logger
}

// NewBus creates an in-process notification bus.
func NewBus(metrics *obs.Metrics, logger *slog.Logger) *Bus {
	return &Bus{
		pubsub:  gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NopLogger{}),
		metrics: metrics,
		logger:  logger,
	}
}

// Publish sends the notification to all subscribers. Delivery failures
// are logged, never surfaced to the publishing store.
func (b *Bus) Publish(n Notification) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	payload, err := json.Marshal(n)
	if err != nil {
		b.logger.Error("marshal notification", "err", err)
		return
	}

	msg := message.NewMessage(n.ID.String(), payload)
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		b.logger.Error("publish notification", "err", err)
		return
	}

	b.metrics.Notifications.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("kind", string(n.Kind))))
}

// Subscribe returns a channel of raw notification messages.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, Topic)
}

// Close shuts the underlying pub/sub down.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Recorder is a Sink that remembers everything published to it.
// Intended for tests.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish appends the notification to the record.
func (r *Recorder) Publish(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// All returns a copy of everything published so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}
