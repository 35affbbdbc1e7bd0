// Package event provides in-process domain events and a synchronous
// dispatcher that delivers them to registered handlers.
package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Name identifies an event type. Handlers are registered per Name.
type Name string

// Event is an immutable record of something that happened in the domain.
type Event struct {
	id         string
	name       Name
	occurredAt time.Time
	data       any
}

// ErrEmptyName is returned when an event without a name is delivered.
var ErrEmptyName = errors.New("event: name is required")

// New stamps an event with a fresh id and the current time. name must be
// non-empty; the dispatcher refuses to deliver unnamed events.
func New(name Name, data any) Event {
	return Event{
		id:         uuid.NewString(),
		name:       name,
		occurredAt: time.Now().UTC(),
		data:       data,
	}
}

func (e Event) ID() string            { return e.id }
func (e Event) Name() Name            { return e.name }
func (e Event) OccurredAt() time.Time { return e.occurredAt }

// Data returns the payload. Its concrete type depends on the event name.
func (e Event) Data() any { return e.data }

// Handler reacts to a delivered event.
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

// HandlerFunc adapts a plain function to Handler. Func values are not
// comparable, so a HandlerFunc cannot be removed with Unregister.
type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error { return f(ctx, e) }
