package domain

import (
	"context"

	"github.com/example/commerce-service/internal/domain/event"
)

const (
	CustomerCreatedEvent        event.Name = "CustomerCreated"
	CustomerAddressChangedEvent event.Name = "CustomerAddressChanged"
)

// CustomerCreated is the payload of CustomerCreatedEvent.
type CustomerCreated struct {
	ID   string
	Name string
}

// CustomerAddressChanged is the payload of CustomerAddressChangedEvent.
type CustomerAddressChanged struct {
	ID      string
	Name    string
	Address Address
}

// EventNotifier delivers domain events to whoever registered for them.
// *event.Dispatcher satisfies it.
type EventNotifier interface {
	Notify(ctx context.Context, e event.Event) error
}
