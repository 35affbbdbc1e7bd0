// Package eventlog holds event handlers whose side effect is a log line.
package eventlog

import (
	"context"
	"fmt"

	"github.com/example/commerce-service/internal/domain"
	"github.com/example/commerce-service/internal/domain/event"
	"github.com/example/commerce-service/internal/platform/logger"
)

// CreatedLogger logs Message for every CustomerCreatedEvent.
type CreatedLogger struct {
	Log     *logger.Logger
	Message string
}

func (h *CreatedLogger) Handle(_ context.Context, e event.Event) error {
	data, ok := e.Data().(domain.CustomerCreated)
	if !ok {
		return fmt.Errorf("eventlog: unexpected payload %T for %s", e.Data(), e.Name())
	}
	h.Log.Info(h.Message, "event", string(e.Name()), "event_id", e.ID(), "customer", data.ID)
	return nil
}

// AddressChangedLogger logs the new address of a customer.
type AddressChangedLogger struct {
	Log *logger.Logger
}

func (h *AddressChangedLogger) Handle(_ context.Context, e event.Event) error {
	data, ok := e.Data().(domain.CustomerAddressChanged)
	if !ok {
		return fmt.Errorf("eventlog: unexpected payload %T for %s", e.Data(), e.Name())
	}
	h.Log.Info(fmt.Sprintf("customer address: %s, %s changed to: %s", data.ID, data.Name, data.Address),
		"event_id", e.ID(), "occurred_at", e.OccurredAt())
	return nil
}

// RegisterCustomerHandlers wires the customer log handlers onto d. Call it
// once when composing the application.
func RegisterCustomerHandlers(d *event.Dispatcher, log *logger.Logger) {
	d.Register(domain.CustomerCreatedEvent, &CreatedLogger{Log: log, Message: "first handler: customer created"})
	d.Register(domain.CustomerCreatedEvent, &CreatedLogger{Log: log, Message: "second handler: customer created"})
	d.Register(domain.CustomerAddressChangedEvent, &AddressChangedLogger{Log: log})
}
