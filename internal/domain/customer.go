package domain

import (
	"context"

	"github.com/example/commerce-service/internal/domain/event"
)

type Customer struct {
	id           string
	name         string
	address      *Address
	active       bool
	rewardPoints int
	events       EventNotifier
}

type CustomerOption func(*Customer)

// WithNotifier makes the customer announce its state changes through n.
// Handlers are expected to be registered on n beforehand.
func WithNotifier(n EventNotifier) CustomerOption {
	return func(c *Customer) { c.events = n }
}

// NewCustomer validates id and name and, when a notifier is attached,
// announces CustomerCreatedEvent once.
func NewCustomer(ctx context.Context, id, name string, opts ...CustomerOption) (*Customer, error) {
	c := &Customer{id: id, name: name}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := c.notify(ctx, event.New(CustomerCreatedEvent, CustomerCreated{ID: c.id, Name: c.name})); err != nil {
		return nil, err
	}
	return c, nil
}

// CustomerSnapshot is the persisted form of a customer.
type CustomerSnapshot struct {
	ID           string
	Name         string
	Address      *Address
	Active       bool
	RewardPoints int
}

// RestoreCustomer rebuilds a customer from storage without emitting events.
func RestoreCustomer(s CustomerSnapshot, opts ...CustomerOption) (*Customer, error) {
	c := &Customer{id: s.ID, name: s.Name, active: s.Active, rewardPoints: s.RewardPoints}
	if s.Address != nil {
		addr := *s.Address
		c.address = &addr
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) Snapshot() CustomerSnapshot {
	s := CustomerSnapshot{ID: c.id, Name: c.name, Active: c.active, RewardPoints: c.rewardPoints}
	if c.address != nil {
		addr := *c.address
		s.Address = &addr
	}
	return s
}

func (c *Customer) ID() string        { return c.id }
func (c *Customer) Name() string      { return c.name }
func (c *Customer) IsActive() bool    { return c.active }
func (c *Customer) RewardPoints() int { return c.rewardPoints }

// Address reports the current address and whether one was set.
func (c *Customer) Address() (Address, bool) {
	if c.address == nil {
		return Address{}, false
	}
	return *c.address, true
}

func (c *Customer) ChangeName(name string) error {
	if name == "" {
		return invalid("customer", "name", "is required")
	}
	c.name = name
	return nil
}

// ChangeAddress stores addr and announces CustomerAddressChangedEvent. The
// address stays changed even if a handler fails; the handler error is
// returned.
func (c *Customer) ChangeAddress(ctx context.Context, addr Address) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	c.address = &addr
	return c.notify(ctx, event.New(CustomerAddressChangedEvent, CustomerAddressChanged{
		ID:      c.id,
		Name:    c.name,
		Address: addr,
	}))
}

// Activate requires an address.
func (c *Customer) Activate() error {
	if c.address == nil {
		return invalid("customer", "address", "is mandatory to activate a customer")
	}
	c.active = true
	return nil
}

func (c *Customer) Deactivate() { c.active = false }

func (c *Customer) AddRewardPoints(points int) { c.rewardPoints += points }

func (c *Customer) validate() error {
	if c.id == "" {
		return invalid("customer", "id", "is required")
	}
	if c.name == "" {
		return invalid("customer", "name", "is required")
	}
	return nil
}

func (c *Customer) notify(ctx context.Context, e event.Event) error {
	if c.events == nil {
		return nil
	}
	return c.events.Notify(ctx, e)
}
