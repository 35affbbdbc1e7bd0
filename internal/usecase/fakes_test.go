package usecase

import (
	"context"
	"sort"

	"github.com/example/commerce-service/internal/domain"
)

type memOrders struct {
	byID      map[string]*domain.Order
	findCalls int
	failWith  error
}

func newMemOrders() *memOrders { return &memOrders{byID: map[string]*domain.Order{}} }

func (m *memOrders) Create(_ context.Context, o *domain.Order) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.byID[o.ID()]; ok {
		return domain.ErrConflict
	}
	m.byID[o.ID()] = o.Clone()
	return nil
}

func (m *memOrders) Update(_ context.Context, o *domain.Order) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.byID[o.ID()]; !ok {
		return domain.ErrNotFound
	}
	m.byID[o.ID()] = o.Clone()
	return nil
}

func (m *memOrders) Find(_ context.Context, id string) (*domain.Order, error) {
	m.findCalls++
	o, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (m *memOrders) FindAll(context.Context) ([]*domain.Order, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.byID[id].Clone())
	}
	return out, nil
}

type memProducts map[string]*domain.Product

func (m memProducts) Create(_ context.Context, p *domain.Product) error {
	m[p.ID()] = p
	return nil
}

func (m memProducts) Update(ctx context.Context, p *domain.Product) error { return m.Create(ctx, p) }

func (m memProducts) Find(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m memProducts) FindAll(context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out, nil
}

type memCustomers struct {
	byID     map[string]domain.CustomerSnapshot
	notifier domain.EventNotifier
}

func newMemCustomers(n domain.EventNotifier) *memCustomers {
	return &memCustomers{byID: map[string]domain.CustomerSnapshot{}, notifier: n}
}

func (m *memCustomers) Create(_ context.Context, c *domain.Customer) error {
	if _, ok := m.byID[c.ID()]; ok {
		return domain.ErrConflict
	}
	m.byID[c.ID()] = c.Snapshot()
	return nil
}

func (m *memCustomers) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := m.byID[c.ID()]; !ok {
		return domain.ErrNotFound
	}
	m.byID[c.ID()] = c.Snapshot()
	return nil
}

func (m *memCustomers) Find(_ context.Context, id string) (*domain.Customer, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var opts []domain.CustomerOption
	if m.notifier != nil {
		opts = append(opts, domain.WithNotifier(m.notifier))
	}
	return domain.RestoreCustomer(s, opts...)
}

func (m *memCustomers) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	var out []*domain.Customer
	for id := range m.byID {
		c, err := m.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
