package domain

import "context"

// OrderRepository persists the Order aggregate as one unit. Find returns an
// error matching ErrNotFound when no order has the given id.
type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Find(ctx context.Context, id string) (*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Find(ctx context.Context, id string) (*Customer, error)
	FindAll(ctx context.Context) ([]*Customer, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Find(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
}

// OrderCache is a fast read path for order snapshots.
type OrderCache interface {
	Get(id string) (*Order, bool)
	Set(o *Order)
	Delete(id string)
}
