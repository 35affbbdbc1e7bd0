package usecase

import (
	"context"
	"errors"

	"github.com/example/commerce-service/internal/domain"
)

// ItemInput names a product and how many of it go into an order. Name and
// price are taken from the stored product.
type ItemInput struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderInput struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Items      []ItemInput `json:"items"`
}

func buildItems(ctx context.Context, products domain.ProductRepository, in []ItemInput) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(in))
	for _, it := range in {
		p, err := products.Find(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := domain.NewOrderItem(it.ID, p.Name(), p.Price(), p.ID(), it.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// PlaceOrder builds a new order from stored products and persists it.
type PlaceOrder struct {
	Repo     domain.OrderRepository
	Products domain.ProductRepository
	Cache    domain.OrderCache
}

func (uc PlaceOrder) Execute(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	items, err := buildItems(ctx, uc.Products, in.Items)
	if err != nil {
		return nil, err
	}
	o, err := domain.NewOrder(in.ID, in.CustomerID, items)
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.Create(ctx, o); err != nil {
		return nil, err
	}
	if uc.Cache != nil {
		uc.Cache.Set(o)
	}
	return o, nil
}

// ChangeOrderItems replaces every item of a stored order.
type ChangeOrderItems struct {
	Repo     domain.OrderRepository
	Products domain.ProductRepository
	Cache    domain.OrderCache
}

func (uc ChangeOrderItems) Execute(ctx context.Context, orderID string, in []ItemInput) (*domain.Order, error) {
	o, err := uc.Repo.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := buildItems(ctx, uc.Products, in)
	if err != nil {
		return nil, err
	}
	if err := o.ChangeItems(items); err != nil {
		return nil, err
	}
	if err := uc.Repo.Update(ctx, o); err != nil {
		if uc.Cache != nil {
			uc.Cache.Delete(orderID)
		}
		return nil, err
	}
	if uc.Cache != nil {
		uc.Cache.Set(o)
	}
	return o, nil
}

// GetOrderByID reads through the cache.
type GetOrderByID struct {
	Repo  domain.OrderRepository
	Cache domain.OrderCache
}

func (uc GetOrderByID) Execute(ctx context.Context, id string) (*domain.Order, error) {
	if uc.Cache != nil {
		if o, ok := uc.Cache.Get(id); ok {
			return o, nil
		}
	}
	o, err := uc.Repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.Cache != nil {
		uc.Cache.Set(o)
	}
	return o, nil
}

type ListOrders struct {
	Repo domain.OrderRepository
}

func (uc ListOrders) Execute(ctx context.Context) ([]*domain.Order, error) {
	return uc.Repo.FindAll(ctx)
}

// LoadCache fills the cache with every stored order at startup.
type LoadCache struct {
	Repo  domain.OrderRepository
	Cache domain.OrderCache
}

func (uc LoadCache) Execute(ctx context.Context) (int, error) {
	orders, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, o := range orders {
		uc.Cache.Set(o)
	}
	return len(orders), nil
}

// IsNotFound reports whether err means the requested entity does not exist,
// as opposed to the store failing to answer.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
