package usecase

import (
	"context"

	"github.com/example/commerce-service/internal/domain"
)

// RegisterCustomer creates a customer, announcing it through Events.
type RegisterCustomer struct {
	Repo   domain.CustomerRepository
	Events domain.EventNotifier
}

func (uc RegisterCustomer) Execute(ctx context.Context, id, name string) (*domain.Customer, error) {
	var opts []domain.CustomerOption
	if uc.Events != nil {
		opts = append(opts, domain.WithNotifier(uc.Events))
	}
	c, err := domain.NewCustomer(ctx, id, name, opts...)
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ChangeCustomerAddress stores a new address. A failing address handler
// aborts the change before anything is persisted.
type ChangeCustomerAddress struct {
	Repo domain.CustomerRepository
}

func (uc ChangeCustomerAddress) Execute(ctx context.Context, id string, addr domain.Address) (*domain.Customer, error) {
	c, err := uc.Repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.ChangeAddress(ctx, addr); err != nil {
		return nil, err
	}
	if err := uc.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

type ActivateCustomer struct {
	Repo domain.CustomerRepository
}

func (uc ActivateCustomer) Execute(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := uc.Repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Activate(); err != nil {
		return nil, err
	}
	if err := uc.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
