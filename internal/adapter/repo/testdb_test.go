package repo

import (
	"context"
	"os"
	"testing"

	"github.com/example/commerce-service/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// testPool connects to TEST_POSTGRES_DSN and recreates the schema. Tests are
// skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, DropSchema(ctx, pool))
	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func seedCustomer(t *testing.T, pool *pgxpool.Pool, id, name string) *domain.Customer {
	t.Helper()
	ctx := context.Background()
	c, err := domain.NewCustomer(ctx, id, name)
	require.NoError(t, err)
	addr, err := domain.NewAddress("Street 1", 1, "Zipcode 1", "City 1")
	require.NoError(t, err)
	require.NoError(t, c.ChangeAddress(ctx, addr))
	require.NoError(t, NewPostgresCustomerRepo(pool, nil, nil).Create(ctx, c))
	return c
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, id, name string, price float64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, name, price)
	require.NoError(t, err)
	require.NoError(t, NewPostgresProductRepo(pool, nil).Create(context.Background(), p))
	return p
}

func itemFor(t *testing.T, id string, p *domain.Product, qty int) domain.OrderItem {
	t.Helper()
	it, err := domain.NewOrderItem(id, p.Name(), p.Price(), p.ID(), qty)
	require.NoError(t, err)
	return it
}
