package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS customers (
  id text PRIMARY KEY,
  name text NOT NULL,
  street text,
  number integer,
  zipcode text,
  city text,
  active boolean NOT NULL DEFAULT false,
  reward_points integer NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS products (
  id text PRIMARY KEY,
  name text NOT NULL,
  price double precision NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
  id text PRIMARY KEY,
  customer_id text NOT NULL REFERENCES customers(id),
  total double precision NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
  id text PRIMARY KEY,
  name text NOT NULL,
  price double precision NOT NULL,
  quantity integer NOT NULL,
  product_id text NOT NULL REFERENCES products(id),
  order_id text NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  position integer NOT NULL
);
CREATE INDEX IF NOT EXISTS order_items_order_id_idx ON order_items(order_id, position);
`

// EnsureSchema creates the tables if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaDDL)
	return err
}

// DropSchema removes every table EnsureSchema creates.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS order_items, orders, products, customers`)
	return err
}
