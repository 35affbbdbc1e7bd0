package repo

import (
	"context"
	"errors"
	"time"

	"github.com/example/commerce-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOrderRepo stores the Order aggregate in orders (root) and
// order_items (children). Writes to both tables share one transaction.
type PostgresOrderRepo struct {
	DB     Querier
	Runner TxRunner
	Hooks  Hooks
}

func NewPostgresOrderRepo(pool *pgxpool.Pool, hooks Hooks) *PostgresOrderRepo {
	return &PostgresOrderRepo{DB: pool, Runner: NewPoolTxRunner(pool), Hooks: hooks}
}

func (r *PostgresOrderRepo) Create(ctx context.Context, o *domain.Order) (err error) {
	const op = "order.create"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	err = r.Runner.InTx(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `INSERT INTO orders(id, customer_id, total) VALUES($1, $2, $3)`,
			o.ID(), o.CustomerID(), o.Total()); err != nil {
			return err
		}
		return insertItems(ctx, q, o)
	})
	return storeError(op, err)
}

// Update replaces the stored items of o and refreshes the root row. Readers
// see either the previous aggregate or the new one, never a mix.
func (r *PostgresOrderRepo) Update(ctx context.Context, o *domain.Order) (err error) {
	const op = "order.update"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	err = r.Runner.InTx(ctx, func(q Querier) error {
		var locked string
		if err := q.QueryRow(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, o.ID()).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		if _, err := q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID()); err != nil {
			return err
		}
		if err := insertItems(ctx, q, o); err != nil {
			return err
		}
		_, err := q.Exec(ctx, `UPDATE orders SET customer_id = $2, total = $3 WHERE id = $1`,
			o.ID(), o.CustomerID(), o.Total())
		return err
	})
	return storeError(op, err)
}

func (r *PostgresOrderRepo) Find(ctx context.Context, id string) (o *domain.Order, err error) {
	const op = "order.find"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	rows, err := r.DB.Query(ctx, selectOrders+` WHERE o.id = $1 ORDER BY i.position`, id)
	if err != nil {
		return nil, storeError(op, err)
	}
	records, err := scanOrders(rows)
	if err != nil {
		return nil, storeError(op, err)
	}
	if len(records) == 0 {
		return nil, notFound(op, nil)
	}
	o, err = records[0].toOrder()
	if err != nil {
		return nil, notFound(op, err)
	}
	return o, nil
}

func (r *PostgresOrderRepo) FindAll(ctx context.Context) (out []*domain.Order, err error) {
	const op = "order.find_all"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	rows, err := r.DB.Query(ctx, selectOrders+` ORDER BY o.id, i.position`)
	if err != nil {
		return nil, storeError(op, err)
	}
	records, err := scanOrders(rows)
	if err != nil {
		return nil, storeError(op, err)
	}
	out = make([]*domain.Order, 0, len(records))
	for _, rec := range records {
		o, err := rec.toOrder()
		if err != nil {
			return nil, corruptRow(op, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func insertItems(ctx context.Context, q Querier, o *domain.Order) error {
	for pos, it := range o.Items() {
		if _, err := q.Exec(ctx, `INSERT INTO order_items(id, name, price, quantity, product_id, order_id, position)
        VALUES($1, $2, $3, $4, $5, $6, $7)`,
			it.ID(), it.Name(), it.Price(), it.Quantity(), it.ProductID(), o.ID(), pos); err != nil {
			return err
		}
	}
	return nil
}

const selectOrders = `SELECT o.id, o.customer_id, i.id, i.name, i.price, i.product_id, i.quantity
FROM orders o LEFT JOIN order_items i ON i.order_id = o.id`

type orderRecord struct {
	id         string
	customerID string
	items      []itemRecord
}

type itemRecord struct {
	id        string
	name      string
	price     float64
	productID string
	quantity  int
}

// scanOrders folds joined rows into one record per order, keeping the order
// in which roots first appear.
func scanOrders(rows pgx.Rows) ([]*orderRecord, error) {
	defer rows.Close()
	var out []*orderRecord
	byID := make(map[string]*orderRecord)
	for rows.Next() {
		var (
			orderID, customerID     string
			itemID, name, productID *string
			price                   *float64
			quantity                *int32
		)
		if err := rows.Scan(&orderID, &customerID, &itemID, &name, &price, &productID, &quantity); err != nil {
			return nil, err
		}
		rec, ok := byID[orderID]
		if !ok {
			rec = &orderRecord{id: orderID, customerID: customerID}
			byID[orderID] = rec
			out = append(out, rec)
		}
		if itemID == nil {
			continue
		}
		rec.items = append(rec.items, itemRecord{
			id:        *itemID,
			name:      deref(name),
			price:     derefFloat(price),
			productID: deref(productID),
			quantity:  int(derefInt(quantity)),
		})
	}
	return out, rows.Err()
}

func (rec *orderRecord) toOrder() (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(rec.items))
	for _, it := range rec.items {
		item, err := domain.NewOrderItem(it.id, it.name, it.price, it.productID, it.quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return domain.NewOrder(rec.id, rec.customerID, items)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}

var _ domain.OrderRepository = (*PostgresOrderRepo)(nil)
