package repo

import (
	"context"
	"errors"
	"time"

	"github.com/example/commerce-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCustomerRepo maps customers to the customers table. Customers it
// loads are attached to Notifier, when set, so they keep announcing events.
type PostgresCustomerRepo struct {
	DB       Querier
	Notifier domain.EventNotifier
	Hooks    Hooks
}

func NewPostgresCustomerRepo(pool *pgxpool.Pool, notifier domain.EventNotifier, hooks Hooks) *PostgresCustomerRepo {
	return &PostgresCustomerRepo{DB: pool, Notifier: notifier, Hooks: hooks}
}

func (r *PostgresCustomerRepo) Create(ctx context.Context, c *domain.Customer) (err error) {
	const op = "customer.create"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	row := customerRowFrom(c)
	_, err = r.DB.Exec(ctx, `INSERT INTO customers(id, name, street, number, zipcode, city, active, reward_points)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
		row.id, row.name, row.street, row.number, row.zip, row.city, row.active, row.rewardPoints)
	return storeError(op, err)
}

func (r *PostgresCustomerRepo) Update(ctx context.Context, c *domain.Customer) (err error) {
	const op = "customer.update"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	row := customerRowFrom(c)
	tag, err := r.DB.Exec(ctx, `UPDATE customers SET name = $2, street = $3, number = $4, zipcode = $5,
        city = $6, active = $7, reward_points = $8 WHERE id = $1`,
		row.id, row.name, row.street, row.number, row.zip, row.city, row.active, row.rewardPoints)
	if err != nil {
		return storeError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(op, nil)
	}
	return nil
}

func (r *PostgresCustomerRepo) Find(ctx context.Context, id string) (c *domain.Customer, err error) {
	const op = "customer.find"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	var row customerRow
	err = r.DB.QueryRow(ctx, selectCustomers+` WHERE id = $1`, id).
		Scan(&row.id, &row.name, &row.street, &row.number, &row.zip, &row.city, &row.active, &row.rewardPoints)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(op, nil)
	}
	if err != nil {
		return nil, storeError(op, err)
	}
	c, err = row.toCustomer(r.Notifier)
	if err != nil {
		return nil, notFound(op, err)
	}
	return c, nil
}

func (r *PostgresCustomerRepo) FindAll(ctx context.Context) (out []*domain.Customer, err error) {
	const op = "customer.find_all"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	rows, err := r.DB.Query(ctx, selectCustomers+` ORDER BY id`)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		var row customerRow
		if err := rows.Scan(&row.id, &row.name, &row.street, &row.number, &row.zip, &row.city, &row.active, &row.rewardPoints); err != nil {
			return nil, storeError(op, err)
		}
		c, err := row.toCustomer(r.Notifier)
		if err != nil {
			return nil, corruptRow(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return out, nil
}

const selectCustomers = `SELECT id, name, street, number, zipcode, city, active, reward_points FROM customers`

type customerRow struct {
	id           string
	name         string
	street       *string
	number       *int32
	zip          *string
	city         *string
	active       bool
	rewardPoints int32
}

func customerRowFrom(c *domain.Customer) customerRow {
	s := c.Snapshot()
	row := customerRow{id: s.ID, name: s.Name, active: s.Active, rewardPoints: int32(s.RewardPoints)}
	if s.Address != nil {
		number := int32(s.Address.Number)
		row.street, row.number, row.zip, row.city = &s.Address.Street, &number, &s.Address.Zip, &s.Address.City
	}
	return row
}

func (row customerRow) toCustomer(n domain.EventNotifier) (*domain.Customer, error) {
	s := domain.CustomerSnapshot{ID: row.id, Name: row.name, Active: row.active, RewardPoints: int(row.rewardPoints)}
	if row.street != nil {
		s.Address = &domain.Address{
			Street: deref(row.street),
			Number: int(derefInt(row.number)),
			Zip:    deref(row.zip),
			City:   deref(row.city),
		}
	}
	var opts []domain.CustomerOption
	if n != nil {
		opts = append(opts, domain.WithNotifier(n))
	}
	return domain.RestoreCustomer(s, opts...)
}

var _ domain.CustomerRepository = (*PostgresCustomerRepo)(nil)
