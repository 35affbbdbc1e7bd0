package repo

import (
	"context"
	"errors"
	"time"

	"github.com/example/commerce-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresProductRepo struct {
	DB    Querier
	Hooks Hooks
}

func NewPostgresProductRepo(pool *pgxpool.Pool, hooks Hooks) *PostgresProductRepo {
	return &PostgresProductRepo{DB: pool, Hooks: hooks}
}

func (r *PostgresProductRepo) Create(ctx context.Context, p *domain.Product) (err error) {
	const op = "product.create"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	_, err = r.DB.Exec(ctx, `INSERT INTO products(id, name, price) VALUES($1, $2, $3)`, p.ID(), p.Name(), p.Price())
	return storeError(op, err)
}

func (r *PostgresProductRepo) Update(ctx context.Context, p *domain.Product) (err error) {
	const op = "product.update"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	tag, err := r.DB.Exec(ctx, `UPDATE products SET name = $2, price = $3 WHERE id = $1`, p.ID(), p.Name(), p.Price())
	if err != nil {
		return storeError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(op, nil)
	}
	return nil
}

func (r *PostgresProductRepo) Find(ctx context.Context, id string) (p *domain.Product, err error) {
	const op = "product.find"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	var (
		pid, name string
		price     float64
	)
	err = r.DB.QueryRow(ctx, `SELECT id, name, price FROM products WHERE id = $1`, id).Scan(&pid, &name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(op, nil)
	}
	if err != nil {
		return nil, storeError(op, err)
	}
	p, err = domain.NewProduct(pid, name, price)
	if err != nil {
		return nil, notFound(op, err)
	}
	return p, nil
}

func (r *PostgresProductRepo) FindAll(ctx context.Context) (out []*domain.Product, err error) {
	const op = "product.find_all"
	defer func(start time.Time) { observe(r.Hooks, op, start, err) }(time.Now())

	rows, err := r.DB.Query(ctx, `SELECT id, name, price FROM products ORDER BY id`)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pid, name string
			price     float64
		)
		if err := rows.Scan(&pid, &name, &price); err != nil {
			return nil, storeError(op, err)
		}
		p, err := domain.NewProduct(pid, name, price)
		if err != nil {
			return nil, corruptRow(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return out, nil
}

var _ domain.ProductRepository = (*PostgresProductRepo)(nil)
