package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type statement struct {
	sql  string
	args []any
}

// injectedTxRunner buffers the statements of a transaction and only keeps
// them when the body succeeds, so failures can be injected without a DB.
type injectedTxRunner struct {
	mu sync.Mutex

	// FailOn makes Exec fail for the first statement containing it.
	FailOn    string
	FailErr   error
	LockedIDs map[string]bool

	Committed     []statement
	CommitCalls   int
	RollbackCalls int
}

func (r *injectedTxRunner) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx := &fakeTx{runner: r}
	if err := fn(tx); err != nil {
		r.mu.Lock()
		r.RollbackCalls++
		r.mu.Unlock()
		return err
	}
	r.mu.Lock()
	r.CommitCalls++
	r.Committed = append(r.Committed, tx.pending...)
	r.mu.Unlock()
	return nil
}

func (r *injectedTxRunner) sqls() []string {
	out := make([]string, 0, len(r.Committed))
	for _, st := range r.Committed {
		out = append(out, strings.Fields(st.sql)[0])
	}
	return out
}

type fakeTx struct {
	runner  *injectedTxRunner
	pending []statement
}

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx.runner.FailOn != "" && strings.Contains(sql, tx.runner.FailOn) {
		err := tx.runner.FailErr
		if err == nil {
			err = errors.New("injected failure")
		}
		return pgconn.CommandTag{}, err
	}
	tx.pending = append(tx.pending, statement{sql: sql, args: args})
	return pgconn.NewCommandTag("OK 1"), nil
}

func (tx *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported by fake")
}

func (tx *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	tx.pending = append(tx.pending, statement{sql: sql, args: args})
	id, _ := args[0].(string)
	if !tx.runner.LockedIDs[id] {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{val: id}
}

type fakeRow struct {
	val string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.val
	return nil
}

type recordedOp struct {
	op     string
	status string
}

type hooksRecorder struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (h *hooksRecorder) ObserveOperation(op, status string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops = append(h.ops, recordedOp{op: op, status: status})
}

// fakeRows replays canned rows. Each row holds values typed like the scan
// destinations (string, *string, *float64, *int32).
type fakeRows struct {
	pgx.Rows
	rows   [][]any
	next   int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.next >= len(r.rows) {
		return false
	}
	r.next++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.next-1]
	if len(row) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(row), len(dest))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

// rowsQuerier answers every Query with the same rows or error.
type rowsQuerier struct {
	rows    *fakeRows
	err     error
	queries []statement
}

func (q *rowsQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("exec not supported by fake")
}

func (q *rowsQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.queries = append(q.queries, statement{sql: sql, args: args})
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func (q *rowsQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{err: errors.New("query row not supported by fake")}
}

func strp(s string) *string     { return &s }
func floatp(f float64) *float64 { return &f }
func int32p(i int32) *int32     { return &i }

func joinedItem(orderID, customerID, itemID, name string, price float64, productID string, qty int32) []any {
	return []any{orderID, customerID, strp(itemID), strp(name), floatp(price), strp(productID), int32p(qty)}
}

func itemlessRoot(orderID, customerID string) []any {
	return []any{orderID, customerID, (*string)(nil), (*string)(nil), (*float64)(nil), (*string)(nil), (*int32)(nil)}
}
