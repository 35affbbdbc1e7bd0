package repo

import (
	stderrors "errors"
	"strings"

	"github.com/example/commerce-service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// ErrStore marks failures of the backing store itself (connectivity,
// constraints, I/O). It never matches domain.ErrNotFound.
var ErrStore = errors.New("store failure")

// StoreError wraps a store failure with the repository operation that hit it.
// Kind is an optional domain classification such as domain.ErrConflict.
type StoreError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool {
	return target == ErrStore || (e.Kind != nil && target == e.Kind)
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, domain.ErrNotFound) || stderrors.Is(err, domain.ErrValidation) {
		return errors.Wrap(err, op)
	}
	var se *StoreError
	if stderrors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Kind: classify(err), Err: err}
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return nil
	}
	switch strings.TrimSpace(pgErr.Code) {
	case "23505", "23503": // unique_violation, foreign_key_violation
		return domain.ErrConflict
	}
	return nil
}

// corruptRow reports a stored row that no longer forms a valid entity while
// listing. It is a store failure; the validation cause stays reachable.
func corruptRow(op string, cause error) error {
	return &StoreError{Op: op, Err: cause}
}

// notFound keeps the reason a lookup came back empty (a missing row or a
// stored row that no longer forms a valid entity) while matching
// domain.ErrNotFound.
func notFound(op string, cause error) error {
	if cause == nil {
		return errors.Wrap(domain.ErrNotFound, op)
	}
	return errors.Wrap(stderrors.Join(domain.ErrNotFound, cause), op)
}
