package repo

import (
	stderrors "errors"
	"time"

	"github.com/example/commerce-service/internal/domain"
)

// Hooks observes repository operations.
type Hooks interface {
	ObserveOperation(op, status string, dur time.Duration)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}

func observe(h Hooks, op string, start time.Time, err error) {
	if h == nil {
		h = noopHooks{}
	}
	h.ObserveOperation(op, statusOf(err), time.Since(start))
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case stderrors.Is(err, ErrStore) && !stderrors.Is(err, domain.ErrConflict):
		return "error"
	case stderrors.Is(err, domain.ErrNotFound):
		return "not_found"
	case stderrors.Is(err, domain.ErrConflict):
		return "conflict"
	case stderrors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}
