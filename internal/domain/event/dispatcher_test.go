package event

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCreated Name = "TestCreated"
	testChanged Name = "TestChanged"
)

type recorder struct {
	label string
	calls *[]string
	err   error
}

func (r *recorder) Handle(_ context.Context, e Event) error {
	*r.calls = append(*r.calls, r.label+":"+string(e.Name()))
	return r.err
}

type countingObserver struct {
	names    []Name
	invoked  []int
	failures int
}

func (o *countingObserver) ObserveNotify(name Name, handlers int, err error) {
	o.names = append(o.names, name)
	o.invoked = append(o.invoked, handlers)
	if err != nil {
		o.failures++
	}
}

func TestNewEvent(t *testing.T) {
	payload := map[string]string{"id": "1"}
	e := New(testCreated, payload)

	assert.Equal(t, testCreated, e.Name())
	assert.NotEmpty(t, e.ID())
	assert.False(t, e.OccurredAt().IsZero())
	assert.Equal(t, payload, e.Data())
	assert.NotEqual(t, e.ID(), New(testCreated, nil).ID())
}

func TestRegisterKeepsOrderAndDuplicates(t *testing.T) {
	var calls []string
	d := NewDispatcher()
	a := &recorder{label: "a", calls: &calls}
	b := &recorder{label: "b", calls: &calls}

	d.Register(testCreated, a)
	d.Register(testCreated, b)
	d.Register(testCreated, a)

	require.Len(t, d.Handlers(testCreated), 3)
	require.NoError(t, d.Notify(context.Background(), New(testCreated, nil)))
	assert.Equal(t, []string{"a:TestCreated", "b:TestCreated", "a:TestCreated"}, calls)
}

func TestNotifyOnlyMatchingName(t *testing.T) {
	var calls []string
	d := NewDispatcher()
	d.Register(testCreated, &recorder{label: "created", calls: &calls})
	d.Register(testChanged, &recorder{label: "changed", calls: &calls})

	require.NoError(t, d.Notify(context.Background(), New(testChanged, nil)))
	assert.Equal(t, []string{"changed:TestChanged"}, calls)
}

func TestNotifyWithoutHandlersIsNoop(t *testing.T) {
	d := NewDispatcher()
	assert.NoError(t, d.Notify(context.Background(), New("Unknown", nil)))
	assert.NoError(t, d.NotifyAll(context.Background(), New("Unknown", nil)))
}

func TestUnregister(t *testing.T) {
	var calls []string
	d := NewDispatcher()
	a := &recorder{label: "a", calls: &calls}
	b := &recorder{label: "b", calls: &calls}
	d.Register(testCreated, a)
	d.Register(testCreated, b)
	d.Register(testCreated, a)

	d.Unregister(testCreated, a)
	d.Unregister(testChanged, a)
	d.Unregister(testCreated, &recorder{label: "stranger", calls: &calls})

	assert.Equal(t, []Handler{b}, d.Handlers(testCreated))

	d.Unregister(testCreated, b)
	assert.Nil(t, d.Handlers(testCreated))
}

func TestUnregisterFuncHandlerIsNoop(t *testing.T) {
	d := NewDispatcher()
	f := HandlerFunc(func(context.Context, Event) error { return nil })
	d.Register(testCreated, f)

	assert.NotPanics(t, func() { d.Unregister(testCreated, f) })
	assert.Len(t, d.Handlers(testCreated), 1)
}

func TestUnregisterAll(t *testing.T) {
	var calls []string
	d := NewDispatcher()
	d.Register(testCreated, &recorder{label: "a", calls: &calls})
	d.Register(testChanged, &recorder{label: "b", calls: &calls})

	d.UnregisterAll()

	assert.Nil(t, d.Handlers(testCreated))
	assert.Nil(t, d.Handlers(testChanged))
	require.NoError(t, d.Notify(context.Background(), New(testCreated, nil)))
	assert.Empty(t, calls)
}

func TestNotifyStopsAtFirstError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	obs := &countingObserver{}
	d := NewDispatcher(WithObserver(obs))
	d.Register(testCreated, &recorder{label: "a", calls: &calls})
	d.Register(testCreated, &recorder{label: "b", calls: &calls, err: boom})
	d.Register(testCreated, &recorder{label: "c", calls: &calls})

	err := d.Notify(context.Background(), New(testCreated, nil))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a:TestCreated", "b:TestCreated"}, calls)
	assert.Equal(t, []int{2}, obs.invoked)
	assert.Equal(t, 1, obs.failures)
}

func TestNotifyAllCollectsErrors(t *testing.T) {
	var calls []string
	first, second := errors.New("first"), errors.New("second")
	d := NewDispatcher()
	d.Register(testCreated, &recorder{label: "a", calls: &calls, err: first})
	d.Register(testCreated, &recorder{label: "b", calls: &calls})
	d.Register(testCreated, &recorder{label: "c", calls: &calls, err: second})

	err := d.NotifyAll(context.Background(), New(testCreated, nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Equal(t, []string{"a:TestCreated", "b:TestCreated", "c:TestCreated"}, calls)
}

func TestHandlerMayRegisterDuringNotify(t *testing.T) {
	var calls []string
	d := NewDispatcher()
	late := &recorder{label: "late", calls: &calls}
	d.Register(testCreated, HandlerFunc(func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+string(e.Name()))
		d.Register(testCreated, late)
		return nil
	}))

	require.NoError(t, d.Notify(context.Background(), New(testCreated, nil)))
	assert.Equal(t, []string{"first:TestCreated"}, calls)
	assert.Len(t, d.Handlers(testCreated), 2)
}

// wrapping decorates another handler; its dynamic value is not comparable
// when inner holds a func.
type wrapping struct {
	inner Handler
}

func (w wrapping) Handle(ctx context.Context, e Event) error { return w.inner.Handle(ctx, e) }

func TestUnregisterDecoratedFuncHandlerIsNoop(t *testing.T) {
	d := NewDispatcher()
	h := wrapping{inner: HandlerFunc(func(context.Context, Event) error { return nil })}
	d.Register(testCreated, h)

	assert.NotPanics(t, func() { d.Unregister(testCreated, h) })
	assert.Len(t, d.Handlers(testCreated), 1)
}

func TestUnregisterComparableDecorator(t *testing.T) {
	var calls []string
	d := NewDispatcher()
	inner := &recorder{label: "inner", calls: &calls}
	d.Register(testCreated, wrapping{inner: inner})

	d.Unregister(testCreated, wrapping{inner: inner})
	assert.Nil(t, d.Handlers(testCreated))
}

func TestNotifyRejectsUnnamedEvent(t *testing.T) {
	var calls []string
	d := NewDispatcher()
	d.Register("", &recorder{label: "a", calls: &calls})

	assert.ErrorIs(t, d.Notify(context.Background(), New("", nil)), ErrEmptyName)
	assert.ErrorIs(t, d.NotifyAll(context.Background(), New("", nil)), ErrEmptyName)
	assert.Empty(t, calls)
}
