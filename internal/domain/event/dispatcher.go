package event

import (
	"context"
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Observer is notified after each delivery. err is nil when every invoked
// handler succeeded.
type Observer interface {
	ObserveNotify(name Name, handlers int, err error)
}

type Option func(*Dispatcher)

// WithObserver attaches an Observer to the dispatcher.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

// Dispatcher maps event names to ordered handler lists. Handlers run
// synchronously on the caller's goroutine in registration order.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Name][]Handler
	observer Observer
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{handlers: make(map[Name][]Handler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register appends h to the list for name. Registering the same handler
// twice makes it fire twice.
func (d *Dispatcher) Register(name Name, h Handler) {
	if h == nil {
		return
	}
	d.mu.Lock()
	d.handlers[name] = append(d.handlers[name], h)
	d.mu.Unlock()
}

// Unregister removes every registration of h under name. Unknown names and
// handlers are ignored.
func (d *Dispatcher) Unregister(name Name, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list, ok := d.handlers[name]
	if !ok {
		return
	}
	kept := list[:0:0]
	for _, registered := range list {
		if !sameHandler(registered, h) {
			kept = append(kept, registered)
		}
	}
	if len(kept) == 0 {
		delete(d.handlers, name)
		return
	}
	d.handlers[name] = kept
}

// UnregisterAll clears the registry.
func (d *Dispatcher) UnregisterAll() {
	d.mu.Lock()
	d.handlers = make(map[Name][]Handler)
	d.mu.Unlock()
}

// Handlers returns a copy of the handlers registered under name.
func (d *Dispatcher) Handlers(name Name) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	list := d.handlers[name]
	if len(list) == 0 {
		return nil
	}
	out := make([]Handler, len(list))
	copy(out, list)
	return out
}

// Notify delivers e to the handlers registered under e.Name(). Delivery
// stops at the first handler error, which is returned; later handlers are
// not invoked.
func (d *Dispatcher) Notify(ctx context.Context, e Event) error {
	if e.Name() == "" {
		return ErrEmptyName
	}
	list := d.Handlers(e.Name())
	var err error
	invoked := 0
	for _, h := range list {
		invoked++
		if err = h.Handle(ctx, e); err != nil {
			break
		}
	}
	d.observe(e.Name(), invoked, err)
	return err
}

// NotifyAll delivers e to every registered handler even when some fail and
// returns the failures combined, or nil.
func (d *Dispatcher) NotifyAll(ctx context.Context, e Event) error {
	if e.Name() == "" {
		return ErrEmptyName
	}
	list := d.Handlers(e.Name())
	var result *multierror.Error
	for _, h := range list {
		if err := h.Handle(ctx, e); err != nil {
			result = multierror.Append(result, err)
		}
	}
	err := result.ErrorOrNil()
	d.observe(e.Name(), len(list), err)
	return err
}

func (d *Dispatcher) observe(name Name, invoked int, err error) {
	if d.observer != nil {
		d.observer.ObserveNotify(name, invoked, err)
	}
}

// sameHandler compares by ==, but only when both dynamic values are
// comparable; a struct holding a func in an interface field is not.
func sameHandler(a, b Handler) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}
