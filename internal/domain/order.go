package domain

// OrderItem is one line of an order. It is immutable; changing the items of
// an order replaces the whole sequence.
type OrderItem struct {
	id        string
	name      string
	price     float64
	productID string
	quantity  int
}

func NewOrderItem(id, name string, price float64, productID string, quantity int) (OrderItem, error) {
	it := OrderItem{id: id, name: name, price: price, productID: productID, quantity: quantity}
	switch {
	case id == "":
		return OrderItem{}, invalid("order item", "id", "is required")
	case name == "":
		return OrderItem{}, invalid("order item", "name", "is required")
	case productID == "":
		return OrderItem{}, invalid("order item", "product id", "is required")
	case price <= 0:
		return OrderItem{}, invalid("order item", "price", "must be greater than zero")
	case quantity <= 0:
		return OrderItem{}, invalid("order item", "quantity", "must be greater than zero")
	}
	return it, nil
}

func (it OrderItem) ID() string        { return it.id }
func (it OrderItem) Name() string      { return it.name }
func (it OrderItem) Price() float64    { return it.price }
func (it OrderItem) ProductID() string { return it.productID }
func (it OrderItem) Quantity() int     { return it.quantity }

// Total is price times quantity.
func (it OrderItem) Total() float64 { return it.price * float64(it.quantity) }

// Order is the aggregate root owning its items.
type Order struct {
	id         string
	customerID string
	items      []OrderItem
}

func NewOrder(id, customerID string, items []OrderItem) (*Order, error) {
	switch {
	case id == "":
		return nil, invalid("order", "id", "is required")
	case customerID == "":
		return nil, invalid("order", "customer id", "is required")
	case len(items) == 0:
		return nil, invalid("order", "items", "must not be empty")
	}
	return &Order{id: id, customerID: customerID, items: cloneItems(items)}, nil
}

func (o *Order) ID() string         { return o.id }
func (o *Order) CustomerID() string { return o.customerID }

// Items returns a copy of the current item sequence.
func (o *Order) Items() []OrderItem { return cloneItems(o.items) }

// Total sums price*quantity over the current items. Never cached.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.items {
		total += it.Total()
	}
	return total
}

// ChangeItems replaces the item sequence wholesale. An empty sequence is
// rejected and the order is left as it was.
func (o *Order) ChangeItems(items []OrderItem) error {
	if len(items) == 0 {
		return invalid("order", "items", "must not be empty")
	}
	o.items = cloneItems(items)
	return nil
}

func cloneItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}

// Clone returns an independent copy of the aggregate.
func (o *Order) Clone() *Order {
	return &Order{id: o.id, customerID: o.customerID, items: cloneItems(o.items)}
}
