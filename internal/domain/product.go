package domain

type Product struct {
	id    string
	name  string
	price float64
}

func NewProduct(id, name string, price float64) (*Product, error) {
	p := &Product{id: id, name: name, price: price}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) ID() string     { return p.id }
func (p *Product) Name() string   { return p.name }
func (p *Product) Price() float64 { return p.price }

func (p *Product) ChangeName(name string) error {
	next := *p
	next.name = name
	if err := next.validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Product) ChangePrice(price float64) error {
	next := *p
	next.price = price
	if err := next.validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Product) validate() error {
	switch {
	case p.id == "":
		return invalid("product", "id", "is required")
	case p.name == "":
		return invalid("product", "name", "is required")
	case p.price <= 0:
		return invalid("product", "price", "must be greater than zero")
	}
	return nil
}
