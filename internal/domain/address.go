package domain

import "fmt"

// Address is a customer's postal address. It is a value: compare with ==.
type Address struct {
	Street string
	Number int
	Zip    string
	City   string
}

func NewAddress(street string, number int, zip, city string) (Address, error) {
	a := Address{Street: street, Number: number, Zip: zip, City: city}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (a Address) Validate() error {
	switch {
	case a.Street == "":
		return invalid("address", "street", "is required")
	case a.Number <= 0:
		return invalid("address", "number", "must be greater than zero")
	case a.Zip == "":
		return invalid("address", "zip", "is required")
	case a.City == "":
		return invalid("address", "city", "is required")
	}
	return nil
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %d, %s %s", a.Street, a.Number, a.Zip, a.City)
}
