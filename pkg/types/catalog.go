package types

// Category groups products on the first menu screen
type Category struct {
	ID   int64
	Name string
}

// Product is a menu entry. Price is in the smallest currency unit.
type Product struct {
	ID          int64
	Name        string
	Price       int64
	CategoryID  int64
	Description string
}

// Validate checks if the product is valid
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}

	if p.Price <= 0 {
		return ErrInvalidPrice
	}

	if p.CategoryID == 0 {
		return ErrInvalidCategory
	}

	return nil
}
