package models

type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type ProductPatch struct {
	Name     Optional[string]
	Quantity Optional[int]
	Price    Optional[float64]
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Quantity.Set && !p.Price.Set
}
