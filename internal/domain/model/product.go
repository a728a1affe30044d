// Package model holds the records served by the collection services.
package model

// Product is a catalogue entry. Ids are unique and never reused.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// RecordID returns the product id.
func (p Product) RecordID() int { return p.ID }

// SeedProducts returns the products present at startup.
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Price: 999},
		{ID: 2, Name: "Smartphone", Price: 699},
		{ID: 3, Name: "Tablet", Price: 399},
	}
}
