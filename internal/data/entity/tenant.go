package entity

// Tenant is the isolation boundary: one store account. Every business
// row below carries its id and all queries filter on it.
type Tenant struct {
	Base
	Name     string `db:"name"`
	APIKey   string `db:"api_key"`
	IsActive bool   `db:"is_active"`
}
