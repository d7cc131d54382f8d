package entity

import "time"

// Shop representa una tienda. Cada tienda maneja su propia moneda
// (multi-moneda a nivel de tienda, no de producto).
type Shop struct {
	ID        string
	Name      string
	Currency  string // código ISO 4217: COP, USD, ...
	Address   string
	CreatedAt time.Time
}
