package dto

import "time"

// CreateShopRequest body para POST /api/shops.
type CreateShopRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Address  string `json:"address,omitempty"`
}

// ShopResponse respuesta de tienda.
type ShopResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShopListResponse listado paginado de tiendas.
type ShopListResponse struct {
	Shops []*ShopResponse `json:"shops"`
	Page  PageResponse    `json:"page"`
}
