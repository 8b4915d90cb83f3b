// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a storefront item. Products are read-only within a
// session; stock is the authoritative ceiling for cart quantities.
type Product struct {
	ID            int              `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Stock         int              `json:"stock"`
	Images        []string         `json:"images"`
	CategoryID    int              `json:"categoryId"`
	SubcategoryID *int             `json:"subcategoryId,omitempty"`
	IsFeatured    bool             `json:"isFeatured"`
	IsNew         bool             `json:"isNew"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"reviewCount"`
}

// EffectivePrice is the discount price when present, else the price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// Category groups products.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Subcategory refines a Category.
type Subcategory struct {
	ID         int    `json:"id"`
	CategoryID int    `json:"categoryId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

// Role is a user's authorization level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account in the static user set. Credential is opaque to
// the catalog; the session store interprets it through a Verifier.
type User struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Credential string `json:"-"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is a historical purchase, read-only dashboard data.
type Order struct {
	ID        int             `json:"id"`
	UserID    int             `json:"userId"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}
