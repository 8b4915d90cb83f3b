// internal/catalog/seed.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int {
	return &i
}

// SeedDataset returns the built-in demo catalog. Credentials are
// plaintext on purpose: this is mock data, verified through the
// plaintext scheme of the session store's Verifier.
func SeedDataset() Dataset {
	return Dataset{
		Categories: []*Category{
			{ID: 1, Name: "Electronics", Slug: "electronics"},
			{ID: 2, Name: "Home & Living", Slug: "home-living"},
			{ID: 3, Name: "Accessories", Slug: "accessories"},
		},
		Subcategories: []*Subcategory{
			{ID: 1, CategoryID: 1, Name: "Audio", Slug: "audio"},
			{ID: 2, CategoryID: 1, Name: "Wearables", Slug: "wearables"},
			{ID: 3, CategoryID: 2, Name: "Lighting", Slug: "lighting"},
		},
		Products: []*Product{
			{
				ID: 1, Slug: "wireless-headphones", Name: "Wireless Headphones",
				Description: "Over-ear headphones with active noise cancellation.",
				Price:       dec("199.99"), DiscountPrice: decPtr("149.99"),
				Stock: 12, Images: []string{"/images/headphones-1.jpg", "/images/headphones-2.jpg"},
				CategoryID: 1, SubcategoryID: intPtr(1),
				IsFeatured: true, Rating: 4.6, ReviewCount: 214,
			},
			{
				ID: 2, Slug: "smart-watch", Name: "Smart Watch",
				Description: "Fitness tracking, notifications and a week of battery.",
				Price:       dec("249.00"),
				Stock:       8, Images: []string{"/images/watch-1.jpg"},
				CategoryID: 1, SubcategoryID: intPtr(2),
				IsFeatured: true, IsNew: true, Rating: 4.3, ReviewCount: 98,
			},
			{
				ID: 3, Slug: "portable-speaker", Name: "Portable Speaker",
				Description: "Waterproof speaker with 360-degree sound.",
				Price:       dec("89.50"), DiscountPrice: decPtr("69.50"),
				Stock: 25, Images: []string{"/images/speaker-1.jpg"},
				CategoryID: 1, SubcategoryID: intPtr(1),
				IsNew: true, Rating: 4.1, ReviewCount: 57,
			},
			{
				ID: 4, Slug: "ceramic-desk-lamp", Name: "Ceramic Desk Lamp",
				Description: "Warm-light lamp with a hand-glazed ceramic base.",
				Price:       dec("54.00"),
				Stock:       17, Images: []string{"/images/lamp-1.jpg"},
				CategoryID: 2, SubcategoryID: intPtr(3),
				Rating: 4.8, ReviewCount: 41,
			},
			{
				ID: 5, Slug: "linen-throw-blanket", Name: "Linen Throw Blanket",
				Description: "Stonewashed linen in muted tones.",
				Price:       dec("75.00"), DiscountPrice: decPtr("59.00"),
				Stock: 30, Images: []string{"/images/blanket-1.jpg"},
				CategoryID: 2,
				IsFeatured: true, Rating: 4.5, ReviewCount: 122,
			},
			{
				ID: 6, Slug: "leather-card-holder", Name: "Leather Card Holder",
				Description: "Vegetable-tanned leather, four card slots.",
				Price:       dec("32.00"),
				Stock:       50, Images: []string{"/images/cardholder-1.jpg"},
				CategoryID: 3,
				Rating:     4.2, ReviewCount: 36,
			},
			{
				ID: 7, Slug: "canvas-tote", Name: "Canvas Tote",
				Description: "Heavyweight canvas with internal pocket.",
				Price:       dec("28.00"),
				Stock:       0, Images: []string{"/images/tote-1.jpg"},
				CategoryID: 3,
				IsNew:      true, Rating: 3.9, ReviewCount: 18,
			},
			{
				ID: 8, Slug: "mechanical-keyboard", Name: "Mechanical Keyboard",
				Description: "Hot-swappable switches, aluminium frame.",
				Price:       dec("159.00"), DiscountPrice: decPtr("129.00"),
				Stock: 5, Images: []string{"/images/keyboard-1.jpg"},
				CategoryID: 1,
				IsFeatured: true, Rating: 4.7, ReviewCount: 163,
			},
		},
		Users: []*User{
			{ID: 1, Email: "admin@example.com", Name: "Admin", Role: RoleAdmin, Credential: "plain:admin123"},
			{ID: 2, Email: "user@example.com", Name: "Demo User", Role: RoleUser, Credential: "plain:user123"},
		},
		Orders: []*Order{
			{
				ID: 1, UserID: 2,
				Items: []OrderItem{
					{ProductID: 1, Quantity: 1, Price: dec("149.99")},
					{ProductID: 6, Quantity: 2, Price: dec("32.00")},
				},
				Total: dec("213.99"), Status: "delivered",
				CreatedAt: time.Date(2025, 6, 3, 14, 12, 0, 0, time.UTC),
			},
			{
				ID: 2, UserID: 2,
				Items: []OrderItem{
					{ProductID: 4, Quantity: 1, Price: dec("54.00")},
				},
				Total: dec("54.00"), Status: "shipped",
				CreatedAt: time.Date(2025, 7, 19, 9, 40, 0, 0, time.UTC),
			},
		},
	}
}
