// internal/catalog/service.go
package catalog

// ProductFilter narrows a product listing. Zero values mean "any".
type ProductFilter struct {
	CategoryID    int
	SubcategoryID int
	Featured      bool
	New           bool
	Limit         int
}

// Service defines the read-only catalog interface consumed by the
// stores and the presentation layer.
type Service interface {
	ProductByID(id int) (*Product, bool)
	ProductBySlug(slug string) (*Product, bool)
	Products(f ProductFilter) []*Product
	Categories() []*Category
	Subcategories() []*Subcategory
	UserByEmail(email string) (*User, bool)
	Users() []*User
	Orders() []*Order

	// AllocateUserID hands out the next user id for registration.
	// It is a monotonic counter seeded past the static user set, so
	// concurrent registrations never collide.
	AllocateUserID() int
}
