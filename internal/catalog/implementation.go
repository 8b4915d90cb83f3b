// internal/catalog/implementation.go
package catalog

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Dataset is the raw material a catalog service is built from.
type Dataset struct {
	Products      []*Product
	Categories    []*Category
	Subcategories []*Subcategory
	Users         []*User
	Orders        []*Order
}

// service implements the Service interface over an immutable dataset,
// indexed by id, slug and email at construction time.
type service struct {
	data Dataset

	productsByID   map[int]*Product
	productsBySlug map[string]*Product
	usersByEmail   map[string]*User

	nextUserID atomic.Int64
}

// NewService validates the dataset and builds the lookup indexes.
func NewService(data Dataset) (Service, error) {
	s := &service{
		data:           data,
		productsByID:   make(map[int]*Product, len(data.Products)),
		productsBySlug: make(map[string]*Product, len(data.Products)),
		usersByEmail:   make(map[string]*User, len(data.Users)),
	}

	for _, p := range data.Products {
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %d: negative stock", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: negative price", p.ID)
		}
		if p.DiscountPrice != nil && !p.DiscountPrice.LessThan(p.Price) {
			return nil, fmt.Errorf("product %d: discount price must be below price", p.ID)
		}
		if len(p.Images) == 0 {
			return nil, fmt.Errorf("product %d: no images", p.ID)
		}
		if _, dup := s.productsByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if _, dup := s.productsBySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		s.productsByID[p.ID] = p
		s.productsBySlug[p.Slug] = p
	}

	maxUserID := 0
	for _, u := range data.Users {
		email := normalizeEmail(u.Email)
		if _, dup := s.usersByEmail[email]; dup {
			return nil, fmt.Errorf("duplicate user email %q", u.Email)
		}
		s.usersByEmail[email] = u
		if u.ID > maxUserID {
			maxUserID = u.ID
		}
	}
	s.nextUserID.Store(int64(maxUserID))

	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) ProductByID(id int) (*Product, bool) {
	p, ok := s.productsByID[id]
	return p, ok
}

func (s *service) ProductBySlug(slug string) (*Product, bool) {
	p, ok := s.productsBySlug[slug]
	return p, ok
}

// Products returns products matching the filter, in dataset order.
func (s *service) Products(f ProductFilter) []*Product {
	out := make([]*Product, 0, len(s.data.Products))
	for _, p := range s.data.Products {
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if f.SubcategoryID != 0 && (p.SubcategoryID == nil || *p.SubcategoryID != f.SubcategoryID) {
			continue
		}
		if f.Featured && !p.IsFeatured {
			continue
		}
		if f.New && !p.IsNew {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

func (s *service) Categories() []*Category {
	return s.data.Categories
}

func (s *service) Subcategories() []*Subcategory {
	return s.data.Subcategories
}

func (s *service) UserByEmail(email string) (*User, bool) {
	u, ok := s.usersByEmail[normalizeEmail(email)]
	return u, ok
}

func (s *service) Users() []*User {
	return s.data.Users
}

func (s *service) Orders() []*Order {
	return s.data.Orders
}

func (s *service) AllocateUserID() int {
	return int(s.nextUserID.Add(1))
}
