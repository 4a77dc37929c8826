package diagram

import (
	"fmt"
	"slices"
)

// Category identifies the kind of infrastructure element a node represents.
// Renderers use it to pick an icon or shape.
type Category string

const (
	// CategoryLoadBalancer is a network load balancer (e.g. AWS ELB).
	CategoryLoadBalancer Category = "load-balancer"
	// CategoryCompute is a compute instance running application code.
	CategoryCompute Category = "compute-instance"
	// CategoryDatabase is a relational database (e.g. Postgres on RDS).
	CategoryDatabase Category = "relational-database"
	// CategoryInMemory is an in-memory store such as Redis.
	CategoryInMemory Category = "in-memory-store"
)

var categories = []Category{
	CategoryLoadBalancer,
	CategoryCompute,
	CategoryDatabase,
	CategoryInMemory,
}

// providers maps each category to the icon family it was drawn from.
var providers = map[Category]string{
	CategoryLoadBalancer: "aws/network",
	CategoryCompute:      "programming/language",
	CategoryDatabase:     "aws/database",
	CategoryInMemory:     "onprem/inmemory",
}

// Categories returns all known categories in declaration order.
func Categories() []Category { return slices.Clone(categories) }

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool { return slices.Contains(categories, c) }

// Provider returns the icon family for c, or "" for unknown categories.
func (c Category) Provider() string { return providers[c] }

func (c Category) String() string { return string(c) }

// ParseCategory converts s to a Category, returning ErrUnknownCategory if
// s does not name a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}
