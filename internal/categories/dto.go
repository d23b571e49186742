package categories

import (
	"github.com/shopcartlabs/shopcart-backend/internal/validation"
	"github.com/shopcartlabs/shopcart-backend/pkg/listing"
	"github.com/shopcartlabs/shopcart-backend/pkg/slug"
)

// Payload is the request body for category create and update. Every
// field is a pointer so absent keys stay distinguishable from zero
// values; the create tag marks what a new category must provide.
// Slug is optional; when absent it is derived from the name.
type Payload struct {
	Name        *string `json:"name" create:"required" validate:"min=1,max=50"`
	Slug        *string `json:"slug"`
	Description *string `json:"description" validate:"max=1000"`
	IsActive    *bool   `json:"isActive"`
}

func (p *Payload) crossChecks() []validation.Check {
	return []validation.Check{
		func(errs *validation.Errors) {
			if p.Slug != nil && !slug.IsValid(*p.Slug) {
				errs.Add("slug", "must be lowercase alphanumerics and single hyphens")
			}
		},
	}
}

// SortableColumns whitelists the query sort keys against real columns.
var SortableColumns = map[string]string{
	"createdAt": "categories.created_at",
	"updatedAt": "categories.updated_at",
	"name":      "categories.name",
}

const DefaultSort = "createdAt"

var searchColumns = []string{"categories.name", "categories.slug", "categories.description"}

// ListQuery bundles everything a list call needs.
type ListQuery struct {
	Params listing.Params
}
