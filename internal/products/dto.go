package products

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopcartlabs/shopcart-backend/internal/validation"
	"github.com/shopcartlabs/shopcart-backend/pkg/enums"
	"github.com/shopcartlabs/shopcart-backend/pkg/listing"
	"github.com/shopcartlabs/shopcart-backend/pkg/slug"
)

// Payload is the request body for product create and update. Decimal
// and date fields skip validator tags and run through cross checks
// instead, since those rules need parsed values.
type Payload struct {
	CategoryID        *uint            `json:"categoryId" create:"required"`
	Name              *string          `json:"name" create:"required" validate:"min=1,max=200"`
	Slug              *string          `json:"slug"`
	Description       *string          `json:"description" create:"required" validate:"min=10,max=2000"`
	ShortDescription  *string          `json:"shortDescription" validate:"max=500"`
	Price             *decimal.Decimal `json:"price" create:"required"`
	Quantity          *decimal.Decimal `json:"quantity"`
	UnitType          *string          `json:"unitType"`
	MinQuantity       *decimal.Decimal `json:"minQuantity"`
	MaxQuantity       *decimal.Decimal `json:"maxQuantity"`
	ManufactureDate   *time.Time       `json:"manufactureDate"`
	ExpiryDate        *time.Time       `json:"expiryDate"`
	Barcode           *string          `json:"barcode" validate:"max=64"`
	LowStockThreshold *int             `json:"lowStockThreshold" validate:"gte=0"`
	Weight            *decimal.Decimal `json:"weight"`
	Dimensions        *string          `json:"dimensions"`
	Brand             *string          `json:"brand" validate:"max=100"`
	IsActive          *bool            `json:"isActive"`
}

var dimensionsPattern = regexp.MustCompile(`^\d+(\.\d+)?x\d+(\.\d+)?(x\d+(\.\d+)?)?$`)

// crossChecks validates relationships between submitted fields. It only
// sees the payload, never the stored record; the service re-checks
// range invariants against the merged state before committing.
func (p *Payload) crossChecks() []validation.Check {
	return []validation.Check{
		func(errs *validation.Errors) {
			if p.Price != nil {
				if p.Price.IsNegative() {
					errs.Add("price", "must not be negative")
				}
				if p.Price.Exponent() < -2 {
					errs.Add("price", "must have at most 2 decimal places")
				}
			}
			if p.Quantity != nil {
				if p.Quantity.IsNegative() {
					errs.Add("quantity", "must not be negative")
				}
				if p.Quantity.Exponent() < -3 {
					errs.Add("quantity", "must have at most 3 decimal places")
				}
			}
			if p.Weight != nil && p.Weight.IsNegative() {
				errs.Add("weight", "must not be negative")
			}
		},
		func(errs *validation.Errors) {
			if p.Slug != nil && !slug.IsValid(*p.Slug) {
				errs.Add("slug", "must be lowercase alphanumerics and single hyphens")
			}
		},
		func(errs *validation.Errors) {
			if p.UnitType != nil {
				if _, err := enums.ParseUnitType(*p.UnitType); err != nil {
					errs.Add("unitType", fmt.Sprintf("must be one of: %s", strings.Join(enums.UnitTypeValues(), ", ")))
				}
			}
		},
		func(errs *validation.Errors) {
			if p.MinQuantity != nil && p.MinQuantity.IsNegative() {
				errs.Add("minQuantity", "must not be negative")
			}
			if p.MaxQuantity != nil && p.MaxQuantity.IsNegative() {
				errs.Add("maxQuantity", "must not be negative")
			}
			if p.MinQuantity != nil && p.MaxQuantity != nil && p.MinQuantity.GreaterThan(*p.MaxQuantity) {
				errs.Add("minQuantity", "must not exceed maxQuantity")
			}
		},
		func(errs *validation.Errors) {
			if p.ManufactureDate != nil && p.ExpiryDate != nil && !p.ManufactureDate.Before(*p.ExpiryDate) {
				errs.Add("manufactureDate", "must be before expiryDate")
			}
			if p.ExpiryDate != nil && p.ExpiryDate.Before(time.Now()) {
				errs.Add("expiryDate", "must not be in the past")
			}
		},
		func(errs *validation.Errors) {
			if p.Dimensions != nil && *p.Dimensions != "" && !dimensionsPattern.MatchString(*p.Dimensions) {
				errs.Add("dimensions", "must match NxN or NxNxN")
			}
		},
	}
}

// Filters narrows the product list beyond the shared listing params.
type Filters struct {
	CategoryID *uint
	InStock    *bool
	UnitType   *enums.UnitType
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// SortableColumns whitelists the query sort keys against real columns.
var SortableColumns = map[string]string{
	"createdAt": "products.created_at",
	"updatedAt": "products.updated_at",
	"name":      "products.name",
	"price":     "products.price",
	"quantity":  "products.quantity",
}

const DefaultSort = "createdAt"

var searchColumns = []string{
	"products.name",
	"products.slug",
	"products.description",
	"products.short_description",
	"products.brand",
	"products.barcode",
}

// ListQuery bundles everything a list call needs.
type ListQuery struct {
	Params  listing.Params
	Filters Filters
}
