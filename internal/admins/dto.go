package admins

import "github.com/shopcartlabs/shopcart-backend/pkg/listing"

// Payload is the request body for admin create and update. It spans
// both halves of the composite record: credentials on the user row,
// person fields on the profile row.
type Payload struct {
	Email          *string `json:"email" create:"required" validate:"email"`
	Password       *string `json:"password" create:"required" validate:"min=8,max=128"`
	FirstName      *string `json:"firstName" create:"required" validate:"min=1,max=100"`
	LastName       *string `json:"lastName" create:"required" validate:"min=1,max=100"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,e164"`
	Address        *string `json:"address" validate:"max=255"`
	City           *string `json:"city" validate:"max=100"`
	Bio            *string `json:"bio" validate:"max=1000"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url"`
	IsActive       *bool   `json:"isActive"`
}

// Filters narrows the admin list beyond the shared listing params.
type Filters struct {
	City string
}

// SortableColumns whitelists the query sort keys against real columns.
// Email lives on the joined users table.
var SortableColumns = map[string]string{
	"createdAt": "admin_profiles.created_at",
	"updatedAt": "admin_profiles.updated_at",
	"firstName": "admin_profiles.first_name",
	"lastName":  "admin_profiles.last_name",
	"email":     "users.email",
}

const DefaultSort = "createdAt"

var searchColumns = []string{
	"users.email",
	"admin_profiles.first_name",
	"admin_profiles.last_name",
}

// ListQuery bundles everything a list call needs.
type ListQuery struct {
	Params  listing.Params
	Filters Filters
}
