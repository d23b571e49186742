package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shopcartlabs/shopcart-backend/pkg/enums"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
)

// ParseIDParam reads a positive integer id from the chi route params.
func ParseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name).
			WithDetails([]string{name + ": must be a positive integer"})
	}
	return uint(value), nil
}

// QueryUint parses an optional positive integer query parameter.
func QueryUint(r *http.Request, name string) *uint {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	parsed := uint(value)
	return &parsed
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(r *http.Request, name string) *bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// QueryDecimal parses an optional decimal query parameter.
func QueryDecimal(r *http.Request, name string) *decimal.Decimal {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &value
}

// QueryUnitType parses an optional unit type query parameter, ignoring
// unknown values.
func QueryUnitType(r *http.Request, name string) *enums.UnitType {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	unit, err := enums.ParseUnitType(raw)
	if err != nil {
		return nil
	}
	return &unit
}
