package controllers

import (
	"net/http"
	"strings"

	"github.com/shopcartlabs/shopcart-backend/api/responses"
	"github.com/shopcartlabs/shopcart-backend/api/validators"
	"github.com/shopcartlabs/shopcart-backend/internal/products"
	"github.com/shopcartlabs/shopcart-backend/pkg/listing"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
)

func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload products.Payload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "product", product.ID), "product created")
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := listing.ParseParams(r, products.DefaultSort, products.SortableColumns)
		filters := products.Filters{
			CategoryID: validators.QueryUint(r, "categoryId"),
			InStock:    validators.QueryBool(r, "inStock"),
			UnitType:   validators.QueryUnitType(r, "unitType"),
			Brand:      strings.TrimSpace(r.URL.Query().Get("brand")),
			MinPrice:   validators.QueryDecimal(r, "minPrice"),
			MaxPrice:   validators.QueryDecimal(r, "maxPrice"),
		}

		rows, total, err := svc.List(r.Context(), products.ListQuery{Params: params, Filters: filters})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		extra := map[string]any{}
		if filters.CategoryID != nil {
			extra["categoryId"] = *filters.CategoryID
		}
		if filters.InStock != nil {
			extra["inStock"] = *filters.InStock
		}
		if filters.UnitType != nil {
			extra["unitType"] = filters.UnitType.String()
		}
		if filters.Brand != "" {
			extra["brand"] = filters.Brand
		}
		if filters.MinPrice != nil {
			extra["minPrice"] = filters.MinPrice.String()
		}
		if filters.MaxPrice != nil {
			extra["maxPrice"] = filters.MaxPrice.String()
		}

		responses.WriteList(w, rows, listing.NewPagination(r, params, total), listTerms(params, extra))
	}
}

func ProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includeDeleted := validators.QueryBool(r, "includeDeleted")

		product, err := svc.Get(r.Context(), id, includeDeleted != nil && *includeDeleted)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload products.Payload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "product", product.ID), "product updated")
		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "product", id), "product deleted")
		responses.WriteMessage(w, "product deleted")
	}
}

func ProductRestore(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Restore(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "product", product.ID), "product restored")
		responses.WriteSuccess(w, product)
	}
}
