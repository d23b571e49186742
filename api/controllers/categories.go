package controllers

import (
	"net/http"

	"github.com/shopcartlabs/shopcart-backend/api/responses"
	"github.com/shopcartlabs/shopcart-backend/api/validators"
	"github.com/shopcartlabs/shopcart-backend/internal/categories"
	"github.com/shopcartlabs/shopcart-backend/pkg/listing"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
)

func CategoryCreate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categories.Payload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "category", category.ID), "category created")
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := listing.ParseParams(r, categories.DefaultSort, categories.SortableColumns)

		rows, total, err := svc.List(r.Context(), categories.ListQuery{Params: params})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, rows, listing.NewPagination(r, params, total), listTerms(params, nil))
	}
}

func CategoryDetail(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includeDeleted := validators.QueryBool(r, "includeDeleted")

		category, err := svc.Get(r.Context(), id, includeDeleted != nil && *includeDeleted)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func CategoryUpdate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload categories.Payload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "category", category.ID), "category updated")
		responses.WriteSuccess(w, category)
	}
}

func CategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "category", id), "category deleted")
		responses.WriteMessage(w, "category deleted")
	}
}

func CategoryRestore(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.Restore(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "category", category.ID), "category restored")
		responses.WriteSuccess(w, category)
	}
}

// listTerms echoes the effective list conditions back to the client.
func listTerms(params listing.Params, extra map[string]any) map[string]any {
	terms := map[string]any{
		"search":          params.Search,
		"sortBy":          params.SortBy,
		"sortOrder":       params.SortOrder,
		"includeInactive": params.IncludeInactive,
		"includeDeleted":  params.IncludeDeleted,
	}
	if params.IsActive != nil {
		terms["isActive"] = *params.IsActive
	}
	for k, v := range extra {
		terms[k] = v
	}
	return terms
}
