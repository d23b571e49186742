package controllers

import (
	"net/http"
	"strings"

	"github.com/shopcartlabs/shopcart-backend/api/responses"
	"github.com/shopcartlabs/shopcart-backend/api/validators"
	"github.com/shopcartlabs/shopcart-backend/internal/admins"
	"github.com/shopcartlabs/shopcart-backend/pkg/listing"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
)

func AdminCreate(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload admins.Payload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "admin", admin.ID), "admin created")
		responses.WriteSuccessStatus(w, http.StatusCreated, admin)
	}
}

func AdminList(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := listing.ParseParams(r, admins.DefaultSort, admins.SortableColumns)
		filters := admins.Filters{
			City: strings.TrimSpace(r.URL.Query().Get("city")),
		}

		rows, total, err := svc.List(r.Context(), admins.ListQuery{Params: params, Filters: filters})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		extra := map[string]any{}
		if filters.City != "" {
			extra["city"] = filters.City
		}
		responses.WriteList(w, rows, listing.NewPagination(r, params, total), listTerms(params, extra))
	}
}

func AdminDetail(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "adminId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includeDeleted := validators.QueryBool(r, "includeDeleted")

		admin, err := svc.Get(r.Context(), id, includeDeleted != nil && *includeDeleted)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}

func AdminUpdate(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "adminId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload admins.Payload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "admin", admin.ID), "admin updated")
		responses.WriteSuccess(w, admin)
	}
}

func AdminDelete(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "adminId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "admin", id), "admin deleted")
		responses.WriteMessage(w, "admin deleted")
	}
}

func AdminRestore(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "adminId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		admin, err := svc.Restore(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithResource(r.Context(), "admin", admin.ID), "admin restored")
		responses.WriteSuccess(w, admin)
	}
}
