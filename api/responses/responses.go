package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/listing"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Success: true, Data: data})
}

func WriteMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Success: true, Message: message})
}

// WriteList wraps a result page with its pagination block and the
// filters that produced it, echoed back for client display.
func WriteList(w http.ResponseWriter, data any, pagination listing.Pagination, filters any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
		Filters:    filters,
	})
}

// WriteError translates any error into the response envelope, using the
// code metadata for the status and falling back to a generic message
// when the code does not allow detail exposure.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	var message any = meta.PublicMessage
	if meta.DetailsAllowed {
		if m := typed.Message(); m != "" {
			message = m
		}
		// Validation failures carry the full field message list.
		if details, ok := typed.Details().([]string); ok && len(details) > 0 {
			message = details
		}
	} else if typed.Code() == pkgerrors.CodeNotFound || typed.Code() == pkgerrors.CodeRateLimit {
		if m := typed.Message(); m != "" {
			message = m
		}
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code":  string(typed.Code()),
			"http_status": meta.HTTPStatus,
		})
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request failed", err)
		} else {
			logg.Debug(ctx, "request rejected: "+typed.Error())
		}
	}

	writeJSON(w, meta.HTTPStatus, types.ErrorEnvelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
