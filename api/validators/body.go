package validators

import (
	"encoding/json"
	"io"
	"net/http"

	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
)

// DecodeJSONBody decodes the request body into dest, rejecting unknown
// keys. Rule validation happens later in the service layer, which knows
// whether the payload is for a create or an update.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails([]string{"body: " + err.Error()})
	}
	return nil
}
