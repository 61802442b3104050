package handler

import (
	"encoding/json"
	"net/http"

	"medicore/pkg/response"
	"medicore/pkg/validator"
)

// decode reads a JSON body into req and validates it. It writes the error
// response itself and reports false when the request is rejected.
func decode(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}
