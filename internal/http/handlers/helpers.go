package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

var errEmptyBody = common.NewValidationError("request body is empty", nil)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return common.NewValidationError("request body too large", nil)
		case errors.Is(err, io.EOF):
			return errEmptyBody
		default:
			return common.NewValidationError("invalid json", map[string]string{"body": err.Error()})
		}
	}
	if decoder.More() {
		return common.NewValidationError("invalid json", map[string]string{"body": "unexpected trailing data"})
	}
	return nil
}

// idFromPath parses the path segment at idx, counting from the first
// segment after the leading slash.
func idFromPath(r *http.Request, idx int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if idx >= len(parts) {
		return "", common.NewError(common.CodeNotFound, "resource not found", nil)
	}
	id, err := common.ParseUUID(parts[idx])
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

// principal writes a 401 and reports false when no principal is attached.
func principal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
	}
	return p, ok
}

type statusRequest struct {
	Status string `json:"status"`
}
