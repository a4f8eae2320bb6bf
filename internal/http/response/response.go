package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobboard/internal/common"
)

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorRecorder is implemented by response writers that want to see the
// error behind a failed response, e.g. for request logging.
type ErrorRecorder interface {
	RecordError(err error)
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// Error renders err as {"error":{...}}. Internal failures never expose
// their cause to the client.
func Error(w http.ResponseWriter, err error) {
	if recorder, ok := w.(ErrorRecorder); ok {
		recorder.RecordError(err)
	}
	code := common.CodeOf(err)
	payload := errorPayload{Code: code, Message: "internal server error"}
	var appErr *common.Error
	if code != common.CodeInternal && errors.As(err, &appErr) {
		payload.Message = appErr.Message
		payload.Fields = appErr.Fields
	}
	JSON(w, StatusFor(code), errorBody{Error: payload})
}

func StatusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeInvalidState:
		return http.StatusUnprocessableEntity
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
