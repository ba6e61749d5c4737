package helpers

import (
	"encoding/json"
	"net/http"

	"meetupservice/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
	ErrCodeUnavailable   = "unavailable"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses. Data and Error may both be set
// when a service envelope describes a failed operation.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	WriteJSON(w, statusCode, data, nil)
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, nil, &APIError{Code: code, Message: message})
}

// WriteJSON writes an APIResponse carrying both data and apiErr.
func WriteJSON(w http.ResponseWriter, statusCode int, data any, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: apiErr})
}

// StatusForReason maps a failure reason to its HTTP status and error code.
func StatusForReason(reason domain.FailureReason) (int, string) {
	switch reason {
	case domain.ReasonValidation:
		return http.StatusBadRequest, ErrCodeBadRequest
	case domain.ReasonNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case domain.ReasonConflict:
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteResult writes a MeetupResult. Successful results use successStatus; failed ones carry the
// result in data and the mapped error alongside it.
func WriteResult(w http.ResponseWriter, successStatus int, res domain.MeetupResult) {
	if res.Success {
		WriteJSONSuccess(w, successStatus, res)
		return
	}
	status, code := StatusForReason(res.Reason)
	WriteJSON(w, status, res, &APIError{Code: code, Message: res.Message})
}
