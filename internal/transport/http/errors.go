package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeValidationFailed     = "validation_failed"
	codeInvalidID            = "invalid_id"
	codeVenueNotFound        = "venue_not_found"
	codeEventNotFound        = "event_not_found"
	codePerformerNotFound    = "performer_not_found"
	codeBookingNotFound      = "booking_not_found"
	codeVenueNameTaken       = "venue_name_taken"
	codePerformerNameTaken   = "performer_name_taken"
	codePastEvent            = "past_event"
	codeNotOpenForSale       = "not_open_for_sale"
	codePerformerBooked      = "performer_already_booked"
	codeHeadlinerExists      = "headliner_exists"
	codeHeadlinerProtected   = "headliner_protected"
	codeCapacityBelowMinimum = "capacity_below_minimum"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps the service error kinds to HTTP responses:
// not-found kinds to 404, conflicts to 409, invalid input to 400,
// everything else to an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrCapacityBelowMinimum):
		writeError(w, http.StatusBadRequest, codeCapacityBelowMinimum, err.Error())
	case errors.Is(err, domain.ErrVenueNotFound):
		writeError(w, http.StatusNotFound, codeVenueNotFound, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrPerformerNotFound):
		writeError(w, http.StatusNotFound, codePerformerNotFound, err.Error())
	case errors.Is(err, domain.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
	case errors.Is(err, domain.ErrVenueNameTaken):
		writeError(w, http.StatusConflict, codeVenueNameTaken, err.Error())
	case errors.Is(err, domain.ErrPerformerNameTaken):
		writeError(w, http.StatusConflict, codePerformerNameTaken, err.Error())
	case errors.Is(err, domain.ErrPastEvent):
		writeError(w, http.StatusConflict, codePastEvent, err.Error())
	case errors.Is(err, domain.ErrNotOpenForSale):
		writeError(w, http.StatusConflict, codeNotOpenForSale, err.Error())
	case errors.Is(err, domain.ErrPerformerBooked):
		writeError(w, http.StatusConflict, codePerformerBooked, err.Error())
	case errors.Is(err, domain.ErrHeadlinerExists):
		writeError(w, http.StatusConflict, codeHeadlinerExists, err.Error())
	case errors.Is(err, domain.ErrHeadlinerProtected):
		writeError(w, http.StatusConflict, codeHeadlinerProtected, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
