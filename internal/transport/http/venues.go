package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rb3ni/FeelGoodApp/internal/app"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

// VenueService is the minimal interface needed for venue endpoints.
type VenueService interface {
	CreateVenue(ctx context.Context, in app.CreateVenueInput) (domain.Venue, error)
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
}

// HandleVenues returns an HTTP handler for venue creation/listing.
func HandleVenues(svc VenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			venues, err := svc.ListVenues(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]venueResponse, 0, len(venues))
			for _, venue := range venues {
				resp = append(resp, toVenueResponse(venue))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createVenueRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if msg, ok := req.validate(); !ok {
				writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
				return
			}

			venue, err := svc.CreateVenue(r.Context(), app.CreateVenueInput{
				Name:         req.Name,
				ContactPhone: req.ContactPhone,
				Address:      req.Address,
				Capacity:     req.Capacity,
				Type:         domain.VenueType(req.VenueType),
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toVenueResponse(venue))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleVenueByID returns an HTTP handler for fetching/deleting a single venue.
func HandleVenueByID(svc VenueService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venueID, ok := parseVenuePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			venue, err := svc.GetVenue(r.Context(), venueID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toVenueResponse(venue))
			return
		case http.MethodDelete:
			if err := svc.DeleteVenue(r.Context(), venueID); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

func parseVenuePath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "venues" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type createVenueRequest struct {
	Name         string `json:"name"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	Capacity     int    `json:"capacity"`
	VenueType    string `json:"venue_type"`
}

func (r createVenueRequest) validate() (string, bool) {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "name must not be blank", false
	case len(r.Name) > 50:
		return "name must be at most 50 characters", false
	case strings.TrimSpace(r.ContactPhone) == "":
		return "contact_phone must not be blank", false
	case len(r.ContactPhone) > 15:
		return "contact_phone must be at most 15 characters", false
	case strings.TrimSpace(r.Address) == "":
		return "address must not be blank", false
	case len(r.Address) > 150:
		return "address must be at most 150 characters", false
	case r.Capacity <= 0:
		return "capacity must be positive", false
	case !domain.VenueType(r.VenueType).Valid():
		return "unknown venue_type", false
	}
	return "", true
}

type venueResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	Capacity     int    `json:"capacity"`
	VenueType    string `json:"venue_type"`
}

func toVenueResponse(v domain.Venue) venueResponse {
	return venueResponse{
		ID:           v.ID,
		Name:         v.Name,
		ContactPhone: v.ContactPhone,
		Address:      v.Address,
		Capacity:     v.Capacity,
		VenueType:    string(v.Type),
	}
}
