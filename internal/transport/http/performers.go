package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/app"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

// PerformerService is the minimal interface needed for performer
// endpoints.
type PerformerService interface {
	CreatePerformer(ctx context.Context, in app.CreatePerformerInput) (domain.Performer, error)
	ListPerformers(ctx context.Context) ([]domain.Performer, error)
	GetPerformerDetail(ctx context.Context, performerID string) (app.PerformerDetail, error)
	UpdatePerformerTier(ctx context.Context, performerID string, tier domain.PartnerTier) (domain.Performer, error)
	DeletePerformer(ctx context.Context, performerID string) error
}

// HandlePerformers returns an HTTP handler for performer
// creation/listing.
func HandlePerformers(svc PerformerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			performers, err := svc.ListPerformers(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]performerResponse, 0, len(performers))
			for _, performer := range performers {
				resp = append(resp, toPerformerResponse(performer))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createPerformerRequest
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

			performer, err := svc.CreatePerformer(r.Context(), app.CreatePerformerInput{
				Name:         req.Name,
				Email:        req.Email,
				ContactPhone: req.ContactPhone,
				Genre:        domain.Genre(req.Genre),
				PartnerTier:  domain.PartnerTier(req.PartnerTier),
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toPerformerResponse(performer))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandlePerformerByID returns an HTTP handler for fetching, re-tiering
// and deleting a single performer.
func HandlePerformerByID(svc PerformerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		performerID, ok := parsePerformerPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			detail, err := svc.GetPerformerDetail(r.Context(), performerID)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toPerformerDetailResponse(detail))
			return
		case http.MethodPut:
			var req updatePerformerTierRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			tier := domain.PartnerTier(req.PartnerTier)
			if !tier.Valid() {
				writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown partner_tier")
				return
			}

			performer, err := svc.UpdatePerformerTier(r.Context(), performerID, tier)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toPerformerResponse(performer))
			return
		case http.MethodDelete:
			if err := svc.DeletePerformer(r.Context(), performerID); err != nil {
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

func parsePerformerPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "performers" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type createPerformerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ContactPhone string `json:"contact_phone"`
	Genre        string `json:"genre"`
	PartnerTier  string `json:"partner_tier"`
}

func (r createPerformerRequest) validate() (string, bool) {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "name must not be blank", false
	case len(r.Name) > 50:
		return "name must be at most 50 characters", false
	case strings.TrimSpace(r.Email) == "":
		return "email must not be blank", false
	case !validEmail(r.Email):
		return "email must be a valid address", false
	case strings.TrimSpace(r.ContactPhone) == "":
		return "contact_phone must not be blank", false
	case len(r.ContactPhone) > 15:
		return "contact_phone must be at most 15 characters", false
	case !domain.Genre(r.Genre).Valid():
		return "unknown genre", false
	case !domain.PartnerTier(r.PartnerTier).Valid():
		return "unknown partner_tier", false
	}
	return "", true
}

func validEmail(addr string) bool {
	_, err := mail.ParseAddress(addr)
	return err == nil
}

type updatePerformerTierRequest struct {
	PartnerTier string `json:"partner_tier"`
}

type performerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ContactPhone string `json:"contact_phone"`
	Genre        string `json:"genre"`
	PartnerTier  string `json:"partner_tier"`
}

func toPerformerResponse(p domain.Performer) performerResponse {
	return performerResponse{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		ContactPhone: p.ContactPhone,
		Genre:        string(p.Genre),
		PartnerTier:  string(p.PartnerTier),
	}
}

type bookingResponse struct {
	EventID      string    `json:"event_id"`
	IsHeadliner  bool      `json:"is_headliner"`
	RegisteredAt time.Time `json:"registered_at"`
}

type performerDetailResponse struct {
	performerResponse
	Bookings []bookingResponse `json:"bookings"`
}

func toPerformerDetailResponse(d app.PerformerDetail) performerDetailResponse {
	bookings := make([]bookingResponse, 0, len(d.Bookings))
	for _, entry := range d.Bookings {
		bookings = append(bookings, bookingResponse{
			EventID:      entry.EventID,
			IsHeadliner:  entry.IsHeadliner,
			RegisteredAt: entry.RegisteredAt,
		})
	}
	return performerDetailResponse{
		performerResponse: toPerformerResponse(d.Performer),
		Bookings:          bookings,
	}
}
