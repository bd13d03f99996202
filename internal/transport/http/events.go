package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rb3ni/FeelGoodApp/internal/app"
	"github.com/rb3ni/FeelGoodApp/internal/clock"
	"github.com/rb3ni/FeelGoodApp/internal/domain"
)

// maxTicketCount caps the reserved-ticket count accepted at event
// creation.
const maxTicketCount = 200

// EventService is the minimal interface needed for event endpoints.
type EventService interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, eventID string) (app.EventDetail, error)
	AddPerformer(ctx context.Context, in app.AddPerformerInput) (app.EventDetail, error)
	RemovePerformer(ctx context.Context, eventID, performerID string) error
	UpdateEventDate(ctx context.Context, eventID string, newDate time.Time) (domain.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// AdmissionService is the minimal interface needed for the participant
// sub-resource of an event.
type AdmissionService interface {
	Admit(ctx context.Context, in app.AdmitInput) (app.AdmissionResult, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Participant, error)
}

// HandleEvents returns an HTTP handler for event creation/listing.
func HandleEvents(svc EventService, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			events, err := svc.ListEvents(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]eventResponse, 0, len(events))
			for _, event := range events {
				resp = append(resp, toEventResponse(event))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createEventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			eventDate, msg, ok := req.validate(clk.Now())
			if !ok {
				writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
				return
			}

			event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
				EventDate:   eventDate,
				TicketCount: req.TicketCount,
				VenueID:     req.VenueID,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toEventResponse(event))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleEventTree returns an HTTP handler for everything under
// /events/{id}: the event itself, its roster and its participants.
func HandleEventTree(events EventService, admissions AdmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "events" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		eventID := parts[1]

		switch {
		case len(parts) == 2:
			handleEventByID(w, r, events, eventID)
		case len(parts) == 3 && parts[2] == "performers":
			handleAddPerformer(w, r, events, eventID)
		case len(parts) == 4 && parts[2] == "performers" && parts[3] != "":
			handleRemovePerformer(w, r, events, eventID, parts[3])
		case len(parts) == 3 && parts[2] == "participants":
			handleEventParticipants(w, r, admissions, eventID)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleEventByID(w http.ResponseWriter, r *http.Request, svc EventService, eventID string) {
	switch r.Method {
	case http.MethodGet:
		detail, err := svc.GetEvent(r.Context(), eventID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventDetailResponse(detail))
		return
	case http.MethodPut:
		var req updateEventDateRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		newDate, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid event_date format")
			return
		}

		event, err := svc.UpdateEventDate(r.Context(), eventID, newDate)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
		return
	case http.MethodDelete:
		if err := svc.DeleteEvent(r.Context(), eventID); err != nil {
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

func handleAddPerformer(w http.ResponseWriter, r *http.Request, svc EventService, eventID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	var req addPerformerRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if req.PerformerID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "performer_id is required")
		return
	}

	detail, err := svc.AddPerformer(r.Context(), app.AddPerformerInput{
		EventID:     eventID,
		PerformerID: req.PerformerID,
		IsHeadliner: req.IsHeadliner,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toEventDetailResponse(detail))
}

func handleRemovePerformer(w http.ResponseWriter, r *http.Request, svc EventService, eventID, performerID string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	if err := svc.RemovePerformer(r.Context(), eventID, performerID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleEventParticipants(w http.ResponseWriter, r *http.Request, svc AdmissionService, eventID string) {
	switch r.Method {
	case http.MethodGet:
		participants, err := svc.ListByEvent(r.Context(), eventID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := make([]participantResponse, 0, len(participants))
		for _, p := range participants {
			resp = append(resp, toParticipantResponse(p))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
		return
	case http.MethodPost:
		var req admitParticipantRequest
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

		result, err := svc.Admit(r.Context(), app.AdmitInput{
			EventID: eventID,
			Name:    req.Name,
			Email:   req.Email,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := admissionResponse{
			Participant:        toParticipantResponse(result.Participant),
			TicketCounter:      result.Event.TicketCounter,
			AvailableForPublic: result.Event.AvailableForPublic,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
		return
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
}

type createEventRequest struct {
	EventDate   string `json:"event_date"`
	TicketCount int    `json:"ticket_count"`
	VenueID     string `json:"venue_id"`
}

// validate parses the event date and checks it lies in the future.
// Creation is the only place the date itself is validated; later date
// changes are guarded against the current date instead.
func (r createEventRequest) validate(now time.Time) (time.Time, string, bool) {
	if r.VenueID == "" {
		return time.Time{}, "venue_id is required", false
	}
	if r.EventDate == "" {
		return time.Time{}, "event_date is required", false
	}
	eventDate, err := time.Parse(time.RFC3339, r.EventDate)
	if err != nil {
		return time.Time{}, "invalid event_date format", false
	}
	if !eventDate.After(now) {
		return time.Time{}, "event_date must be in the future", false
	}
	if r.TicketCount <= 0 {
		return time.Time{}, "ticket_count must be positive", false
	}
	if r.TicketCount > maxTicketCount {
		return time.Time{}, "ticket_count must be at most 200", false
	}
	return eventDate, "", true
}

type updateEventDateRequest struct {
	EventDate string `json:"event_date"`
}

type addPerformerRequest struct {
	PerformerID string `json:"performer_id"`
	IsHeadliner bool   `json:"is_headliner"`
}

type admitParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r admitParticipantRequest) validate() (string, bool) {
	if strings.TrimSpace(r.Name) == "" {
		return "name must not be blank", false
	}
	if strings.TrimSpace(r.Email) == "" {
		return "email must not be blank", false
	}
	if !validEmail(r.Email) {
		return "email must be a valid address", false
	}
	return "", true
}

type eventResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	EventDate          time.Time `json:"event_date"`
	AvailableForPublic bool      `json:"available_for_public"`
	Price              float64   `json:"price"`
	TicketCounter      int       `json:"ticket_counter"`
	VenueID            string    `json:"venue_id"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:                 e.ID,
		Name:               e.Name,
		EventDate:          e.EventDate,
		AvailableForPublic: e.AvailableForPublic,
		Price:              e.Price,
		TicketCounter:      e.TicketCounter,
		VenueID:            e.VenueID,
	}
}

type rosterEntryResponse struct {
	PerformerID  string    `json:"performer_id"`
	IsHeadliner  bool      `json:"is_headliner"`
	RegisteredAt time.Time `json:"registered_at"`
}

type eventDetailResponse struct {
	eventResponse
	Roster       []rosterEntryResponse `json:"roster"`
	Participants []participantResponse `json:"participants"`
}

func toEventDetailResponse(d app.EventDetail) eventDetailResponse {
	roster := make([]rosterEntryResponse, 0, len(d.Roster))
	for _, entry := range d.Roster {
		roster = append(roster, rosterEntryResponse{
			PerformerID:  entry.PerformerID,
			IsHeadliner:  entry.IsHeadliner,
			RegisteredAt: entry.RegisteredAt,
		})
	}
	participants := make([]participantResponse, 0, len(d.Participants))
	for _, p := range d.Participants {
		participants = append(participants, toParticipantResponse(p))
	}
	return eventDetailResponse{
		eventResponse: toEventResponse(d.Event),
		Roster:        roster,
		Participants:  participants,
	}
}

type participantResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	EventID string `json:"event_id"`
}

func toParticipantResponse(p domain.Participant) participantResponse {
	return participantResponse{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		EventID: p.EventID,
	}
}

type admissionResponse struct {
	Participant        participantResponse `json:"participant"`
	TicketCounter      int                 `json:"ticket_counter"`
	AvailableForPublic bool                `json:"available_for_public"`
}
