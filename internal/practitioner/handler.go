package practitioner

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/messaging"
)

type Handler struct {
	service   ServiceInterface
	publisher messaging.PublisherInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// WithPublisher attaches an event publisher for registration announcements.
func (h *Handler) WithPublisher(p messaging.PublisherInterface) *Handler {
	h.publisher = p
	return h
}

// Signup registers a new practitioner account. Public endpoint.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	account, err := h.service.Signup(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyUsed):
			respondError(w, http.StatusConflict, "email_in_use", err.Error())
		case errors.Is(err, ErrMissingName),
			errors.Is(err, ErrMissingEmail),
			errors.Is(err, ErrMissingPassword),
			errors.Is(err, ErrMissingSpecialty),
			errors.Is(err, ErrMissingLicenseNumber):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "signup_failed", err.Error())
		}
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(r.Context(), messaging.EventPractitionerRegistered, messaging.PractitionerRegisteredEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventPractitionerRegistered),
			Data: messaging.PractitionerRegisteredData{
				PractitionerID: account.ID,
				Specialty:      account.Specialty,
				Verified:       account.Verified,
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PractitionerSuccessResponse{
		Success:      true,
		Message:      "Practitioner registered successfully",
		Practitioner: account,
	})
}

// Login opens the practitioner session and returns a bearer token. Public
// endpoint.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	token, account, err := h.service.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
		case errors.Is(err, ErrNotVerified):
			respondError(w, http.StatusForbidden, "not_verified", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "login_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		Success:      true,
		Token:        token,
		Practitioner: account,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	if err := h.service.Logout(); err != nil {
		respondError(w, http.StatusInternalServerError, "logout_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Session closed successfully",
	})
}

// GetMe returns the authenticated practitioner's own profile.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	account, err := h.service.Get(principal.PractitionerID)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PractitionerSuccessResponse{
		Success:      true,
		Message:      "Practitioner retrieved successfully",
		Practitioner: account,
	})
}

// Reverify attaches a new credential document to an account.
func (h *Handler) Reverify(w http.ResponseWriter, r *http.Request) {
	_, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Practitioner ID is required")
		return
	}

	var body struct {
		CredentialDoc string `json:"credential_doc"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	account, err := h.service.Reverify(id, body.CredentialDoc)
	if err != nil {
		switch {
		case errors.Is(err, ErrPractitionerNotFound):
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, ErrMissingCredentialDoc):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "reverify_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PractitionerSuccessResponse{
		Success:      true,
		Message:      "Practitioner re-verified successfully",
		Practitioner: account,
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
