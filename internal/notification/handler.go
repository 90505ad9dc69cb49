package notification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/pkg/middleware"
	"github.com/wesplit/wesplit/pkg/response"
)

// Handler handles HTTP requests for invite notifications
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for notification endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/invites", h.SendInvite)
	r.Get("/", h.List)

	return r
}

// SendInviteRequest represents the request to invite someone to a group
type SendInviteRequest struct {
	GroupID       string `json:"group_id" validate:"required"`
	Channel       string `json:"channel" validate:"required"` // email, sms, whatsapp, share
	Recipient     string `json:"recipient,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
}

// SendInvite handles POST /notifications/invites
// @Summary      Send a group invite
// @Description  Composes an invite for the requested channel and records it in the outbox; delivery is fire-and-forget
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body SendInviteRequest true "Invite request"
// @Success      201 {object} response.APIResponse{data=Notification}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /notifications/invites [post]
func (h *Handler) SendInvite(w http.ResponseWriter, r *http.Request) {
	var req SendInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	inviterID, _ := middleware.GetMemberID(r.Context())
	n, err := h.service.SendInvite(r.Context(), req.GroupID, Channel(req.Channel), req.Recipient, req.RecipientName, inviterID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, n)
}

// List handles GET /notifications
// @Summary      List dispatched notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Notification}
// @Router       /notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.List(r.Context()))
}

// writeError maps ledger error categories onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ledger.ErrValidation):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Unexpected error")
	}
}
