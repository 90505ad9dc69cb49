package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/pkg/middleware"
	"github.com/wesplit/wesplit/pkg/response"
)

// Handler handles HTTP requests for group chat
type Handler struct {
	service *Service
}

// NewHandler creates a new chat handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for chat endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/group/{groupId}/messages", h.Post)
	r.Get("/group/{groupId}/messages", h.ListByGroup)

	return r
}

// PostMessageRequest represents a message to send
type PostMessageRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// Post handles POST /chat/group/{groupId}/messages
// @Summary      Post a chat message to a group
// @Description  The acting member (X-Member-ID header) must belong to the group
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body PostMessageRequest true "Message"
// @Success      201 {object} response.APIResponse{data=Message}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /chat/group/{groupId}/messages [post]
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.BadRequest(w, "Acting member is required")
		return
	}

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	msg, err := h.service.Post(r.Context(), chi.URLParam(r, "groupId"), memberID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, msg)
}

// ListByGroup handles GET /chat/group/{groupId}/messages
// @Summary      List a group's chat messages
// @Tags         chat
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]Message}
// @Failure      404 {object} response.APIResponse
// @Router       /chat/group/{groupId}/messages [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListByGroup(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messages)
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
