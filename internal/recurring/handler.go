package recurring

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wesplit/wesplit/internal/expense"
	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/pkg/response"
)

// Handler handles HTTP requests for recurring template operations
type Handler struct {
	service *Service
}

// NewHandler creates a new recurring template handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for recurring template endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/toggle", h.Toggle)
	r.Post("/materialize", h.Materialize)

	// Group-based listing
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Create handles POST /recurring
// @Summary      Create a recurring expense template
// @Description  Templates do not affect balances until materialized into concrete expenses
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Param        request body CreateTemplateRequest true "Template creation request"
// @Success      201 {object} response.APIResponse{data=TemplateResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /recurring [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	t, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, ToResponse(t))
}

// Update handles PUT /recurring/{id}
// @Summary      Edit a recurring template
// @Description  Changing the start date or repeat cycle recomputes the next due date from today
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Param        id path string true "Template ID"
// @Param        request body UpdateTemplateRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=TemplateResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /recurring/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	t, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ToResponse(t))
}

// Delete handles DELETE /recurring/{id}
// @Summary      Delete a recurring template
// @Description  Removes the template permanently; already materialized expenses are untouched
// @Tags         recurring
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /recurring/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Toggle handles POST /recurring/{id}/toggle
// @Summary      Activate or deactivate a recurring template
// @Description  The next due date is left untouched; toggling to the current state is a conflict
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Param        id path string true "Template ID"
// @Param        request body ToggleTemplateRequest true "Target state"
// @Success      200 {object} response.APIResponse{data=TemplateResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /recurring/{id}/toggle [post]
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	t, err := h.service.Toggle(r.Context(), chi.URLParam(r, "id"), req.IsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ToResponse(t))
}

// ListByGroup handles GET /recurring/group/{groupId}?active=true
// @Summary      List recurring templates for a group
// @Tags         recurring
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        active query bool false "Only active templates"
// @Success      200 {object} response.APIResponse{data=[]TemplateResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /recurring/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	templates, err := h.service.ListByGroup(r.Context(), chi.URLParam(r, "groupId"), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]*TemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = ToResponse(t)
	}
	response.JSON(w, http.StatusOK, out)
}

// Materialize handles POST /recurring/materialize
// @Summary      Materialize due recurring templates
// @Description  Creates one concrete expense per elapsed due date of every active template; idempotent per due date
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Param        request body MaterializeRequest false "Optional reference date"
// @Success      200 {object} response.APIResponse{data=MaterializeResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /recurring/materialize [post]
func (h *Handler) Materialize(w http.ResponseWriter, r *http.Request) {
	var req MaterializeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}

	ref := time.Now()
	if req.ReferenceDate != "" {
		d, err := parseDate(req.ReferenceDate)
		if err != nil {
			writeError(w, err)
			return
		}
		ref = d
	}

	created, err := h.service.Materialize(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := MaterializeResponse{Count: len(created), Created: []*expense.ExpenseResponse{}}
	for i := range created {
		resp.Created = append(resp.Created, expense.ToResponse(&created[i]))
	}
	response.JSON(w, http.StatusOK, resp)
}

// writeError maps ledger error categories onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ledger.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ledger.ErrStateConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, "Unexpected error")
	}
}
