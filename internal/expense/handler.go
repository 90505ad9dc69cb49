package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	// Group-based operations
	r.Get("/group/{groupId}", h.ListByGroup)
	r.Put("/group/{groupId}/{expenseId}", h.Update)
	r.Delete("/group/{groupId}/{expenseId}", h.Delete)

	return r
}

// Create handles POST /expenses
// @Summary      Create a new expense
// @Description  Record an expense split by the equal, unequal or percentage method; group total and member balances update atomically
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	e, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, ToResponse(e))
}

// ListByGroup handles GET /expenses/group/{groupId}
// @Summary      List expenses for a group
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.ListByGroup(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]*ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToResponse(&expenses[i])
	}
	response.JSON(w, http.StatusOK, out)
}

// Update handles PUT /expenses/group/{groupId}/{expenseId}
// @Summary      Edit an expense
// @Description  Apply a partial edit; the group total is reconciled by the amount delta and balances are recomputed
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        expenseId path string true "Expense ID"
// @Param        request body UpdateExpenseRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/group/{groupId}/{expenseId} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	e, err := h.service.Update(r.Context(), chi.URLParam(r, "groupId"), chi.URLParam(r, "expenseId"), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ToResponse(e))
}

// Delete handles DELETE /expenses/group/{groupId}/{expenseId}
// @Summary      Delete an expense
// @Description  Remove an expense, retracting its amount from the group total and recomputing balances
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        expenseId path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/group/{groupId}/{expenseId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "groupId"), chi.URLParam(r, "expenseId"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
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
