package settlement

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/pkg/response"
)

// Handler handles HTTP requests for balance and settlement queries
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}/balances", h.Balances)
	r.Get("/group/{groupId}/suggested", h.Suggested)

	return r
}

// BalancesResponse pairs per-member positions with the group total.
type BalancesResponse struct {
	Balances     []MemberBalance `json:"balances"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// Balances handles GET /settlements/group/{groupId}/balances
// @Summary      Get projected balances for a group
// @Description  Per-member net positions (positive = owed money) and the group's total recorded amount; balances always sum to zero
// @Tags         settlements
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=BalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, total, err := h.service.Balances(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, BalancesResponse{Balances: balances, TotalBalance: total})
}

// Suggested handles GET /settlements/group/{groupId}/suggested
// @Summary      Suggest settlement transfers for a group
// @Description  A short list of debtor-to-creditor transfers that would settle every balance; advisory only, nothing is recorded
// @Tags         settlements
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]Transfer}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/suggested [get]
func (h *Handler) Suggested(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.service.Suggested(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if transfers == nil {
		transfers = []Transfer{}
	}
	response.JSON(w, http.StatusOK, transfers)
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
