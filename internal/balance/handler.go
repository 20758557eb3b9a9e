package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Khanalpratyush/splittwise/pkg/middleware"
	"github.com/Khanalpratyush/splittwise/pkg/response"
)

// Handler handles HTTP requests for balance queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Balances)
	return r
}

// Balances handles GET /balances
// @Summary      Compute my balances
// @Description  Net position, per-friend balances, and per-group totals, derived from the current expense set
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=BalancesResponse}
// @Router       /balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	resp, err := h.service.Balances(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
