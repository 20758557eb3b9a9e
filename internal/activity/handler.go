package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Khanalpratyush/splittwise/pkg/middleware"
	"github.com/Khanalpratyush/splittwise/pkg/response"
)

// Handler handles HTTP requests for the activity feed.
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for activity endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List handles GET /activity
// @Summary      Recent activity
// @Description  The 50 newest events on expenses the caller can see
// @Tags         activity
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Activity}
// @Router       /activity [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	activities, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "failed to list activities")
		return
	}

	response.JSON(w, http.StatusOK, activities)
}
