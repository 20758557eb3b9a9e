package friend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Khanalpratyush/splittwise/pkg/middleware"
	"github.com/Khanalpratyush/splittwise/pkg/response"
)

// AddFriendRequest is the payload for adding a friend.
type AddFriendRequest struct {
	FriendID int64 `json:"friend_id"`
}

// Handler handles HTTP requests for friendships.
type Handler struct {
	service *Service
}

// NewHandler creates a new friend handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for friend endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/add", h.Add)
	return r
}

// List handles GET /friends
// @Summary      List my friends
// @Tags         friends
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Friend}
// @Router       /friends [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	friends, err := h.service.ListFriends(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "failed to list friends")
		return
	}

	response.JSON(w, http.StatusOK, friends)
}

// Add handles POST /friends/add
// @Summary      Add a friend
// @Description  Establishes a mutual friendship; adding an existing friend is a no-op
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        friend body AddFriendRequest true "Friend to add"
// @Success      201 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/add [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.FriendID <= 0 {
		response.BadRequest(w, "friend_id is required")
		return
	}

	if err := h.service.AddFriend(r.Context(), userID, req.FriendID); err != nil {
		switch {
		case errors.Is(err, ErrSelfFriend):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "failed to add friend")
		}
		return
	}

	response.JSON(w, http.StatusCreated, map[string]int64{"friend_id": req.FriendID})
}
