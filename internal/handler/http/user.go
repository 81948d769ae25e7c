package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Enable(w http.ResponseWriter, r *http.Request)
	Disable(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) UserHandler {
	return &userHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var createReq user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.userService.CreateUser(r.Context(), actor, createReq)
	if err != nil {
		slog.Error("Create user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User created", "username", created.Username, "by", actor.Username)
	response.Created(w, "User created successfully", created)
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	found, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetProfile implements UserHandler.
func (h *userHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// UpdateProfile updates the acting user's own profile.
func (h *userHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, "")
}

// UpdateUser updates another user's profile (admin).
func (h *userHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}
	h.update(w, r, id)
}

func (h *userHandlerImpl) update(w http.ResponseWriter, r *http.Request, targetID string) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var updateReq user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = targetID

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), actor, updateReq)
	if err != nil {
		slog.Error("Update profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", updated)
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := user.UserFilter{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 20),
	}

	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	if role := r.URL.Query().Get("role"); role != "" {
		filter.Role = &role
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Users, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

// Enable implements UserHandler.
func (h *userHandlerImpl) Enable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, true)
}

// Disable implements UserHandler.
func (h *userHandlerImpl) Disable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, false)
}

func (h *userHandlerImpl) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.userService.SetEnabled(r.Context(), actor, id, enabled); err != nil {
		slog.Error("Set enabled service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if enabled {
		response.SuccessWithMessage(w, "User enabled", nil)
		return
	}
	response.SuccessWithMessage(w, "User disabled", nil)
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

func totalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((totalCount + int64(limit) - 1) / int64(limit))
}
