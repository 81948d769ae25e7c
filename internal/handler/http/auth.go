package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := h.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in", "username", loginReq.Username)
	response.Success(w, tokenResponse)
}

// ForgotPassword implements AuthHandler.
func (h *authHandlerImpl) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var forgotReq auth.ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&forgotReq); err != nil {
		slog.Error("ForgotPassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := forgotReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), forgotReq); err != nil {
		slog.Error("ForgotPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Same response for known and unknown usernames
	response.SuccessWithMessage(w, "If the account exists, a reset link has been sent", nil)
}

// ResetPassword implements AuthHandler.
func (h *authHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var resetReq auth.ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&resetReq); err != nil {
		slog.Error("ResetPassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := resetReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), resetReq); err != nil {
		slog.Error("ResetPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Password reset completed")
	response.SuccessWithMessage(w, "Password has been reset successfully", nil)
}

// ChangePassword implements AuthHandler.
func (h *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var changeReq auth.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := changeReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), actor, changeReq); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
