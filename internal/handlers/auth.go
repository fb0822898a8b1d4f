package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"threadbox/internal/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "All fields are required")
		return
	}

	_, err := h.auth.Register(req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		errorJSON(c, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, auth.ErrEmailExists):
		errorJSON(c, http.StatusBadRequest, "An account with this email already exists.")
	case errors.Is(err, auth.ErrUsernameExists):
		errorJSON(c, http.StatusBadRequest, "This username is already taken.")
	case err != nil:
		internalError(c, h.logger, "Registration failed. Please try again.", err)
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Registration successful!"})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Email == "" || req.Password == "" {
		errorJSON(c, http.StatusBadRequest, "All fields are required")
		return
	}

	token, user, err := h.auth.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		errorJSON(c, http.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		internalError(c, h.logger, "Login failed. Please try again.", err)
	default:
		c.JSON(http.StatusOK, gin.H{
			"token":    token,
			"username": user.Username,
			"id":       user.ID,
		})
	}
}
