package auth

import (
	"net/http"

	"homeservice/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	authGroup := public.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidRole:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Role must be user or worker")
		case ErrUsernameTaken:
			response.Error(c, http.StatusConflict, "USERNAME_EXISTS", "This username is already registered")
		case ErrEmailTaken:
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserPublic{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role.String(),
		},
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role.String(),
		},
		"token": token,
	})
}
