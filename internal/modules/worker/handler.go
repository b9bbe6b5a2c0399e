package worker

import (
	"net/http"
	"strconv"

	"homeservice/internal/middleware"
	"homeservice/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	wg := protected.Group("/worker")
	{
		wg.GET("/me", h.GetProfile)
		wg.PUT("/me", h.UpdateProfile)
		wg.GET("/services", h.ListServices)
		wg.POST("/services", h.AddService)
		wg.DELETE("/services/:id", h.RemoveService)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	w, err := h.svc.GetProfile(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"worker": w})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	w, err := h.svc.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"worker": w})
}

func (h *Handler) ListServices(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.svc.ListServices(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": items})
}

func (h *Handler) AddService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	svc, err := h.svc.AddService(c.Request.Context(), actor, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) RemoveService(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || serviceID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID")
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.RemoveService(c.Request.Context(), actor, serviceID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": serviceID})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Worker profile or service not found")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
