package rating

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
	protected.POST("/workers/:id/rate", h.Submit)
}

func (h *Handler) Submit(c *gin.Context) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || workerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	summary, err := h.svc.Submit(c.Request.Context(), actor, workerID, req)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Worker not found")
		case ErrRatingRequired:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating is required")
		case ErrRatingNotNumber:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be a number")
		case ErrRatingOutOfRange:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, summary)
}
