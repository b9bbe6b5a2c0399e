package booking

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
	protected.POST("/workers/:id/book", h.Create)
	protected.GET("/user/bookings", h.ListForUser)
	protected.GET("/worker/bookings", h.ListForWorker)
	protected.PATCH("/bookings/:id/update-status", h.UpdateStatus)
	protected.PATCH("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || workerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	b, err := h.svc.Create(c.Request.Context(), actor, workerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	b, err := h.svc.UpdateStatusByWorker(c.Request.Context(), actor, bookingID, req.Status)
	if err != nil {
		if err == ErrTerminalState {
			response.Error(c, http.StatusBadRequest, "INVALID_STATE", "Booking is in a terminal state")
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	b, err := h.svc.Cancel(c.Request.Context(), actor, bookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListForUser(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.svc.ListForUser(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) ListForWorker(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.svc.ListForWorker(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch err {
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or worker not found")
	case ErrServiceRequired:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Service must be selected")
	case ErrServiceMismatch:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Selected service does not belong to this worker")
	case ErrInvalidStatus:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be one of: accepted, declined, completed, canceled")
	case ErrTerminalState:
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", "Cannot cancel this booking")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date or time format")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
