package directory

import (
	"net/http"
	"strconv"

	"homeservice/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Directory endpoints are public; no auth group needed.
func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/worker/worker_list", h.GetList)
	public.GET("/worker/worker_details/:id", h.GetDetail)
}

func (h *Handler) GetList(c *gin.Context) {
	items, err := h.svc.GetList(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"workers": items})
}

func (h *Handler) GetDetail(c *gin.Context) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || workerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	detail, err := h.svc.GetDetail(c.Request.Context(), workerID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Worker not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"worker": detail})
}
