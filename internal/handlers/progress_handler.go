package handlers

import (
	"context"
	"net/http"

	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// GetSummary reports the caller's streaks, completions, badges and per-path
// progress, covering every path in the catalog.
func (h *ProgressHandler) GetSummary(c *gin.Context) {
	summary, err := h.Service.GetProgressSummary(context.Background(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
