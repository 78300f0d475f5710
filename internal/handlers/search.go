package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/services"
)

type SearchHandler struct {
	orchestrator services.RecommendationOrchestratorInterface
	logger       *logrus.Logger
}

func NewSearchHandler(
	orchestrator services.RecommendationOrchestratorInterface,
	logger *logrus.Logger,
) *SearchHandler {
	return &SearchHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	preset := services.ParseSearchPreset(c.Query("preset"))

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	response, err := h.orchestrator.Search(c.Request.Context(), query, preset, limit)
	if err != nil {
		h.logger.WithError(err).WithField("query", query).Error("Search failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "SEARCH_FAILED",
				"message": "Failed to search the catalogue",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}
