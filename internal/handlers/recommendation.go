package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/services"
	"github.com/MinghowYooo/nexus/pkg/models"
)

type RecommendationHandler struct {
	orchestrator services.RecommendationOrchestratorInterface
	logger       *logrus.Logger
}

func NewRecommendationHandler(
	orchestrator services.RecommendationOrchestratorInterface,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

func (h *RecommendationHandler) Get(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "User ID is required",
			},
		})
		return
	}

	strategy, err := models.ParseStrategy(c.DefaultQuery("strategy", string(models.StrategyHybrid)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_STRATEGY",
				"message": "Strategy must be one of: collaborative, content, hybrid, popular, trending, recent",
			},
		})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	response, err := h.orchestrator.Recommend(c.Request.Context(), userID, strategy, limit)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"strategy": strategy,
		}).Error("Failed to generate recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_FAILED",
				"message": "Failed to generate recommendations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": response,
	})
}
