package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/services"
)

type UserHandler struct {
	logger         *logrus.Logger
	interactionSvc services.InteractionServiceInterface
}

func NewUserHandler(logger *logrus.Logger, interactionSvc services.InteractionServiceInterface) *UserHandler {
	return &UserHandler{
		logger:         logger,
		interactionSvc: interactionSvc,
	}
}

func (h *UserHandler) GetPreferences(c *gin.Context) {
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

	summary, err := h.interactionSvc.Preferences(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to build preference summary")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "PREFERENCES_FAILED",
				"message": "Failed to load user preferences",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}
