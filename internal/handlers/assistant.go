package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/services"
	"github.com/MinghowYooo/nexus/pkg/models"
)

type AssistantHandler struct {
	logger       *logrus.Logger
	assistantSvc services.AssistantServiceInterface
	validator    *validator.Validate
}

func NewAssistantHandler(logger *logrus.Logger, assistantSvc services.AssistantServiceInterface) *AssistantHandler {
	return &AssistantHandler{
		logger:       logger,
		assistantSvc: assistantSvc,
		validator:    validator.New(),
	}
}

func (h *AssistantHandler) Message(c *gin.Context) {
	var req models.AssistantMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to bind assistant message request")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid request format",
				"details": err.Error(),
			},
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.logger.WithError(err).Error("Validation failed for assistant message")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Request validation failed",
				"details": err.Error(),
			},
		})
		return
	}

	reply, err := h.assistantSvc.HandleMessage(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", req.UserID).Error("Assistant message failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "ASSISTANT_FAILED",
				"message": "Failed to process message",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": reply,
	})
}
