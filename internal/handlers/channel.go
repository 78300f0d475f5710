package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/catalog"
)

type ChannelHandler struct {
	logger  *logrus.Logger
	catalog *catalog.Service
}

func NewChannelHandler(logger *logrus.Logger, catalogService *catalog.Service) *ChannelHandler {
	return &ChannelHandler{
		logger:  logger,
		catalog: catalogService,
	}
}

// GetVideos lists all catalogue entries for one channel, case-insensitive.
func (h *ChannelHandler) GetVideos(c *gin.Context) {
	channelName := c.Param("channelName")
	if channelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_CHANNEL",
				"message": "Channel name is required",
			},
		})
		return
	}

	videos, err := h.catalog.FetchByChannel(c.Request.Context(), channelName)
	if err != nil {
		if errors.Is(err, catalog.ErrUpstreamUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": gin.H{
					"code":    "CATALOG_UNAVAILABLE",
					"message": "Catalogue is temporarily unavailable",
				},
			})
			return
		}

		h.logger.WithError(err).WithField("channel", channelName).Error("Failed to list channel videos")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "CATALOG_FAILED",
				"message": "Failed to load channel videos",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"channel": channelName,
			"videos":  videos,
			"count":   len(videos),
		},
	})
}
