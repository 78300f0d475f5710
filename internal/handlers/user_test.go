package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MinghowYooo/nexus/pkg/models"
)

func TestUserHandler_GetPreferences(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockInteractionService)
	mockService.On("Preferences", mock.Anything, "u1").
		Return(&models.PreferenceSummary{
			UserID:            "u1",
			TotalInteractions: 4,
			LikedCount:        3,
			ViewedCount:       1,
			TopChannels:       []models.ChannelCount{{Name: "Cat Central", Count: 2}},
			TopTags:           []models.TagCount{{Tag: "cats", Count: 2}},
		}, nil)

	handler := NewUserHandler(testHandlerLogger(), mockService)

	req, _ := http.NewRequest("GET", "/api/v1/users/u1/preferences", nil)
	w := httptest.NewRecorder()

	router := gin.New()
	router.GET("/api/v1/users/:userId/preferences", handler.GetPreferences)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data models.PreferenceSummary `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "u1", response.Data.UserID)
	assert.Equal(t, 4, response.Data.TotalInteractions)
	assert.Equal(t, "Cat Central", response.Data.TopChannels[0].Name)
	mockService.AssertExpectations(t)
}

func TestUserHandler_GetPreferences_ServiceFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockInteractionService)
	mockService.On("Preferences", mock.Anything, "u1").Return(nil, assert.AnError)

	handler := NewUserHandler(testHandlerLogger(), mockService)

	req, _ := http.NewRequest("GET", "/api/v1/users/u1/preferences", nil)
	w := httptest.NewRecorder()

	router := gin.New()
	router.GET("/api/v1/users/:userId/preferences", handler.GetPreferences)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "PREFERENCES_FAILED")
}
