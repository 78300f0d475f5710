package services

import (
	"context"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// InteractionServiceInterface defines the interface for interaction recording
type InteractionServiceInterface interface {
	Record(ctx context.Context, req *models.InteractionRequest) (*models.UserPreferenceProfile, error)
	Preferences(ctx context.Context, userID string) (*models.PreferenceSummary, error)
}

// RecommendationOrchestratorInterface defines the interface for recommendation orchestration
type RecommendationOrchestratorInterface interface {
	Recommend(ctx context.Context, userID string, strategy models.Strategy, limit int) (*models.RecommendationResponse, error)
	Search(ctx context.Context, query string, preset SearchPreset, limit int) (*models.SearchResponse, error)
}

// AssistantServiceInterface defines the interface for the conversational assistant
type AssistantServiceInterface interface {
	HandleMessage(ctx context.Context, req *models.AssistantMessageRequest) (*models.AssistantReply, error)
}
