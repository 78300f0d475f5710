package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/assistant"
	"github.com/MinghowYooo/nexus/pkg/models"
)

// AssistantService turns classified messages into catalogue actions. Signals
// below the confidence threshold fall through to chat so a shaky
// classification never records an interaction on the user's behalf.
type AssistantService struct {
	client       assistant.Client
	orchestrator RecommendationOrchestratorInterface
	interactions InteractionServiceInterface

	confidenceThreshold float64
	resultLimit         int

	logger *logrus.Logger
}

func NewAssistantService(
	client assistant.Client,
	orchestrator RecommendationOrchestratorInterface,
	interactions InteractionServiceInterface,
	confidenceThreshold float64,
	logger *logrus.Logger,
) *AssistantService {
	if confidenceThreshold <= 0 {
		confidenceThreshold = 0.7
	}
	return &AssistantService{
		client:              client,
		orchestrator:        orchestrator,
		interactions:        interactions,
		confidenceThreshold: confidenceThreshold,
		resultLimit:         10,
		logger:              logger,
	}
}

func (s *AssistantService) HandleMessage(ctx context.Context, req *models.AssistantMessageRequest) (*models.AssistantReply, error) {
	signal, err := s.client.Interpret(ctx, req.Message)
	if err != nil {
		return nil, fmt.Errorf("interpret message: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    req.UserID,
		"intent":     signal.Intent,
		"confidence": signal.Confidence,
	}).Debug("Assistant signal")

	if signal.Confidence < s.confidenceThreshold {
		return s.chatReply(signal), nil
	}

	switch signal.Intent {
	case "search":
		return s.handleSearch(ctx, signal)
	case "opinion":
		return s.handleOpinion(ctx, req.UserID, signal)
	default:
		return s.chatReply(signal), nil
	}
}

func (s *AssistantService) handleSearch(ctx context.Context, signal *models.AssistantSignal) (*models.AssistantReply, error) {
	if signal.SearchQuery == "" {
		return s.chatReply(signal), nil
	}

	response, err := s.orchestrator.Search(ctx, signal.SearchQuery, PresetCaptionWeighted, s.resultLimit)
	if err != nil {
		return nil, fmt.Errorf("assistant search: %w", err)
	}

	return &models.AssistantReply{
		Intent:     signal.Intent,
		Confidence: signal.Confidence,
		Results:    response.Results,
	}, nil
}

// handleOpinion resolves the mentioned topic to its best-matching catalogue
// video and records a like or dislike on it. Neutral sentiment and
// unresolvable topics degrade to chat.
func (s *AssistantService) handleOpinion(ctx context.Context, userID string, signal *models.AssistantSignal) (*models.AssistantReply, error) {
	var action models.InteractionAction
	switch signal.Sentiment {
	case "positive":
		action = models.ActionLike
	case "negative":
		action = models.ActionDislike
	default:
		return s.chatReply(signal), nil
	}

	if signal.VideoTopic == "" {
		return s.chatReply(signal), nil
	}

	response, err := s.orchestrator.Search(ctx, signal.VideoTopic, PresetCaptionWeighted, 1)
	if err != nil {
		return nil, fmt.Errorf("resolve opinion topic: %w", err)
	}
	if len(response.Results) == 0 {
		return s.chatReply(signal), nil
	}

	video := response.Results[0].Video
	if _, err := s.interactions.Record(ctx, &models.InteractionRequest{
		UserID:  userID,
		VideoID: video.ID,
		Action:  string(action),
	}); err != nil {
		return nil, fmt.Errorf("record assistant interaction: %w", err)
	}

	return &models.AssistantReply{
		Intent:         signal.Intent,
		Confidence:     signal.Confidence,
		RecordedAction: string(action),
		Message:        fmt.Sprintf("Recorded %s for %q", action, video.Title),
	}, nil
}

func (s *AssistantService) chatReply(signal *models.AssistantSignal) *models.AssistantReply {
	return &models.AssistantReply{
		Intent:     "chat",
		Confidence: signal.Confidence,
		Message:    "I can find videos for you or record what you thought of one. Try asking for a topic.",
	}
}
