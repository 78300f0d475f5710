package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinghowYooo/nexus/pkg/models"
)

type fakeAssistantClient struct {
	signal *models.AssistantSignal
	err    error
}

func (c *fakeAssistantClient) Interpret(ctx context.Context, message string) (*models.AssistantSignal, error) {
	return c.signal, c.err
}

func testAssistantService(t *testing.T, signal *models.AssistantSignal) (*AssistantService, PreferenceStore) {
	t.Helper()

	orchestrator, store := testOrchestrator(t)
	interactions, _ := testInteractionService(t, nil)

	svc := NewAssistantService(
		&fakeAssistantClient{signal: signal},
		orchestrator,
		interactions,
		0.7,
		testLogger(),
	)
	return svc, store
}

func TestAssistantService_SearchIntent(t *testing.T) {
	svc, _ := testAssistantService(t, &models.AssistantSignal{
		Intent:      "search",
		Confidence:  0.95,
		SearchQuery: "keyboard",
	})

	reply, err := svc.HandleMessage(context.Background(), &models.AssistantMessageRequest{
		UserID:  "u1",
		Message: "show me keyboard videos",
	})
	require.NoError(t, err)

	assert.Equal(t, "search", reply.Intent)
	require.NotEmpty(t, reply.Results)
	for _, res := range reply.Results {
		assert.Contains(t, []string{"tech-1", "tech-2"}, res.Video.ID)
	}
}

func TestAssistantService_OpinionIntentRecordsLike(t *testing.T) {
	svc, _ := testAssistantService(t, &models.AssistantSignal{
		Intent:     "opinion",
		Confidence: 0.9,
		Sentiment:  "positive",
		VideoTopic: "Funny Cat Compilation",
	})

	reply, err := svc.HandleMessage(context.Background(), &models.AssistantMessageRequest{
		UserID:  "u1",
		Message: "I loved that cat compilation",
	})
	require.NoError(t, err)

	assert.Equal(t, "opinion", reply.Intent)
	assert.Equal(t, "like", reply.RecordedAction)
	assert.Contains(t, reply.Message, "Funny Cat Compilation")
}

func TestAssistantService_OpinionIntentRecordsDislike(t *testing.T) {
	svc, _ := testAssistantService(t, &models.AssistantSignal{
		Intent:     "opinion",
		Confidence: 0.85,
		Sentiment:  "negative",
		VideoTopic: "Keyboard Switch Guide",
	})

	reply, err := svc.HandleMessage(context.Background(), &models.AssistantMessageRequest{
		UserID:  "u1",
		Message: "that switch guide was useless",
	})
	require.NoError(t, err)
	assert.Equal(t, "dislike", reply.RecordedAction)
}

func TestAssistantService_LowConfidenceFallsBackToChat(t *testing.T) {
	svc, _ := testAssistantService(t, &models.AssistantSignal{
		Intent:      "search",
		Confidence:  0.3,
		SearchQuery: "keyboard",
	})

	reply, err := svc.HandleMessage(context.Background(), &models.AssistantMessageRequest{
		UserID:  "u1",
		Message: "hm keyboards maybe?",
	})
	require.NoError(t, err)

	assert.Equal(t, "chat", reply.Intent)
	assert.Empty(t, reply.Results)
	assert.Empty(t, reply.RecordedAction)
	assert.NotEmpty(t, reply.Message)
}

func TestAssistantService_ChatIntent(t *testing.T) {
	svc, _ := testAssistantService(t, &models.AssistantSignal{
		Intent:     "chat",
		Confidence: 0.99,
	})

	reply, err := svc.HandleMessage(context.Background(), &models.AssistantMessageRequest{
		UserID:  "u1",
		Message: "hello there",
	})
	require.NoError(t, err)
	assert.Equal(t, "chat", reply.Intent)
	assert.NotEmpty(t, reply.Message)
}

func TestAssistantService_InterpretError(t *testing.T) {
	orchestrator, _ := testOrchestrator(t)
	interactions, _ := testInteractionService(t, nil)
	svc := NewAssistantService(
		&fakeAssistantClient{err: assert.AnError},
		orchestrator,
		interactions,
		0.7,
		testLogger(),
	)

	_, err := svc.HandleMessage(context.Background(), &models.AssistantMessageRequest{
		UserID:  "u1",
		Message: "anything",
	})
	require.Error(t, err)
}

func TestAssistantService_NeutralOpinionIsChat(t *testing.T) {
	svc, _ := testAssistantService(t, &models.AssistantSignal{
		Intent:     "opinion",
		Confidence: 0.9,
		Sentiment:  "neutral",
		VideoTopic: "Pasta From Scratch",
	})

	reply, err := svc.HandleMessage(context.Background(), &models.AssistantMessageRequest{
		UserID:  "u1",
		Message: "that pasta video existed",
	})
	require.NoError(t, err)
	assert.Equal(t, "chat", reply.Intent)
	assert.Empty(t, reply.RecordedAction)
}
