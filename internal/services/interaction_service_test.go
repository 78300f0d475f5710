package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinghowYooo/nexus/internal/catalog"
	"github.com/MinghowYooo/nexus/internal/messaging"
	"github.com/MinghowYooo/nexus/pkg/models"
)

type capturingPublisher struct {
	events []messaging.InteractionEvent
	err    error
}

func (p *capturingPublisher) PublishInteraction(event messaging.InteractionEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func testInteractionService(t *testing.T, bus InteractionPublisher) (*InteractionService, PreferenceStore) {
	t.Helper()

	logger := testLogger()
	source := catalog.NewStaticSource("static", testCatalogue())
	catalogService := catalog.NewService([]catalog.Source{source}, 0, logger)
	store := NewMemoryPreferenceStore()
	metrics := NewMetrics(prometheus.NewRegistry())

	return NewInteractionService(store, catalogService, bus, nil, metrics, logger), store
}

func TestInteractionService_Record(t *testing.T) {
	svc, store := testInteractionService(t, nil)

	profile, err := svc.Record(context.Background(), &models.InteractionRequest{
		UserID:  "u1",
		VideoID: "cat-1",
		Action:  "like",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-1"}, profile.Liked)
	assert.Equal(t, models.DefaultInteractionScore, profile.PreferenceScores["cat-1"])

	// The store holds the same state the handler returned
	assert.Equal(t, []string{"cat-1"}, store.Get("u1").Liked)
}

func TestInteractionService_RecordCustomScore(t *testing.T) {
	svc, _ := testInteractionService(t, nil)

	score := 9.0
	profile, err := svc.Record(context.Background(), &models.InteractionRequest{
		UserID:  "u1",
		VideoID: "cat-1",
		Action:  "like",
		Score:   &score,
	})
	require.NoError(t, err)
	assert.Equal(t, 9.0, profile.PreferenceScores["cat-1"])
}

func TestInteractionService_RecordInvalidAction(t *testing.T) {
	svc, store := testInteractionService(t, nil)

	_, err := svc.Record(context.Background(), &models.InteractionRequest{
		UserID:  "u1",
		VideoID: "cat-1",
		Action:  "superlike",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidAction)

	// Rejected before any state change
	assert.Empty(t, store.Snapshot())
}

func TestInteractionService_PublishesEvent(t *testing.T) {
	bus := &capturingPublisher{}
	svc, _ := testInteractionService(t, bus)

	_, err := svc.Record(context.Background(), &models.InteractionRequest{
		UserID:  "u1",
		VideoID: "cat-1",
		Action:  "share",
	})
	require.NoError(t, err)

	require.Len(t, bus.events, 1)
	event := bus.events[0]
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, "cat-1", event.VideoID)
	assert.Equal(t, "share", event.Action)
	assert.NotZero(t, event.EventID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestInteractionService_PublishFailureIsNotFatal(t *testing.T) {
	bus := &capturingPublisher{err: assert.AnError}
	svc, store := testInteractionService(t, bus)

	profile, err := svc.Record(context.Background(), &models.InteractionRequest{
		UserID:  "u1",
		VideoID: "cat-1",
		Action:  "like",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-1"}, profile.Liked)
	assert.Equal(t, []string{"cat-1"}, store.Get("u1").Liked)
}

func TestInteractionService_Preferences(t *testing.T) {
	svc, _ := testInteractionService(t, nil)
	ctx := context.Background()

	for _, videoID := range []string{"cat-1", "cat-2", "tech-1"} {
		_, err := svc.Record(ctx, &models.InteractionRequest{
			UserID:  "u1",
			VideoID: videoID,
			Action:  "like",
		})
		require.NoError(t, err)
	}
	_, err := svc.Record(ctx, &models.InteractionRequest{
		UserID:  "u1",
		VideoID: "cook-1",
		Action:  "view",
	})
	require.NoError(t, err)

	summary, err := svc.Preferences(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", summary.UserID)
	assert.Equal(t, 4, summary.TotalInteractions)
	assert.Equal(t, 3, summary.LikedCount)
	assert.Equal(t, 1, summary.ViewedCount)
	assert.Zero(t, summary.DislikedCount)

	require.NotEmpty(t, summary.TopChannels)
	assert.Equal(t, "Cat Central", summary.TopChannels[0].Name)
	assert.Equal(t, 2, summary.TopChannels[0].Count)

	require.NotEmpty(t, summary.TopTags)
	assert.Equal(t, "cats", summary.TopTags[0].Tag)
	assert.Equal(t, 2, summary.TopTags[0].Count)
}

func TestInteractionService_PreferencesUnknownUser(t *testing.T) {
	svc, _ := testInteractionService(t, nil)

	summary, err := svc.Preferences(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalInteractions)
	assert.Empty(t, summary.TopChannels)
	assert.Empty(t, summary.TopTags)
}
