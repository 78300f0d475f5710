package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/catalog"
	"github.com/MinghowYooo/nexus/internal/messaging"
	"github.com/MinghowYooo/nexus/pkg/models"
)

// InteractionPublisher is the slice of the message bus the interaction
// service needs. Nil means events are not published.
type InteractionPublisher interface {
	PublishInteraction(event messaging.InteractionEvent) error
}

// InteractionService records interactions into the preference store,
// publishes them to the event stream, and invalidates cached
// recommendations for the affected user. The profile update is the source
// of truth; publishing and cache invalidation are best effort.
type InteractionService struct {
	store   PreferenceStore
	catalog *catalog.Service
	bus     InteractionPublisher
	redis   *redis.Client
	metrics *Metrics
	logger  *logrus.Logger
}

func NewInteractionService(
	store PreferenceStore,
	catalogService *catalog.Service,
	bus InteractionPublisher,
	redisClient *redis.Client,
	metrics *Metrics,
	logger *logrus.Logger,
) *InteractionService {
	return &InteractionService{
		store:   store,
		catalog: catalogService,
		bus:     bus,
		redis:   redisClient,
		metrics: metrics,
		logger:  logger,
	}
}

// Record applies one interaction to the user's profile. Unknown actions are
// rejected before any state changes.
func (s *InteractionService) Record(ctx context.Context, req *models.InteractionRequest) (*models.UserPreferenceProfile, error) {
	action, err := models.ParseAction(req.Action)
	if err != nil {
		return nil, err
	}

	score := models.DefaultInteractionScore
	if req.Score != nil {
		score = *req.Score
	}

	if s.catalog != nil {
		if _, err := s.catalog.FetchByID(ctx, req.VideoID); err != nil {
			// Interactions against videos the catalogue has not seen yet are
			// still recorded; the id may arrive in a later fetch.
			s.logger.WithError(err).WithFields(logrus.Fields{
				"user_id":  req.UserID,
				"video_id": req.VideoID,
			}).Warn("Interaction references a video missing from the catalogue")
		}
	}

	if err := s.store.Upsert(req.UserID, func(p *models.UserPreferenceProfile) error {
		return p.Apply(action, req.VideoID, score)
	}); err != nil {
		return nil, fmt.Errorf("update preference profile: %w", err)
	}

	s.metrics.InteractionsTotal.WithLabelValues(string(action)).Inc()

	s.publishEvent(req, action, score)
	s.invalidateCache(ctx, req.UserID)

	return s.store.Get(req.UserID), nil
}

func (s *InteractionService) publishEvent(req *models.InteractionRequest, action models.InteractionAction, score float64) {
	if s.bus == nil {
		return
	}

	event := messaging.InteractionEvent{
		EventID:   uuid.New(),
		UserID:    req.UserID,
		VideoID:   req.VideoID,
		Action:    string(action),
		Score:     score,
		SessionID: req.SessionID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.bus.PublishInteraction(event); err != nil {
		// The profile already updated; event loss is acceptable.
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  req.UserID,
			"video_id": req.VideoID,
		}).Warn("Failed to publish interaction event")
	}
}

func (s *InteractionService) invalidateCache(ctx context.Context, userID string) {
	if s.redis == nil {
		return
	}

	pattern := fmt.Sprintf("recommendations:%s:*", userID)
	keys, err := s.redis.Keys(ctx, pattern).Result()
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to scan recommendation cache keys")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate recommendation cache")
	}
}

// Preferences builds the aggregate view of a user's profile, joining liked
// videos against the catalogue for channel and tag counts.
func (s *InteractionService) Preferences(ctx context.Context, userID string) (*models.PreferenceSummary, error) {
	profile := s.store.Get(userID)

	summary := &models.PreferenceSummary{
		UserID:            userID,
		TotalInteractions: profile.InteractionCount,
		LikedCount:        len(profile.Liked),
		ViewedCount:       len(profile.Viewed),
		SharedCount:       len(profile.Shared),
		DislikedCount:     len(profile.Disliked),
		TopChannels:       []models.ChannelCount{},
		TopTags:           []models.TagCount{},
	}

	catalogue, err := s.catalog.FetchAll(ctx)
	if err != nil {
		// Counts are still useful without the catalogue join.
		s.logger.WithError(err).WithField("user_id", userID).Warn("Catalogue unavailable for preference summary")
		return summary, nil
	}

	byID := make(map[string]*models.Video, len(catalogue))
	for i := range catalogue {
		byID[catalogue[i].ID] = &catalogue[i]
	}

	channelCounts := make(map[string]int)
	tagCounts := make(map[string]int)
	for _, videoID := range profile.Liked {
		video, ok := byID[videoID]
		if !ok {
			continue
		}
		if video.ChannelName != "" {
			channelCounts[video.ChannelName]++
		}
		for _, tag := range video.Tags {
			tagCounts[tag]++
		}
	}

	summary.TopChannels = topChannels(channelCounts, 5)
	summary.TopTags = topTags(tagCounts, 5)
	return summary, nil
}

func topChannels(counts map[string]int, limit int) []models.ChannelCount {
	out := make([]models.ChannelCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, models.ChannelCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topTags(counts map[string]int, limit int) []models.TagCount {
	out := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
