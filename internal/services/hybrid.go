package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// HybridRecommender blends the collaborative and content-based recommenders
// with fixed weights, merging by video id. A candidate present in only one
// list contributes only that list's term.
type HybridRecommender struct {
	collaborative *CollaborativeRecommender
	content       *ContentBasedRecommender

	collaborativeWeight float64
	contentWeight       float64

	logger *logrus.Logger
}

func NewHybridRecommender(
	collaborative *CollaborativeRecommender,
	content *ContentBasedRecommender,
	collaborativeWeight, contentWeight float64,
	logger *logrus.Logger,
) *HybridRecommender {
	return &HybridRecommender{
		collaborative:       collaborative,
		content:             content,
		collaborativeWeight: collaborativeWeight,
		contentWeight:       contentWeight,
		logger:              logger,
	}
}

func (r *HybridRecommender) Recommend(
	userID string,
	catalogue []models.Video,
	profiles map[string]*models.UserPreferenceProfile,
	limit int,
) []models.RecommendationResult {
	target := profiles[userID]
	if target == nil || len(target.Liked) == 0 {
		r.logger.WithField("user_id", userID).
			Debug("No signal for hybrid recommendation, falling back to popularity")
		return RankByPopularity(catalogue, limit)
	}

	// Inner fetches run at limit*2 so the merged list still fills out after
	// the two candidate sets overlap.
	collaborative := r.collaborative.Recommend(userID, catalogue, profiles, limit*2)

	// The content-based arm needs a concrete reference: the user's earliest
	// liked video.
	content := r.content.Recommend(target.FirstLiked(), catalogue, limit*2)

	type blended struct {
		video models.Video
		score float64
	}
	merged := make(map[string]*blended)
	for _, res := range collaborative {
		merged[res.Video.ID] = &blended{
			video: res.Video,
			score: res.Score * r.collaborativeWeight,
		}
	}
	for _, res := range content {
		if b, ok := merged[res.Video.ID]; ok {
			b.score += res.Score * r.contentWeight
			continue
		}
		merged[res.Video.ID] = &blended{
			video: res.Video,
			score: res.Score * r.contentWeight,
		}
	}

	results := make([]models.RecommendationResult, 0, len(merged))
	for _, b := range merged {
		results = append(results, models.RecommendationResult{
			Video:  b.video,
			Score:  b.score,
			Source: "hybrid",
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Video.ID < results[j].Video.ID
	})

	return topN(results, limit)
}
