package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// CollaborativeRecommender aggregates the liked videos of similar users,
// where similarity is interaction overlap. Every positive-similarity user
// contributes; contributions for the same candidate sum, so a video liked by
// many moderately similar users can outrank one liked by a single close
// neighbor.
type CollaborativeRecommender struct {
	logger *logrus.Logger
}

func NewCollaborativeRecommender(logger *logrus.Logger) *CollaborativeRecommender {
	return &CollaborativeRecommender{logger: logger}
}

func (r *CollaborativeRecommender) Recommend(
	userID string,
	catalogue []models.Video,
	profiles map[string]*models.UserPreferenceProfile,
	limit int,
) []models.RecommendationResult {
	target := profiles[userID]
	if target == nil || len(target.Liked) == 0 {
		r.logger.WithField("user_id", userID).
			Debug("No liked videos for user, falling back to popularity")
		return RankByPopularity(catalogue, limit)
	}

	type neighbor struct {
		userID     string
		similarity float64
	}
	neighbors := make([]neighbor, 0, len(profiles))
	for id, profile := range profiles {
		if id == userID {
			continue
		}
		if sim := UserSimilarity(target, profile); sim > 0 {
			neighbors = append(neighbors, neighbor{userID: id, similarity: sim})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].userID < neighbors[j].userID
	})

	candidateScores := make(map[string]float64)
	for _, n := range neighbors {
		for _, videoID := range profiles[n.userID].Liked {
			if target.HasLiked(videoID) || target.HasDisliked(videoID) {
				continue
			}
			candidateScores[videoID] += n.similarity
		}
	}

	byID := make(map[string]*models.Video, len(catalogue))
	for i := range catalogue {
		byID[catalogue[i].ID] = &catalogue[i]
	}

	results := make([]models.RecommendationResult, 0, len(candidateScores))
	for videoID, score := range candidateScores {
		video, ok := byID[videoID]
		if !ok {
			// Liked video no longer in the catalogue; drop silently.
			continue
		}
		results = append(results, models.RecommendationResult{
			Video:  *video,
			Score:  score,
			Source: "collaborative",
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
