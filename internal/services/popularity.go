package services

import (
	"sort"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// Popularity ranking is the universal fallback: every personalized strategy
// degrades here on cold start or missing signal, never to an error.

func topN(results []models.RecommendationResult, limit int) []models.RecommendationResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// RankByPopularity sorts the catalogue descending by popularity score.
// Ties keep catalogue order.
func RankByPopularity(catalogue []models.Video, limit int) []models.RecommendationResult {
	results := make([]models.RecommendationResult, 0, len(catalogue))
	for _, v := range catalogue {
		results = append(results, models.RecommendationResult{
			Video:  v,
			Score:  v.PopularityScore,
			Source: "popularity",
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return topN(results, limit)
}

// RankByTrending sorts the catalogue descending by trending score.
func RankByTrending(catalogue []models.Video, limit int) []models.RecommendationResult {
	results := make([]models.RecommendationResult, 0, len(catalogue))
	for _, v := range catalogue {
		results = append(results, models.RecommendationResult{
			Video:  v,
			Score:  v.TrendingScore,
			Source: "trending",
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return topN(results, limit)
}

// RankByRecentActivity recommends popular videos from the channels the user
// has been watching, excluding what they already viewed or disliked. A user
// with no viewing history gets the plain popularity ranking.
func RankByRecentActivity(profile *models.UserPreferenceProfile, catalogue []models.Video, limit int) []models.RecommendationResult {
	if profile == nil || len(profile.Viewed) == 0 {
		return RankByPopularity(catalogue, limit)
	}

	byID := make(map[string]*models.Video, len(catalogue))
	for i := range catalogue {
		byID[catalogue[i].ID] = &catalogue[i]
	}

	channels := make(map[string]struct{})
	for _, id := range profile.Viewed {
		if v, ok := byID[id]; ok {
			channels[v.ChannelName] = struct{}{}
		}
	}

	results := make([]models.RecommendationResult, 0)
	for _, v := range catalogue {
		if _, ok := channels[v.ChannelName]; !ok {
			continue
		}
		if profile.HasViewed(v.ID) || profile.HasDisliked(v.ID) {
			continue
		}
		results = append(results, models.RecommendationResult{
			Video:  v,
			Score:  v.PopularityScore,
			Source: "recent_activity",
		})
	}

	if len(results) == 0 {
		return RankByPopularity(catalogue, limit)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return topN(results, limit)
}
