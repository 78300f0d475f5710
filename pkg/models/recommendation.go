package models

import (
	"fmt"
	"time"
)

type Strategy string

const (
	StrategyCollaborative Strategy = "collaborative"
	StrategyContent       Strategy = "content"
	StrategyHybrid        Strategy = "hybrid"
	StrategyPopular       Strategy = "popular"
	StrategyTrending      Strategy = "trending"
	StrategyRecent        Strategy = "recent"
)

// ParseStrategy validates a strategy string against the enum.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCollaborative, StrategyContent, StrategyHybrid,
		StrategyPopular, StrategyTrending, StrategyRecent:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown recommendation strategy: %q", s)
	}
}

// RecommendationResult pairs a catalogue video with its ranking score.
// Produced fresh per request, never stored.
type RecommendationResult struct {
	Video  Video   `json:"video"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

type RecommendationResponse struct {
	UserID      string                 `json:"user_id"`
	Strategy    Strategy               `json:"strategy"`
	Results     []RecommendationResult `json:"results"`
	GeneratedAt time.Time              `json:"generated_at"`
	CacheHit    bool                   `json:"cache_hit"`
}

type SearchResponse struct {
	Query       string                 `json:"query"`
	Preset      string                 `json:"preset"`
	Results     []RecommendationResult `json:"results"`
	GeneratedAt time.Time              `json:"generated_at"`
}
