package services

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/pkg/models"
)

type SearchPreset string

// Two ranking profiles coexist on purpose: the catalogue browser and the
// wire-level search endpoint shipped with different weight tables, and both
// orderings are product-approved. Keep them as named presets; do not unify
// the constants.
const (
	PresetCaptionWeighted SearchPreset = "caption-weighted"
	PresetFieldWeighted   SearchPreset = "field-weighted"
)

// ParseSearchPreset resolves a preset name, defaulting to caption-weighted.
func ParseSearchPreset(s string) SearchPreset {
	if SearchPreset(s) == PresetFieldWeighted {
		return PresetFieldWeighted
	}
	return PresetCaptionWeighted
}

// RankingWeights is one scoring profile. Exact-match weights apply when the
// full lowered query is a substring of the field (a flag, not a count); word
// weights apply once per matching query word. A zero weight disables the
// factor.
type RankingWeights struct {
	TitleExact      int
	TitleWord       int
	DescriptionWord int
	ChannelExact    int
	ChannelWord     int
	CategoryWord    int
	TagWord         int
}

var rankingPresets = map[SearchPreset]RankingWeights{
	PresetCaptionWeighted: {
		TitleExact:      10,
		TitleWord:       10,
		DescriptionWord: 5,
		ChannelWord:     2,
		CategoryWord:    1,
	},
	PresetFieldWeighted: {
		TitleExact:      100,
		TitleWord:       50,
		ChannelExact:    30,
		DescriptionWord: 10,
		TagWord:         20,
	},
}

// SearchRanker orders catalogue videos by weighted field-match relevance.
type SearchRanker struct {
	logger *logrus.Logger
}

func NewSearchRanker(logger *logrus.Logger) *SearchRanker {
	return &SearchRanker{logger: logger}
}

// Search scores and orders the catalogue for a free-text query. An empty or
// whitespace-only query is never an error; it returns the popularity
// ordering. Non-empty queries filter out zero scores.
func (r *SearchRanker) Search(query string, catalogue []models.Video, limit int, preset SearchPreset) []models.RecommendationResult {
	if strings.TrimSpace(query) == "" {
		return RankByPopularity(catalogue, limit)
	}

	weights, ok := rankingPresets[preset]
	if !ok {
		weights = rankingPresets[PresetCaptionWeighted]
	}

	lowered := lowerCaser.String(strings.TrimSpace(query))
	words := strings.Fields(lowered)

	results := make([]models.RecommendationResult, 0)
	for _, v := range catalogue {
		score := scoreVideo(&v, lowered, words, weights)
		if score == 0 {
			continue
		}
		results = append(results, models.RecommendationResult{
			Video:  v,
			Score:  float64(score),
			Source: "search:" + string(preset),
		})
	}

	// Stable: ties keep catalogue order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return topN(results, limit)
}

func scoreVideo(v *models.Video, lowered string, words []string, w RankingWeights) int {
	title := lowerCaser.String(v.Title)
	description := lowerCaser.String(v.Description)
	channel := lowerCaser.String(v.ChannelName)
	category := lowerCaser.String(v.Category)

	score := 0
	if w.TitleExact > 0 && strings.Contains(title, lowered) {
		score += w.TitleExact
	}
	if w.ChannelExact > 0 && strings.Contains(channel, lowered) {
		score += w.ChannelExact
	}

	var tags []string
	if w.TagWord > 0 {
		tags = make([]string, len(v.Tags))
		for i, tag := range v.Tags {
			tags[i] = lowerCaser.String(tag)
		}
	}

	for _, word := range words {
		if w.TitleWord > 0 && strings.Contains(title, word) {
			score += w.TitleWord
		}
		if w.DescriptionWord > 0 && strings.Contains(description, word) {
			score += w.DescriptionWord
		}
		if w.ChannelWord > 0 && strings.Contains(channel, word) {
			score += w.ChannelWord
		}
		if w.CategoryWord > 0 && strings.Contains(category, word) {
			score += w.CategoryWord
		}
		if w.TagWord > 0 {
			for _, tag := range tags {
				if strings.Contains(tag, word) {
					score += w.TagWord
					break
				}
			}
		}
	}

	return score
}
