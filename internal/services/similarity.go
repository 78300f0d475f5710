package services

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// lowerCaser folds text for matching. Unicode-aware so non-ASCII titles and
// queries compare correctly.
var lowerCaser = cases.Lower(language.Und)

// Jaccard returns |A∩B| / |A∪B| over two string slices treated as sets.
// Both empty is defined as 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}

	intersection := 0
	for v := range setA {
		if _, ok := setB[v]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TextWordOverlap lower-cases both strings, splits on whitespace and returns
// the Jaccard similarity of the word sets.
func TextWordOverlap(a, b string) float64 {
	return Jaccard(
		strings.Fields(lowerCaser.String(a)),
		strings.Fields(lowerCaser.String(b)),
	)
}

// Weight mass per similarity factor. The result is normalized by the summed
// mass so a variant that omits a factor still lands in [0,1].
const (
	channelWeight    = 0.4
	tagWeight        = 0.3
	titleWeight      = 0.2
	engagementWeight = 0.1
)

// VideoSimilarity scores two videos in [0,1] by channel match, tag overlap,
// title overlap and engagement closeness. Total over any two records,
// commutative, and 1 for a video compared with itself (given non-empty tags
// and title).
func VideoSimilarity(a, b *models.Video) float64 {
	if a == nil || b == nil {
		return 0
	}

	score := 0.0
	if a.ChannelName == b.ChannelName {
		score += channelWeight
	}
	score += Jaccard(a.Tags, b.Tags) * tagWeight
	score += TextWordOverlap(a.Title, b.Title) * titleWeight
	score += math.Max(0, 1-math.Abs(a.EngagementRate-b.EngagementRate)) * engagementWeight

	totalMass := channelWeight + tagWeight + titleWeight + engagementWeight
	return score / totalMass
}

// UserSimilarity is the Jaccard similarity of two users' liked sets.
// Absent profiles score 0.
func UserSimilarity(a, b *models.UserPreferenceProfile) float64 {
	if a == nil || b == nil {
		return 0
	}
	return Jaccard(a.Liked, b.Liked)
}
