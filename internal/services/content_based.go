package services

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// ContentBasedRecommender ranks the catalogue by multi-factor similarity to a
// reference video. O(N) similarity computations per call; no precomputed
// index, which is fine for catalogues up to tens of thousands of entries.
type ContentBasedRecommender struct {
	logger *logrus.Logger
}

func NewContentBasedRecommender(logger *logrus.Logger) *ContentBasedRecommender {
	return &ContentBasedRecommender{logger: logger}
}

// Recommend returns the top limit videos most similar to the reference. A
// missing reference is an expected state and falls back to popularity.
func (r *ContentBasedRecommender) Recommend(referenceID string, catalogue []models.Video, limit int) []models.RecommendationResult {
	var reference *models.Video
	for i := range catalogue {
		if catalogue[i].ID == referenceID {
			reference = &catalogue[i]
			break
		}
	}

	if reference == nil {
		r.logger.WithField("video_id", referenceID).
			Debug("Reference video not in catalogue, falling back to popularity")
		return RankByPopularity(catalogue, limit)
	}

	results := make([]models.RecommendationResult, 0, len(catalogue))
	for i := range catalogue {
		if catalogue[i].ID == referenceID {
			continue
		}
		results = append(results, models.RecommendationResult{
			Video:  catalogue[i],
			Score:  VideoSimilarity(reference, &catalogue[i]),
			Source: "content_based",
		})
	}

	// Stable sort keeps catalogue order on ties, which keeps output
	// deterministic for equal similarities.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return topN(results, limit)
}
