package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/MinghowYooo/nexus/internal/catalog"
	"github.com/MinghowYooo/nexus/pkg/models"
)

// RecommendationOrchestrator dispatches a request to the strategy's
// recommender over a fresh catalogue snapshot and a snapshot of all user
// profiles. The catalogue fetch is the only blocking step; everything after
// it is pure computation.
type RecommendationOrchestrator struct {
	catalog *catalog.Service
	store   PreferenceStore

	collaborative *CollaborativeRecommender
	content       *ContentBasedRecommender
	hybrid        *HybridRecommender
	searchRanker  *SearchRanker

	redis        *redis.Client
	cacheTTL     time.Duration
	defaultLimit int

	metrics *Metrics
	logger  *logrus.Logger
}

type OrchestratorConfig struct {
	DefaultLimit        int
	CollaborativeWeight float64
	ContentWeight       float64
	CacheTTL            time.Duration
}

func NewRecommendationOrchestrator(
	catalogService *catalog.Service,
	store PreferenceStore,
	redisClient *redis.Client,
	cfg OrchestratorConfig,
	metrics *Metrics,
	logger *logrus.Logger,
) *RecommendationOrchestrator {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}

	collaborative := NewCollaborativeRecommender(logger)
	content := NewContentBasedRecommender(logger)
	hybrid := NewHybridRecommender(collaborative, content, cfg.CollaborativeWeight, cfg.ContentWeight, logger)

	return &RecommendationOrchestrator{
		catalog:       catalogService,
		store:         store,
		collaborative: collaborative,
		content:       content,
		hybrid:        hybrid,
		searchRanker:  NewSearchRanker(logger),
		redis:         redisClient,
		cacheTTL:      cfg.CacheTTL,
		defaultLimit:  cfg.DefaultLimit,
		metrics:       metrics,
		logger:        logger,
	}
}

// Recommend serves a recommendation list for one user and strategy. Results
// are cached per user, strategy and limit; any interaction for the user
// invalidates the whole user's cache.
func (o *RecommendationOrchestrator) Recommend(ctx context.Context, userID string, strategy models.Strategy, limit int) (*models.RecommendationResponse, error) {
	if limit <= 0 {
		limit = o.defaultLimit
	}

	start := time.Now()
	defer func() {
		o.metrics.RecommendationLatency.WithLabelValues(string(strategy)).Observe(time.Since(start).Seconds())
	}()

	cacheKey := fmt.Sprintf("recommendations:%s:%s:%d", userID, strategy, limit)
	if cached := o.readCache(ctx, cacheKey); cached != nil {
		cached.CacheHit = true
		o.metrics.RecommendationsTotal.WithLabelValues(string(strategy)).Inc()
		return cached, nil
	}

	catalogue, err := o.catalog.FetchAll(ctx)
	if err != nil {
		o.metrics.CatalogueFetchErrors.Inc()
		return nil, err
	}

	profiles := o.store.Snapshot()
	profile := profiles[userID]

	var results []models.RecommendationResult
	switch strategy {
	case models.StrategyCollaborative:
		results = o.collaborative.Recommend(userID, catalogue, profiles, limit)
	case models.StrategyContent:
		seed := ""
		if profile != nil {
			seed = profile.FirstLiked()
		}
		if seed == "" {
			results = RankByPopularity(catalogue, limit)
		} else {
			results = o.content.Recommend(seed, catalogue, limit)
		}
	case models.StrategyHybrid:
		results = o.hybrid.Recommend(userID, catalogue, profiles, limit)
	case models.StrategyPopular:
		results = RankByPopularity(catalogue, limit)
	case models.StrategyTrending:
		results = RankByTrending(catalogue, limit)
	case models.StrategyRecent:
		results = RankByRecentActivity(profile, catalogue, limit)
	default:
		return nil, fmt.Errorf("unknown recommendation strategy: %q", strategy)
	}

	o.logScoreDistribution(userID, strategy, results)

	response := &models.RecommendationResponse{
		UserID:      userID,
		Strategy:    strategy,
		Results:     results,
		GeneratedAt: time.Now().UTC(),
	}

	o.writeCache(ctx, cacheKey, response)
	o.metrics.RecommendationsTotal.WithLabelValues(string(strategy)).Inc()
	return response, nil
}

// Search runs the weighted field-match ranker over the catalogue.
func (o *RecommendationOrchestrator) Search(ctx context.Context, query string, preset SearchPreset, limit int) (*models.SearchResponse, error) {
	if limit <= 0 {
		limit = o.defaultLimit
	}

	catalogue, err := o.catalog.FetchAll(ctx)
	if err != nil {
		o.metrics.CatalogueFetchErrors.Inc()
		return nil, err
	}

	results := o.searchRanker.Search(query, catalogue, limit, preset)
	o.metrics.SearchRequestsTotal.WithLabelValues(string(preset)).Inc()

	return &models.SearchResponse{
		Query:       query,
		Preset:      string(preset),
		Results:     results,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (o *RecommendationOrchestrator) readCache(ctx context.Context, key string) *models.RecommendationResponse {
	if o.redis == nil {
		return nil
	}

	data, err := o.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			o.logger.WithError(err).WithField("key", key).Warn("Recommendation cache read failed")
		}
		o.metrics.CacheHitsTotal.WithLabelValues("miss").Inc()
		return nil
	}

	var response models.RecommendationResponse
	if err := json.Unmarshal([]byte(data), &response); err != nil {
		o.logger.WithError(err).WithField("key", key).Warn("Corrupt recommendation cache entry")
		o.metrics.CacheHitsTotal.WithLabelValues("miss").Inc()
		return nil
	}

	o.metrics.CacheHitsTotal.WithLabelValues("hit").Inc()
	return &response
}

func (o *RecommendationOrchestrator) writeCache(ctx context.Context, key string, response *models.RecommendationResponse) {
	if o.redis == nil {
		return
	}

	data, err := json.Marshal(response)
	if err != nil {
		o.logger.WithError(err).Warn("Failed to marshal recommendation response for cache")
		return
	}
	if err := o.redis.Set(ctx, key, data, o.cacheTTL).Err(); err != nil {
		o.logger.WithError(err).WithField("key", key).Warn("Recommendation cache write failed")
	}
}

// logScoreDistribution emits mean and standard deviation of the result
// scores at debug level, for ranking regressions that keep ordering but
// flatten the score spread.
func (o *RecommendationOrchestrator) logScoreDistribution(userID string, strategy models.Strategy, results []models.RecommendationResult) {
	if len(results) == 0 || !o.logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	scores := make([]float64, len(results))
	for i, res := range results {
		scores[i] = res.Score
	}
	mean, std := stat.MeanStdDev(scores, nil)

	o.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"strategy":   strategy,
		"results":    len(results),
		"score_mean": mean,
		"score_std":  std,
	}).Debug("Recommendation score distribution")
}
