package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/assistant"
	"github.com/MinghowYooo/nexus/internal/catalog"
	"github.com/MinghowYooo/nexus/internal/config"
	"github.com/MinghowYooo/nexus/internal/database"
	"github.com/MinghowYooo/nexus/internal/messaging"
)

type Services struct {
	Health                     *HealthService
	RateLimit                  *RateLimitService
	MessageBus                 *messaging.MessageBus
	Catalog                    *catalog.Service
	Preferences                PreferenceStore
	Interaction                *InteractionService
	RecommendationOrchestrator *RecommendationOrchestrator
	Assistant                  *AssistantService
	Metrics                    *Metrics
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database) (*Services, error) {
	metrics := NewMetrics(prometheus.DefaultRegisterer)
	healthService := NewHealthService(logger, db, prometheus.DefaultRegisterer)
	rateLimitService := NewRateLimitService(cfg, logger, db.Redis.Hot)

	var messageBus *messaging.MessageBus
	if cfg.Kafka.Enabled {
		var err error
		messageBus, err = messaging.NewMessageBus(cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	// Postgres is the primary catalogue source; the CSV file covers local
	// runs and outages.
	sources := []catalog.Source{
		catalog.NewPostgresSource(db.PG),
	}
	if cfg.Catalog.CSVPath != "" {
		sources = append(sources, catalog.NewCSVSource(cfg.Catalog.CSVPath))
	}
	catalogService := catalog.NewService(sources, cfg.Catalog.FetchTimeout, logger)

	store := NewMemoryPreferenceStore()

	interactionService := NewInteractionService(
		store, catalogService, busOrNil(messageBus), db.Redis.Warm, metrics, logger,
	)

	orchestrator := NewRecommendationOrchestrator(
		catalogService, store, db.Redis.Warm,
		OrchestratorConfig{
			DefaultLimit:        cfg.Recommendation.DefaultLimit,
			CollaborativeWeight: cfg.Recommendation.CollaborativeWeight,
			ContentWeight:       cfg.Recommendation.ContentWeight,
			CacheTTL:            cfg.Recommendation.CacheTTL,
		},
		metrics, logger,
	)

	var assistantService *AssistantService
	if cfg.Assistant.Enabled {
		client, err := assistant.NewGeminiClient(
			context.Background(), cfg.Assistant.APIKey, cfg.Assistant.Model, logger,
		)
		if err != nil {
			return nil, err
		}
		assistantService = NewAssistantService(
			client, orchestrator, interactionService, cfg.Assistant.ConfidenceThreshold, logger,
		)
	}

	return &Services{
		Health:                     healthService,
		RateLimit:                  rateLimitService,
		MessageBus:                 messageBus,
		Catalog:                    catalogService,
		Preferences:                store,
		Interaction:                interactionService,
		RecommendationOrchestrator: orchestrator,
		Assistant:                  assistantService,
		Metrics:                    metrics,
	}, nil
}

// busOrNil avoids storing a typed nil in the publisher interface.
func busOrNil(bus *messaging.MessageBus) InteractionPublisher {
	if bus == nil {
		return nil
	}
	return bus
}
