package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/services"
)

type Handlers struct {
	Health         *HealthHandler
	Interaction    *InteractionHandler
	Recommendation *RecommendationHandler
	Search         *SearchHandler
	User           *UserHandler
	Channel        *ChannelHandler
	Assistant      *AssistantHandler
}

func New(logger *logrus.Logger, svcs *services.Services) *Handlers {
	var assistantHandler *AssistantHandler
	if svcs.Assistant != nil {
		assistantHandler = NewAssistantHandler(logger, svcs.Assistant)
	}

	return &Handlers{
		Health:         NewHealthHandler(logger, svcs.Health),
		Interaction:    NewInteractionHandler(logger, svcs.Interaction),
		Recommendation: NewRecommendationHandler(svcs.RecommendationOrchestrator, logger),
		Search:         NewSearchHandler(svcs.RecommendationOrchestrator, logger),
		User:           NewUserHandler(logger, svcs.Interaction),
		Channel:        NewChannelHandler(logger, svcs.Catalog),
		Assistant:      assistantHandler,
	}
}
