package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// Client interprets a free-text user message into a discovery signal.
type Client interface {
	Interpret(ctx context.Context, message string) (*models.AssistantSignal, error)
}

// GeminiClient classifies messages with a Gemini model constrained to a
// JSON response schema, so the reply always parses into an AssistantSignal.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *logrus.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *logrus.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func signalSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {
				Type:        genai.TypeString,
				Enum:        []string{"search", "opinion", "chat"},
				Description: "What the user wants: find videos, express an opinion about a video, or just talk",
			},
			"confidence": {
				Type:        genai.TypeNumber,
				Description: "Confidence in the intent classification, 0 to 1",
			},
			"search_query": {
				Type:        genai.TypeString,
				Description: "For search intent, the query to run against the video catalogue",
			},
			"sentiment": {
				Type:        genai.TypeString,
				Enum:        []string{"positive", "negative", "neutral"},
				Description: "For opinion intent, whether the user liked or disliked the video",
			},
			"video_topic": {
				Type:        genai.TypeString,
				Description: "For opinion intent, the video title or topic the opinion is about",
			},
		},
		Required: []string{"intent", "confidence"},
	}
}

func buildInterpretPrompt(message string) string {
	return fmt.Sprintf(`You route messages for a video discovery service.

Classify the user's message into exactly one intent:
- "search": the user wants to find or watch videos about something
- "opinion": the user expresses liking or disliking a specific video or topic
- "chat": anything else

For search, extract the query to run against the catalogue.
For opinion, extract the sentiment and the video title or topic it refers to.

User message: %s`, message)
}

// Interpret classifies one message. The model is forced onto the signal
// schema, so a successful call always yields a parseable signal.
func (c *GeminiClient) Interpret(ctx context.Context, message string) (*models.AssistantSignal, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: buildInterpretPrompt(message)}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   signalSchema(),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var signal models.AssistantSignal
	if err := json.Unmarshal([]byte(text), &signal); err != nil {
		c.logger.WithError(err).WithField("response", text).Warn("Assistant returned unparseable signal")
		return nil, fmt.Errorf("failed to parse assistant signal: %w", err)
	}

	return &signal, nil
}
