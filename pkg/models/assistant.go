package models

// AssistantSignal is the structured output of the conversational assistant's
// intent classifier. The core only consumes this shape, never the prompts.
type AssistantSignal struct {
	Intent      string  `json:"intent"` // search, opinion, chat
	Confidence  float64 `json:"confidence"`
	SearchQuery string  `json:"search_query,omitempty"`
	Sentiment   string  `json:"sentiment,omitempty"`
	VideoTopic  string  `json:"video_topic,omitempty"`
}

type AssistantMessageRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

type AssistantReply struct {
	Intent         string                 `json:"intent"`
	Confidence     float64                `json:"confidence"`
	Results        []RecommendationResult `json:"results,omitempty"`
	RecordedAction string                 `json:"recorded_action,omitempty"`
	Message        string                 `json:"message,omitempty"`
}
