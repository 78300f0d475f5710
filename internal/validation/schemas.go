package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// interactionEventSchema guards the user-interactions topic. Events are
// produced by this service but the topic is open to other writers, so
// consumers validate before unmarshalling.
const interactionEventSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["event_id", "user_id", "video_id", "action", "timestamp"],
	"properties": {
		"event_id": {
			"type": "string",
			"format": "uuid"
		},
		"user_id": {
			"type": "string",
			"minLength": 1,
			"maxLength": 255
		},
		"video_id": {
			"type": "string",
			"minLength": 1,
			"maxLength": 255
		},
		"action": {
			"type": "string",
			"enum": ["like", "dislike", "unlike", "undislike", "view", "share"]
		},
		"score": {
			"type": "number",
			"minimum": 0,
			"maximum": 100
		},
		"session_id": {
			"type": "string",
			"format": "uuid"
		},
		"timestamp": {
			"type": "string",
			"format": "date-time"
		},
		"retry_count": {
			"type": "integer",
			"minimum": 0
		}
	},
	"additionalProperties": false
}`

var compiledInteractionSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(interactionEventSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid interaction event schema: %v", err))
	}
	compiledInteractionSchema = schema
}

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", ve.Field, ve.Message)
}

// ValidateInteractionEvent validates raw event bytes against the interaction
// event schema.
func ValidateInteractionEvent(data []byte) *ValidationResult {
	result, err := compiledInteractionSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "event",
				Message: fmt.Sprintf("Validation error: %v", err),
				Code:    "VALIDATION_ERROR",
			}},
		}
	}

	validationResult := &ValidationResult{
		Valid:  result.Valid(),
		Errors: make([]ValidationError, 0),
	}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			validationResult.Errors = append(validationResult.Errors, ValidationError{
				Field:   verr.Field(),
				Message: verr.Description(),
				Code:    "VALIDATION_ERROR",
				Value:   verr.Value(),
			})
		}
	}
	return validationResult
}
