package validation

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() map[string]interface{} {
	return map[string]interface{}{
		"event_id":  uuid.New().String(),
		"user_id":   "u1",
		"video_id":  "v1",
		"action":    "like",
		"score":     5,
		"timestamp": "2026-09-01T12:00:00Z",
	}
}

func marshalEvent(t *testing.T, event map[string]interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func TestValidateInteractionEvent_Valid(t *testing.T) {
	result := ValidateInteractionEvent(marshalEvent(t, validEvent()))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInteractionEvent_AllActions(t *testing.T) {
	for _, action := range []string{"like", "dislike", "unlike", "undislike", "view", "share"} {
		event := validEvent()
		event["action"] = action

		result := ValidateInteractionEvent(marshalEvent(t, event))
		assert.True(t, result.Valid, "action %q should be accepted", action)
	}
}

func TestValidateInteractionEvent_MissingRequiredField(t *testing.T) {
	event := validEvent()
	delete(event, "user_id")

	result := ValidateInteractionEvent(marshalEvent(t, event))

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "user_id")
}

func TestValidateInteractionEvent_UnknownAction(t *testing.T) {
	event := validEvent()
	event["action"] = "superlike"

	result := ValidateInteractionEvent(marshalEvent(t, event))
	assert.False(t, result.Valid)
}

func TestValidateInteractionEvent_ScoreOutOfRange(t *testing.T) {
	event := validEvent()
	event["score"] = -1

	result := ValidateInteractionEvent(marshalEvent(t, event))
	assert.False(t, result.Valid)
}

func TestValidateInteractionEvent_RejectsUnknownProperties(t *testing.T) {
	event := validEvent()
	event["debug"] = true

	result := ValidateInteractionEvent(marshalEvent(t, event))
	assert.False(t, result.Valid)
}

func TestValidateInteractionEvent_MalformedJSON(t *testing.T) {
	result := ValidateInteractionEvent([]byte(`{"event_id":`))

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "VALIDATION_ERROR", result.Errors[0].Code)
}

func TestValidationError_Error(t *testing.T) {
	verr := ValidationError{Field: "action", Message: "must be one of the allowed values"}
	assert.Contains(t, verr.Error(), "action")
	assert.Contains(t, verr.Error(), "allowed values")
}
