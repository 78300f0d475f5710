package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InteractionAction string

const (
	ActionLike      InteractionAction = "like"
	ActionDislike   InteractionAction = "dislike"
	ActionUnlike    InteractionAction = "unlike"
	ActionUndislike InteractionAction = "undislike"
	ActionView      InteractionAction = "view"
	ActionShare     InteractionAction = "share"
)

// ErrInvalidAction is returned for interaction actions outside the enum.
var ErrInvalidAction = fmt.Errorf("invalid interaction action")

// ParseAction validates an action string against the interaction enum.
func ParseAction(s string) (InteractionAction, error) {
	switch InteractionAction(s) {
	case ActionLike, ActionDislike, ActionUnlike, ActionUndislike, ActionView, ActionShare:
		return InteractionAction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// UserPreferenceProfile accumulates a user's interaction signals. The video-id
// lists keep insertion order, earliest first, so "first liked video" always
// means earliest in time.
type UserPreferenceProfile struct {
	UserID           string             `json:"user_id"`
	Liked            []string           `json:"liked_videos"`
	Viewed           []string           `json:"viewed_videos"`
	Shared           []string           `json:"shared_videos"`
	Disliked         []string           `json:"disliked_videos"`
	PreferenceScores map[string]float64 `json:"preference_scores"`
	InteractionCount int                `json:"interaction_count"`
	LastInteraction  *time.Time         `json:"last_interaction,omitempty"`
}

func NewUserPreferenceProfile(userID string) *UserPreferenceProfile {
	return &UserPreferenceProfile{
		UserID:           userID,
		PreferenceScores: make(map[string]float64),
	}
}

func (p *UserPreferenceProfile) HasLiked(videoID string) bool    { return contains(p.Liked, videoID) }
func (p *UserPreferenceProfile) HasDisliked(videoID string) bool { return contains(p.Disliked, videoID) }
func (p *UserPreferenceProfile) HasViewed(videoID string) bool   { return contains(p.Viewed, videoID) }

// FirstLiked returns the earliest-liked video id, or "" when the user has none.
func (p *UserPreferenceProfile) FirstLiked() string {
	if len(p.Liked) == 0 {
		return ""
	}
	return p.Liked[0]
}

// Apply mutates the profile according to one interaction. Liking clears a
// prior dislike and vice versa; view and share never touch the like state.
func (p *UserPreferenceProfile) Apply(action InteractionAction, videoID string, score float64) error {
	switch action {
	case ActionLike:
		p.Liked = appendUnique(p.Liked, videoID)
		p.Disliked = remove(p.Disliked, videoID)
		p.raiseScore(videoID, score)
	case ActionDislike:
		p.Disliked = appendUnique(p.Disliked, videoID)
		p.Liked = remove(p.Liked, videoID)
		p.lowerScore(videoID, -score)
	case ActionView:
		p.Viewed = appendUnique(p.Viewed, videoID)
		p.raiseScore(videoID, score*0.5)
	case ActionShare:
		p.Shared = appendUnique(p.Shared, videoID)
		p.raiseScore(videoID, score*1.5)
	case ActionUnlike:
		p.Liked = remove(p.Liked, videoID)
	case ActionUndislike:
		p.Disliked = remove(p.Disliked, videoID)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	now := time.Now()
	p.InteractionCount++
	p.LastInteraction = &now
	return nil
}

func (p *UserPreferenceProfile) raiseScore(videoID string, score float64) {
	if prev, ok := p.PreferenceScores[videoID]; ok && prev > score {
		return
	}
	p.PreferenceScores[videoID] = score
}

func (p *UserPreferenceProfile) lowerScore(videoID string, score float64) {
	if prev, ok := p.PreferenceScores[videoID]; ok && prev < score {
		return
	}
	p.PreferenceScores[videoID] = score
}

// Clone returns a deep copy safe to hand out across goroutines.
func (p *UserPreferenceProfile) Clone() *UserPreferenceProfile {
	clone := &UserPreferenceProfile{
		UserID:           p.UserID,
		Liked:            append([]string(nil), p.Liked...),
		Viewed:           append([]string(nil), p.Viewed...),
		Shared:           append([]string(nil), p.Shared...),
		Disliked:         append([]string(nil), p.Disliked...),
		PreferenceScores: make(map[string]float64, len(p.PreferenceScores)),
		InteractionCount: p.InteractionCount,
	}
	for id, score := range p.PreferenceScores {
		clone.PreferenceScores[id] = score
	}
	if p.LastInteraction != nil {
		last := *p.LastInteraction
		clone.LastInteraction = &last
	}
	return clone
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendUnique(ids []string, id string) []string {
	if contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// InteractionRequest is the wire shape for recording a single interaction.
type InteractionRequest struct {
	UserID    string     `json:"user_id" validate:"required"`
	VideoID   string     `json:"video_id" validate:"required"`
	Action    string     `json:"action" validate:"required"`
	Score     *float64   `json:"score,omitempty" validate:"omitempty,min=0,max=10"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}

// DefaultInteractionScore applies when the client omits the score field.
const DefaultInteractionScore = 5.0

type ChannelCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// PreferenceSummary is the aggregate view exposed on the user endpoint.
type PreferenceSummary struct {
	UserID            string         `json:"user_id"`
	TotalInteractions int            `json:"total_interactions"`
	LikedCount        int            `json:"liked_count"`
	ViewedCount       int            `json:"viewed_count"`
	SharedCount       int            `json:"shared_count"`
	DislikedCount     int            `json:"disliked_count"`
	TopChannels       []ChannelCount `json:"top_channels"`
	TopTags           []TagCount     `json:"top_tags"`
}
