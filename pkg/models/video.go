package models

import (
	"math"
	"time"
)

// Video is one catalogue entry. IDs are the stable external-system video ids,
// so they stay strings end to end.
type Video struct {
	ID           string     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description,omitempty" db:"description"`
	ChannelName  string     `json:"channel_name" db:"channel_name"`
	Tags         []string   `json:"tags,omitempty" db:"tags"`
	Category     string     `json:"category" db:"category"`
	ViewCount    int64      `json:"view_count" db:"view_count"`
	LikeCount    int64      `json:"like_count" db:"like_count"`
	CommentCount int64      `json:"comment_count" db:"comment_count"`
	PublishDate  *time.Time `json:"publish_date,omitempty" db:"publish_date"`

	// Daily chart movement, used only for the trending score.
	DailyMovement int `json:"daily_movement,omitempty" db:"daily_movement"`
	DailyRank     int `json:"daily_rank,omitempty" db:"daily_rank"`

	// Derived metrics, computed once at ingestion and read-only afterwards.
	EngagementRate  float64 `json:"engagement_rate" db:"engagement_rate"`
	PopularityScore float64 `json:"popularity_score" db:"popularity_score"`
	TrendingScore   float64 `json:"trending_score" db:"trending_score"`
}

// ComputeDerivedMetrics fills the read-only metric fields from the raw counts.
// Every catalogue source calls this exactly once per loaded record.
func (v *Video) ComputeDerivedMetrics() {
	views := float64(v.ViewCount)
	if views < 1 {
		views = 1
	}
	v.EngagementRate = float64(v.LikeCount+v.CommentCount) / views
	v.PopularityScore = math.Log10(float64(v.ViewCount)+1)*0.7 + v.EngagementRate*1000*0.3
	v.TrendingScore = math.Max(float64(v.DailyMovement), 0) + math.Max(1000-float64(v.DailyRank), 0)
}
