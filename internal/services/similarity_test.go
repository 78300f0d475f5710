package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MinghowYooo/nexus/pkg/models"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected float64
	}{
		{
			name:     "both empty",
			a:        nil,
			b:        nil,
			expected: 0,
		},
		{
			name:     "one empty",
			a:        []string{"go", "testing"},
			b:        nil,
			expected: 0,
		},
		{
			name:     "identical sets",
			a:        []string{"go", "testing"},
			b:        []string{"testing", "go"},
			expected: 1,
		},
		{
			name:     "partial overlap",
			a:        []string{"go", "testing", "http"},
			b:        []string{"go", "grpc"},
			expected: 0.25,
		},
		{
			name:     "duplicates collapse",
			a:        []string{"go", "go", "go"},
			b:        []string{"go"},
			expected: 1,
		},
		{
			name:     "disjoint",
			a:        []string{"cats"},
			b:        []string{"dogs"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Jaccard(tt.a, tt.b), 1e-9)
			// Commutative
			assert.InDelta(t, tt.expected, Jaccard(tt.b, tt.a), 1e-9)
		})
	}
}

func TestTextWordOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, TextWordOverlap("Cat Videos", "cat videos"), 1e-9)
	assert.InDelta(t, 0.0, TextWordOverlap("", ""), 1e-9)

	// "funny cat videos" vs "cat compilation": intersection {cat}, union 4
	assert.InDelta(t, 0.25, TextWordOverlap("funny cat videos", "cat compilation"), 1e-9)
}

func TestVideoSimilarity(t *testing.T) {
	base := models.Video{
		ID:             "v1",
		Title:          "Deep Sea Creatures",
		ChannelName:    "Ocean Docs",
		Tags:           []string{"ocean", "documentary"},
		EngagementRate: 0.05,
	}

	t.Run("self similarity is 1", func(t *testing.T) {
		same := base
		assert.InDelta(t, 1.0, VideoSimilarity(&base, &same), 1e-9)
	})

	t.Run("commutative", func(t *testing.T) {
		other := models.Video{
			ID:             "v2",
			Title:          "Deep Sea Mysteries",
			ChannelName:    "Ocean Docs",
			Tags:           []string{"ocean", "mystery"},
			EngagementRate: 0.02,
		}
		assert.InDelta(t, VideoSimilarity(&base, &other), VideoSimilarity(&other, &base), 1e-9)
	})

	t.Run("bounded by 0 and 1", func(t *testing.T) {
		other := models.Video{
			ID:             "v3",
			Title:          "Keyboard Reviews",
			ChannelName:    "Tech Corner",
			Tags:           []string{"tech"},
			EngagementRate: 5.0,
		}
		score := VideoSimilarity(&base, &other)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})

	t.Run("nil is 0", func(t *testing.T) {
		assert.Zero(t, VideoSimilarity(nil, &base))
		assert.Zero(t, VideoSimilarity(&base, nil))
	})

	t.Run("shared channel dominates factors", func(t *testing.T) {
		sameChannel := models.Video{
			ID:          "v4",
			Title:       "Coral Reefs",
			ChannelName: "Ocean Docs",
			Tags:        []string{"reef"},
		}
		otherChannel := sameChannel
		otherChannel.ID = "v5"
		otherChannel.ChannelName = "Someone Else"

		assert.Greater(t, VideoSimilarity(&base, &sameChannel), VideoSimilarity(&base, &otherChannel))
	})
}

func TestUserSimilarity(t *testing.T) {
	alice := &models.UserPreferenceProfile{UserID: "alice", Liked: []string{"v1", "v2", "v3"}}
	bob := &models.UserPreferenceProfile{UserID: "bob", Liked: []string{"v2", "v3", "v4"}}
	carol := &models.UserPreferenceProfile{UserID: "carol"}

	assert.InDelta(t, 0.5, UserSimilarity(alice, bob), 1e-9)
	assert.Zero(t, UserSimilarity(alice, carol))
	assert.Zero(t, UserSimilarity(nil, alice))
	assert.InDelta(t, 1.0, UserSimilarity(alice, alice), 1e-9)
}
