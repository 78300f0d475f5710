package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var videoColumns = []string{
	"id", "title", "description", "channel_name", "tags", "category",
	"view_count", "like_count", "comment_count", "publish_date",
	"daily_movement", "daily_rank",
}

func TestPostgresSource_Fetch(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	published := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(videoColumns).
		AddRow("v1", "Cat Video", "Cats doing things", "Cat Central",
			[]string{"cats", "funny"}, "Animals",
			int64(1000), int64(100), int64(10), &published, 5, 12).
		AddRow("v2", "Dog Video", "", "Pet School",
			[]string{}, "Animals",
			int64(2000), int64(50), int64(5), (*time.Time)(nil), 0, 0)

	mockDB.ExpectQuery("SELECT").WillReturnRows(rows)

	source := NewPostgresSource(mockDB)
	assert.Equal(t, "postgres", source.Name())

	videos, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 2)

	v1 := videos[0]
	assert.Equal(t, "v1", v1.ID)
	assert.Equal(t, []string{"cats", "funny"}, v1.Tags)
	assert.Equal(t, int64(1000), v1.ViewCount)
	require.NotNil(t, v1.PublishDate)

	// Derived metrics computed after scan
	assert.InDelta(t, 0.11, v1.EngagementRate, 1e-9)
	assert.Greater(t, v1.PopularityScore, 0.0)

	assert.Nil(t, videos[1].PublishDate)

	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err = NewPostgresSource(mockDB).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog query failed")
}
