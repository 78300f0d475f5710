package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// Querier matches both a pgxpool.Pool and a pgxmock pool in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PostgresSource reads the catalogue from the videos table. Counts default to
// zero on NULL; derived metrics are recomputed after scanning so the table
// never has to carry them.
type PostgresSource struct {
	db Querier
}

func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Fetch(ctx context.Context) ([]models.Video, error) {
	query := `
		SELECT
			id, title,
			COALESCE(description, '') AS description,
			channel_name,
			COALESCE(tags, '{}') AS tags,
			category,
			COALESCE(view_count, 0) AS view_count,
			COALESCE(like_count, 0) AS like_count,
			COALESCE(comment_count, 0) AS comment_count,
			publish_date,
			COALESCE(daily_movement, 0) AS daily_movement,
			COALESCE(daily_rank, 0) AS daily_rank
		FROM videos
		ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.ChannelName, &v.Tags,
			&v.Category, &v.ViewCount, &v.LikeCount, &v.CommentCount,
			&v.PublishDate, &v.DailyMovement, &v.DailyRank,
		); err != nil {
			return nil, fmt.Errorf("catalog scan failed: %w", err)
		}
		v.ComputeDerivedMetrics()
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows failed: %w", err)
	}

	return videos, nil
}
