package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// CSVSource reads the catalogue from a flat dataset file. Column order
// follows the published dataset: id, title, description, channel, tags
// (pipe-separated), category, views, likes, comments, publish date, daily
// movement, daily rank. Unparseable numbers default to zero; short rows are
// skipped rather than failing the whole load.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Fetch(ctx context.Context) ([]models.Video, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var videos []models.Video
	header := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < 6 || record[0] == "" {
			continue
		}

		v := models.Video{
			ID:          record[0],
			Title:       record[1],
			Description: record[2],
			ChannelName: record[3],
			Tags:        splitTags(record[4]),
			Category:    record[5],
		}
		v.ViewCount = parseCount(record, 6)
		v.LikeCount = parseCount(record, 7)
		v.CommentCount = parseCount(record, 8)
		if len(record) > 9 {
			if t, err := time.Parse(time.RFC3339, record[9]); err == nil {
				v.PublishDate = &t
			}
		}
		v.DailyMovement = int(parseCount(record, 10))
		v.DailyRank = int(parseCount(record, 11))
		v.ComputeDerivedMetrics()
		videos = append(videos, v)
	}

	return videos, nil
}

func splitTags(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, "|")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseCount(record []string, idx int) int64 {
	if idx >= len(record) {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(record[idx]), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
