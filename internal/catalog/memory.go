package catalog

import (
	"context"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// StaticSource serves a fixed in-memory catalogue. Last resort in the source
// chain, and the natural test double.
type StaticSource struct {
	name   string
	videos []models.Video
}

func NewStaticSource(name string, videos []models.Video) *StaticSource {
	for i := range videos {
		videos[i].ComputeDerivedMetrics()
	}
	return &StaticSource{name: name, videos: videos}
}

func (s *StaticSource) Name() string { return s.name }

func (s *StaticSource) Fetch(ctx context.Context) ([]models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Video, len(s.videos))
	copy(out, s.videos)
	return out, nil
}
