package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// Service is the catalogue store the engine consumes. It runs the source
// chain with a per-call timeout and keeps the last successfully fetched
// snapshot; when every source fails, callers get the snapshot instead of an
// empty state. Only a cold start with all sources down surfaces
// ErrUpstreamUnavailable.
type Service struct {
	sources      []Source
	fetchTimeout time.Duration
	logger       *logrus.Logger

	mu       sync.RWMutex
	snapshot []models.Video
	byID     map[string]models.Video
}

func NewService(sources []Source, fetchTimeout time.Duration, logger *logrus.Logger) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	return &Service{
		sources:      sources,
		fetchTimeout: fetchTimeout,
		logger:       logger,
		byID:         make(map[string]models.Video),
	}
}

// FetchAll returns the full catalogue. The fetch is the engine's only
// suspension point, so it inherits the caller's cancellation and adds a hard
// per-call timeout.
func (s *Service) FetchAll(ctx context.Context) ([]models.Video, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	videos, sourceName, err := FirstSuccess(fetchCtx, s.sources, s.logger)
	if err != nil {
		s.mu.RLock()
		snapshot := s.snapshot
		s.mu.RUnlock()

		if snapshot != nil {
			s.logger.WithError(err).Warn("All catalog sources failed, serving last snapshot")
			out := make([]models.Video, len(snapshot))
			copy(out, snapshot)
			return out, nil
		}
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	byID := make(map[string]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	s.mu.Lock()
	s.snapshot = videos
	s.byID = byID
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"source": sourceName,
		"videos": len(videos),
	}).Debug("Catalog fetched")

	out := make([]models.Video, len(videos))
	copy(out, videos)
	return out, nil
}

// FetchByID resolves one video. Refreshes the snapshot when the id is not
// cached yet.
func (s *Service) FetchByID(ctx context.Context, id string) (*models.Video, error) {
	s.mu.RLock()
	v, ok := s.byID[id]
	s.mu.RUnlock()
	if ok {
		return &v, nil
	}

	if _, err := s.FetchAll(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	v, ok = s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &v, nil
}

// FetchByChannel returns the catalogue entries of one channel, case-insensitive.
func (s *Service) FetchByChannel(ctx context.Context, channelName string) ([]models.Video, error) {
	videos, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(channelName)
	var out []models.Video
	for _, v := range videos {
		if strings.ToLower(v.ChannelName) == want {
			out = append(out, v)
		}
	}
	return out, nil
}
