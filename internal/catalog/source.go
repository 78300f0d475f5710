package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/pkg/models"
)

// ErrUpstreamUnavailable is the distinct error kind for catalogue fetch
// failures. The engine never retries; orchestration catches this and falls
// back to the last good snapshot.
var ErrUpstreamUnavailable = errors.New("catalog upstream unavailable")

// ErrNotFound marks a lookup for a video id the catalogue does not contain.
var ErrNotFound = errors.New("video not found")

// Source is one catalogue backend. Sources are tried in a fixed order by
// FirstSuccess instead of nested error handling, so the fallback order is
// independently testable.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Video, error)
}

// FirstSuccess tries each source in order and returns the first successful
// fetch along with the winning source's name. All sources failing yields
// ErrUpstreamUnavailable wrapping the last failure.
func FirstSuccess(ctx context.Context, sources []Source, logger *logrus.Logger) ([]models.Video, string, error) {
	var lastErr error
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		videos, err := source.Fetch(ctx)
		if err != nil {
			lastErr = err
			logger.WithError(err).WithField("source", source.Name()).
				Warn("Catalog source failed, trying next")
			continue
		}
		return videos, source.Name(), nil
	}

	if lastErr == nil {
		lastErr = errors.New("no sources configured")
	}
	return nil, "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, lastErr)
}
