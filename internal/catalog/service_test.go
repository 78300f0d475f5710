package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinghowYooo/nexus/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type failingSource struct {
	name  string
	calls int
}

func (s *failingSource) Name() string { return s.name }

func (s *failingSource) Fetch(ctx context.Context) ([]models.Video, error) {
	s.calls++
	return nil, errors.New("boom")
}

// flakySource fails after its first successful fetch.
type flakySource struct {
	videos []models.Video
	calls  int
}

func (s *flakySource) Name() string { return "flaky" }

func (s *flakySource) Fetch(ctx context.Context) ([]models.Video, error) {
	s.calls++
	if s.calls > 1 {
		return nil, errors.New("upstream gone")
	}
	out := make([]models.Video, len(s.videos))
	copy(out, s.videos)
	return out, nil
}

func sampleVideos() []models.Video {
	return []models.Video{
		{ID: "v1", Title: "First", ChannelName: "Alpha", ViewCount: 100},
		{ID: "v2", Title: "Second", ChannelName: "beta", ViewCount: 200},
		{ID: "v3", Title: "Third", ChannelName: "Alpha", ViewCount: 300},
	}
}

func TestFirstSuccess_OrderRespected(t *testing.T) {
	primary := NewStaticSource("primary", sampleVideos())
	secondary := NewStaticSource("secondary", sampleVideos()[:1])

	videos, name, err := FirstSuccess(context.Background(), []Source{primary, secondary}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "primary", name)
	assert.Len(t, videos, 3)
}

func TestFirstSuccess_FallsThroughFailures(t *testing.T) {
	failing := &failingSource{name: "broken"}
	fallback := NewStaticSource("fallback", sampleVideos())

	videos, name, err := FirstSuccess(context.Background(), []Source{failing, fallback}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "fallback", name)
	assert.Len(t, videos, 3)
	assert.Equal(t, 1, failing.calls)
}

func TestFirstSuccess_AllFail(t *testing.T) {
	_, _, err := FirstSuccess(context.Background(), []Source{
		&failingSource{name: "a"},
		&failingSource{name: "b"},
	}, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFirstSuccess_NoSources(t *testing.T) {
	_, _, err := FirstSuccess(context.Background(), nil, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFirstSuccess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := FirstSuccess(ctx, []Source{NewStaticSource("a", sampleVideos())}, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_FetchAll(t *testing.T) {
	service := NewService([]Source{NewStaticSource("static", sampleVideos())}, 0, testLogger())

	videos, err := service.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, videos, 3)
}

func TestService_FetchAllReturnsCopies(t *testing.T) {
	service := NewService([]Source{NewStaticSource("static", sampleVideos())}, 0, testLogger())

	first, err := service.FetchAll(context.Background())
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := service.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "First", second[0].Title)
}

func TestService_SnapshotServedWhenSourcesFail(t *testing.T) {
	flaky := &flakySource{videos: sampleVideos()}
	service := NewService([]Source{flaky}, 0, testLogger())

	videos, err := service.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 3)

	// Source now fails, the snapshot keeps serving
	videos, err = service.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, videos, 3)
}

func TestService_ColdStartFailureSurfaces(t *testing.T) {
	service := NewService([]Source{&failingSource{name: "broken"}}, 0, testLogger())

	_, err := service.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestService_FetchByID(t *testing.T) {
	service := NewService([]Source{NewStaticSource("static", sampleVideos())}, 0, testLogger())

	video, err := service.FetchByID(context.Background(), "v2")
	require.NoError(t, err)
	assert.Equal(t, "Second", video.Title)

	_, err = service.FetchByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_FetchByChannel(t *testing.T) {
	service := NewService([]Source{NewStaticSource("static", sampleVideos())}, 0, testLogger())

	videos, err := service.FetchByChannel(context.Background(), "ALPHA")
	require.NoError(t, err)
	assert.Len(t, videos, 2)

	videos, err = service.FetchByChannel(context.Background(), "Beta")
	require.NoError(t, err)
	assert.Len(t, videos, 1)

	videos, err = service.FetchByChannel(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, videos)
}
