package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
	"streamgrid/internal/core/services"
	"streamgrid/pkg/cache"
	"streamgrid/pkg/circuitbreaker"
	"streamgrid/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPlatformClient struct {
	mock.Mock
	platform domain.Platform
}

func (m *MockPlatformClient) Platform() domain.Platform {
	return m.platform
}

func (m *MockPlatformClient) Lookup(ctx context.Context, id string) (*domain.StreamRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreamRef), args.Error(1)
}

func newResolveService(t *testing.T, clients ...ports.PlatformClient) ports.ResolveService {
	streamCache := cache.New(time.Minute)
	t.Cleanup(streamCache.Stop)

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = 1
	retryCfg.InitialDelay = time.Millisecond

	return services.NewResolveService(
		clients,
		streamCache,
		circuitbreaker.NewGroup(circuitbreaker.DefaultConfig()),
		retryCfg,
		services.NewMetricsService(),
		zap.NewNop().Sugar(),
	)
}

func TestResolveService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("successful lookup is cached", func(t *testing.T) {
		client := &MockPlatformClient{platform: domain.PlatformTwitch}
		svc := newResolveService(t, client)

		resolved := &domain.StreamRef{
			Platform:    domain.PlatformTwitch,
			ChannelID:   "shroud",
			ChannelName: "Shroud",
			Live:        true,
			ResolvedAt:  time.Now(),
		}
		client.On("Lookup", mock.Anything, "shroud").Return(resolved, nil).Once()

		ref, err := svc.Resolve(ctx, "https://twitch.tv/Shroud")

		assert.NoError(t, err)
		assert.Equal(t, resolved, ref)

		// second call served from cache, no further lookup
		again, err := svc.Resolve(ctx, "https://twitch.tv/shroud")

		assert.NoError(t, err)
		assert.Equal(t, resolved, again)
		client.AssertExpectations(t)
	})

	t.Run("failed lookup falls back to the parsed reference", func(t *testing.T) {
		client := &MockPlatformClient{platform: domain.PlatformYouTube}
		svc := newResolveService(t, client)

		client.On("Lookup", mock.Anything, "dQw4w9WgXcQ").
			Return(nil, errors.New("upstream 503"))

		ref, err := svc.Resolve(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

		assert.NoError(t, err)
		assert.Equal(t, domain.PlatformYouTube, ref.Platform)
		assert.Equal(t, "dQw4w9WgXcQ", ref.ChannelID)
		assert.Empty(t, ref.ChannelName)
		assert.False(t, ref.ResolvedAt.IsZero())
	})

	t.Run("missing client still yields a usable reference", func(t *testing.T) {
		svc := newResolveService(t)

		ref, err := svc.Resolve(ctx, "https://kick.com/xqc")

		assert.NoError(t, err)
		assert.Equal(t, domain.PlatformKick, ref.Platform)
		assert.Equal(t, "xqc", ref.ChannelID)
	})

	t.Run("unparseable input propagates the parse error", func(t *testing.T) {
		client := &MockPlatformClient{platform: domain.PlatformTwitch}
		svc := newResolveService(t, client)

		_, err := svc.Resolve(ctx, "not a url")

		assert.Error(t, err)
		client.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})
}
