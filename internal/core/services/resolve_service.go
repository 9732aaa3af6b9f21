package services

import (
	"context"
	"fmt"
	"time"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/playback"
	"streamgrid/internal/core/ports"
	"streamgrid/pkg/cache"
	"streamgrid/pkg/circuitbreaker"
	"streamgrid/pkg/retry"
	"streamgrid/pkg/tracing"
	"streamgrid/pkg/utils"

	"go.uber.org/zap"
)

// resolveService turns a pasted stream URL into a StreamRef. Platform
// lookups sit behind a TTL cache, a per-platform circuit breaker and a
// bounded retry, so a flaky upstream degrades to the bare parsed reference
// instead of failing the assignment.
type resolveService struct {
	clients  map[domain.Platform]ports.PlatformClient
	cache    *cache.Cache
	breakers *circuitbreaker.Group
	retryCfg retry.Config
	metrics  *MetricsService
	logger   *zap.SugaredLogger
}

func NewResolveService(
	clients []ports.PlatformClient,
	streamCache *cache.Cache,
	breakers *circuitbreaker.Group,
	retryCfg retry.Config,
	metrics *MetricsService,
	logger *zap.SugaredLogger,
) ports.ResolveService {
	byPlatform := make(map[domain.Platform]ports.PlatformClient, len(clients))
	for _, c := range clients {
		byPlatform[c.Platform()] = c
	}
	return &resolveService{
		clients:  byPlatform,
		cache:    streamCache,
		breakers: breakers,
		retryCfg: retryCfg,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *resolveService) Resolve(ctx context.Context, rawURL string) (*domain.StreamRef, error) {
	target, err := playback.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	id := target.ID
	if target.Platform == domain.PlatformTwitch || target.Platform == domain.PlatformKick {
		id = utils.NormalizeChannel(id)
	}

	key := fmt.Sprintf("%s:%s", target.Platform, id)
	if v, ok := s.cache.Get(key); ok {
		s.metrics.ResolveHit()
		return v.(*domain.StreamRef), nil
	}
	s.metrics.ResolveMiss()

	ref, err := s.lookup(ctx, target.Platform, id)
	if err != nil {
		s.metrics.ResolveFailed()
		s.logger.Warnw("platform lookup failed, using parsed reference",
			"platform", target.Platform,
			"channel_id", id,
			"error", err,
		)
		// metadata fetch is best-effort: a ref constructed from the
		// pasted URL still renders an embed
		ref = &domain.StreamRef{
			Platform:   target.Platform,
			ChannelID:  id,
			ResolvedAt: time.Now(),
		}
	}

	s.cache.Set(key, ref)
	return ref, nil
}

func (s *resolveService) lookup(ctx context.Context, platform domain.Platform, id string) (*domain.StreamRef, error) {
	client, ok := s.clients[platform]
	if !ok {
		return nil, fmt.Errorf("%w: no metadata client for %s", domain.ErrUnsupportedPlatform, platform)
	}

	ctx, span := tracing.TraceResolve(ctx, string(platform), id)
	defer span.End()

	breaker := s.breakers.Get(string(platform))

	var ref *domain.StreamRef
	err := breaker.Execute(ctx, func() error {
		var retryErr error
		ref, retryErr = retry.DoWithResult(ctx, s.retryCfg, func() (*domain.StreamRef, error) {
			return client.Lookup(ctx, id)
		})
		return retryErr
	})
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	return ref, nil
}
