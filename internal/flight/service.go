package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"flightgate/pkg/cache"
	"flightgate/pkg/logger"
)

// cacheTTL is fixed by the provider contract: responses are cached for 30
// minutes regardless of route.
const cacheTTL = 1800 * time.Second

// Upstream is the outbound boundary the service calls through; satisfied by
// *Gateway in production.
type Upstream interface {
	Search(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
}

// Service orchestrates a search: cache lookup, query building on a miss, one
// upstream call, cache store. Two concurrent misses for the same key both
// call upstream; there is deliberately no in-flight de-duplication.
type Service struct {
	builder  *QueryBuilder
	upstream Upstream
	cache    cache.Cache
	logger   logger.Client
}

func NewService(builder *QueryBuilder, upstream Upstream, cache cache.Cache, logger logger.Client) *Service {
	return &Service{
		builder:  builder,
		upstream: upstream,
		cache:    cache,
		logger:   logger,
	}
}

func (s *Service) SearchOneWay(ctx context.Context, req OneWayRequest) (json.RawMessage, error) {
	key := fmt.Sprintf("one_way_flights:%s_%s", req.Source, req.Destination)
	return s.search(ctx, key, PathOneWay, func() url.Values {
		return s.builder.BuildOneWay(req)
	})
}

func (s *Service) SearchRoundTrip(ctx context.Context, req RoundTripRequest) (json.RawMessage, error) {
	key := fmt.Sprintf("round_trip_flights:%s_%s", req.Source, req.Destination)
	return s.search(ctx, key, PathRoundTrip, func() url.Values {
		return s.builder.BuildRoundTrip(req)
	})
}

func (s *Service) search(ctx context.Context, key, path string, buildQuery func() url.Values) (json.RawMessage, error) {
	cached, err := s.cache.Get(ctx, key)
	if err == nil && cached != "" {
		s.logger.Debug("cache hit", logger.Field{Key: "cache_key", Value: key})
		return json.RawMessage(cached), nil
	}

	response, err := s.upstream.Search(ctx, path, buildQuery())
	if err != nil {
		return nil, err
	}

	// Return the response even if caching fails
	if err := s.cache.Set(ctx, key, string(response), cacheTTL); err != nil {
		s.logger.Error("failed to cache response",
			logger.Field{Key: "cache_key", Value: key},
			logger.Field{Key: "err", Value: err},
		)
	}

	return response, nil
}
