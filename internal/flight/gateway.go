package flight

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"flightgate/pkg/logger"
)

const (
	PathOneWay    = "/one-way"
	PathRoundTrip = "/round-trip"
)

// emptyEnvelope is what callers receive when the provider answers with a
// non-200: a data-level failure degrades to an empty result set instead of
// failing the request.
var emptyEnvelope = json.RawMessage(`{"data": []}`)

// Gateway issues the single outbound call per search. It makes exactly one
// attempt: no retries, no backoff. The injected http.Client carries the
// 30-second budget for the whole call.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiHost    string
	limiter    *rate.Limiter
	logger     logger.Client
}

func NewGateway(httpClient *http.Client, baseURL, apiKey, apiHost string, limiter *rate.Limiter, logger logger.Client) *Gateway {
	return &Gateway{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiHost:    apiHost,
		limiter:    limiter,
		logger:     logger,
	}
}

// Search calls the provider path with the built query and classifies the
// outcome. Only timeouts (408), transport failures (503) and unclassified
// failures (500) surface as errors; everything else degrades to a value.
func (g *Gateway) Search(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, g.classify(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, &ServiceError{
			Status:  http.StatusInternalServerError,
			Code:    ErrorCodeInternalFailure,
			Message: "failed to build provider request",
		}
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("x-rapidapi-key", g.apiKey)
	req.Header.Set("x-rapidapi-host", g.apiHost)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("provider call failed", logger.Field{Key: "err", Value: err})
		return nil, g.classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Error("failed to read provider response", logger.Field{Key: "err", Value: err})
		return nil, &ServiceError{
			Status:  http.StatusInternalServerError,
			Code:    ErrorCodeInternalFailure,
			Message: "failed to read provider response",
		}
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("provider returned non-200",
			logger.Field{Key: "status", Value: resp.StatusCode},
			logger.Field{Key: "body", Value: string(body)},
		)
		return emptyEnvelope, nil
	}

	if !json.Valid(body) {
		g.logger.Error("provider returned invalid json", logger.Field{Key: "path", Value: path})
		return nil, &ServiceError{
			Status:  http.StatusInternalServerError,
			Code:    ErrorCodeInternalFailure,
			Message: "provider returned malformed response",
		}
	}

	return json.RawMessage(body), nil
}

func (g *Gateway) classify(err error) *ServiceError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &ServiceError{
			Status:  http.StatusRequestTimeout,
			Code:    ErrorCodeTimeout,
			Message: "flight search request timed out",
		}
	case isTransportError(err):
		return &ServiceError{
			Status:  http.StatusServiceUnavailable,
			Code:    ErrorCodeUpstreamUnreachable,
			Message: "unable to connect to flight search provider",
		}
	default:
		return &ServiceError{
			Status:  http.StatusInternalServerError,
			Code:    ErrorCodeInternalFailure,
			Message: "unexpected error during flight search",
		}
	}
}

// isTransportError matches connection-level failures: refused connections,
// DNS errors, broken sockets. Timeouts are handled before this is consulted.
func isTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
