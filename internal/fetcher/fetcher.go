package fetcher

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mcncl/envflat/internal/errors"
	"github.com/mcncl/envflat/internal/models"
	"github.com/mcncl/envflat/internal/parser"
)

// NewClient returns a resty client set up for a single best-effort GET:
// no timeout, no retries, redirects followed, diagnostics sent to logger.
func NewClient(logger *zap.Logger) *resty.Client {
	return resty.New().
		SetRetryCount(0).
		SetDisableWarn(true).
		SetLogger(logger.Sugar())
}

// Fetcher downloads a JSON document over HTTP.
type Fetcher struct {
	client *resty.Client
}

// New creates a Fetcher that sends requests through client.
func New(client *resty.Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchJSON issues one GET to url and parses the body. The bearer token is sent only
// when non-empty. Transport failures are returned unchanged; a non-2xx status yields a
// fetch error wrapping *errors.HTTPStatusError, an unparseable body a parsing error.
func (f *Fetcher) FetchJSON(ctx context.Context, url, token string) (models.Value, error) {
	req := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		statusErr := errors.NewHTTPStatusError(resp.StatusCode(), resp.Status(), string(resp.Body()))
		return nil, errors.NewFetchError(fmt.Sprintf("unexpected status %d", resp.StatusCode()), statusErr)
	}

	return parser.Parse(resp.Body())
}
