package browserless

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/porticus-lab/chromepdf"
)

// Endpoint is the base URL of a Browserless deployment. Any URL may be
// used; the constants name the hosted regions.
type Endpoint string

const (
	EndpointDefault      Endpoint = "https://chrome.browserless.io"
	EndpointLondon       Endpoint = "https://production-lon.browserless.io"
	EndpointSanFrancisco Endpoint = "https://production-sfo.browserless.io"
)

// maxErrorBody caps how much of a failed response is read for the message.
const maxErrorBody = 1 << 20

type clientConfig struct {
	Endpoint   string `validate:"required,http_url"`
	APIKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithEndpoint selects the deployment requests are sent to.
// Defaults to [EndpointDefault].
func WithEndpoint(e Endpoint) Option {
	return func(c *clientConfig) {
		c.Endpoint = string(e)
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

var validate = validator.New()

// Client sends render requests to Browserless. It is shared by the PDF and
// screenshot renderers and is safe for concurrent use.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	cfg := clientConfig{
		Endpoint:   string(EndpointDefault),
		APIKey:     apiKey,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, &chromepdf.ConfigError{Option: "endpoint", Value: cfg.Endpoint}
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		httpClient: cfg.httpClient,
		logger:     cfg.logger,
	}, nil
}

// APIKey returns the key sent with every request.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Post sends payload as JSON to path and returns the response body. The
// API key travels in the token query parameter, never in the body.
//
// Any failure is returned as a [*chromepdf.APIError].
func (c *Client) Post(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &chromepdf.APIError{Message: err.Error(), Err: err}
	}

	target := c.endpoint + path + "?" + url.Values{"token": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, &chromepdf.APIError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending render request",
		zap.String("endpoint", c.endpoint),
		zap.String("path", path),
		zap.Int("bytes", len(body)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Render request failed", zap.String("path", path), zap.Error(err))
		return nil, &chromepdf.APIError{Message: err.Error(), Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		apiErr := responseError(resp)
		c.logger.Error("Render request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}
	return resp.Body, nil
}

// apiMessage is one entry of a Browserless validation error body.
type apiMessage struct {
	Message string `json:"message"`
}

// responseError builds an APIError from a failed response. A JSON array of
// messages is joined with ", "; anything else is used verbatim.
func responseError(resp *http.Response) *chromepdf.APIError {
	cause := errors.Errorf("unexpected status %s", resp.Status)
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &chromepdf.APIError{
			Code:    resp.StatusCode,
			Message: err.Error(),
			Err:     errors.Wrap(err, cause.Error()),
		}
	}
	if len(raw) == 0 {
		return &chromepdf.APIError{Code: resp.StatusCode, Message: "no response", Err: cause}
	}

	message := string(raw)
	var msgs []apiMessage
	if err := json.Unmarshal(raw, &msgs); err == nil {
		parts := make([]string, 0, len(msgs))
		for _, m := range msgs {
			parts = append(parts, m.Message)
		}
		message = strings.Join(parts, ", ")
	}
	return &chromepdf.APIError{Code: resp.StatusCode, Message: message, Err: cause}
}
