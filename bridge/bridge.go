// Package bridge forwards (pattern, payload) messages to backend
// microservices over a request/reply transport and maps every reply
// envelope to either a value or a typed error carrying the backend's own
// status, message and errors fields.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crm-gateway/models"
	"crm-gateway/utils/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	forwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_rpc_requests_total",
			Help: "Forwarded RPC calls by service, pattern and outcome",
		},
		[]string{"service", "pattern", "outcome"},
	)

	forwardedDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_rpc_request_duration_seconds",
			Help:    "Forwarded RPC call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
)

// Error is a backend failure relayed by the bridge. Its fields mirror the
// reply envelope verbatim so the HTTP layer can answer with the backend's
// own status and diagnostics.
type Error struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Errors     interface{} `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend replied %d: %s", e.StatusCode, e.Message)
}

// AsError extracts a bridge error from err, or wraps any other failure as
// an opaque 502. Guards and controllers use it as the single mapping from
// a failed call to an HTTP outcome.
func AsError(err error) *Error {
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return &Error{StatusCode: http.StatusBadGateway, Message: "backend unavailable"}
}

// request is the wire shape sent to a backend's /rpc endpoint
type request struct {
	Pattern string      `json:"pattern"`
	Data    interface{} `json:"data"`
}

// Client is a long-lived handle to one backend microservice. It is safe
// for concurrent use; one client per logical service is built at startup.
type Client struct {
	name    string
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	log     logger.Logger
}

// NewClient creates a handle for the named service.
func NewClient(name string, svc models.ServiceConfig, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		name:    name,
		baseURL: "http://" + svc.Addr(),
		httpc:   &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// Name returns the logical service token, e.g. "USER_SERVICE".
func (c *Client) Name() string {
	return c.name
}

// Send issues exactly one request and awaits exactly one reply. A reply
// with statusCode 200 is returned unchanged; any other reply becomes an
// *Error with the envelope's fields.
func (c *Client) Send(ctx context.Context, pattern string, payload interface{}) (*models.Envelope, error) {
	return c.SendExpect(ctx, pattern, payload, http.StatusOK)
}

// SendExpect is Send with the call site declaring its success code, e.g.
// 201 for creation patterns.
func (c *Client) SendExpect(ctx context.Context, pattern string, payload interface{}, expect int) (*models.Envelope, error) {
	start := time.Now()
	env, err := c.roundTrip(ctx, pattern, payload)
	forwardedDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	if err != nil {
		forwardedTotal.WithLabelValues(c.name, pattern, "transport_error").Inc()
		return nil, err
	}

	if env.StatusCode != expect {
		c.log.Debugf("pattern %s on %s replied %d: %s", pattern, c.name, env.StatusCode, env.Message)
		forwardedTotal.WithLabelValues(c.name, pattern, "backend_error").Inc()
		return nil, &Error{
			StatusCode: env.StatusCode,
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}

	forwardedTotal.WithLabelValues(c.name, pattern, "ok").Inc()
	return env, nil
}

// Ping checks that the service answers its /rpc endpoint at all. Any
// well-formed envelope counts as alive, including an error reply for the
// status pattern; only transport failures report the service down.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.roundTrip(ctx, "status", nil)
	return err
}

// roundTrip performs the single HTTP exchange under the bridge deadline
func (c *Client) roundTrip(ctx context.Context, pattern string, payload interface{}) (*models.Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(request{Pattern: pattern, Data: payload})
	if err != nil {
		return nil, &Error{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("cannot encode payload for pattern %s", pattern),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{StatusCode: http.StatusBadGateway, Message: "cannot build backend request"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			c.log.Errorf("pattern %s on %s timed out after %s", pattern, c.name, c.timeout)
			return nil, &Error{StatusCode: http.StatusGatewayTimeout, Message: "upstream timeout"}
		}
		c.log.Errorf("pattern %s on %s failed: %v", pattern, c.name, err)
		return nil, &Error{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("service %s is unreachable", c.name),
		}
	}
	defer resp.Body.Close()

	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Errorf("pattern %s on %s returned a malformed envelope: %v", pattern, c.name, err)
		return nil, &Error{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("malformed reply from %s", c.name),
		}
	}

	// A reply without a status code is treated as a transport-level
	// failure, never as success.
	if env.StatusCode < 100 || env.StatusCode > 599 {
		return nil, &Error{
			StatusCode: http.StatusBadGateway,
			Message:    fmt.Sprintf("invalid reply envelope from %s", c.name),
			Errors:     env.Errors,
		}
	}

	return &env, nil
}
