package adapter

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/trace"
	"github.com/go-resty/resty/v2"
)

// RequestHook prepares every request built by a [TracedClient] before the
// default headers are added.
type RequestHook func(ctx context.Context, req *resty.Request)

// Option configures a [TracedClient].
type Option func(*TracedClient)

// TracedClient builds resty requests that propagate the B3 trace of their
// context.
type TracedClient struct {
	client  *resty.Client
	headers http.Header
	hook    RequestHook
}

// WithBaseURL sets the URL relative request paths are resolved against.
func WithBaseURL(url string) Option {
	return func(c *TracedClient) {
		c.client.SetBaseURL(url)
	}
}

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *TracedClient) {
		c.client.SetTimeout(timeout)
	}
}

// WithRequestHook replaces [InjectTrace] as the request hook.
func WithRequestHook(hook RequestHook) Option {
	return func(c *TracedClient) {
		c.hook = hook
	}
}

// WithLogger logs every response at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(c *TracedClient) {
		c.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			log.Debug().
				Str(logger.TraceIDField, trace.TraceIDFromContext(resp.Request.Context())).
				Str("method", resp.Request.Method).
				Str("url", resp.Request.URL).
				Int("status", resp.StatusCode()).
				Dur("duration", resp.Time()).
				Msg("outbound request")
			return nil
		})
	}
}

// NewTracedClient returns a client with [InjectTrace] as its request hook.
func NewTracedClient(opts ...Option) *TracedClient {
	c := &TracedClient{
		client:  resty.New(),
		headers: make(http.Header),
		hook:    InjectTrace,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Header adds a header sent with every request.
func (c *TracedClient) Header(key, value string) *TracedClient {
	c.headers.Add(key, value)
	return c
}

// Raw returns the underlying resty client.
func (c *TracedClient) Raw() *resty.Client {
	return c.client
}

// R returns a request bound to ctx with the hook and default headers
// applied.
func (c *TracedClient) R(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if c.hook != nil {
		c.hook(ctx, req)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req
}

// Request is like [TracedClient.R] with the method and URL set, ready for
// [resty.Request.Send].
func (c *TracedClient) Request(ctx context.Context, method, url string) *resty.Request {
	req := c.R(ctx)
	req.Method = method
	req.URL = url
	return req
}

func (c *TracedClient) Get(ctx context.Context, url string) *resty.Request {
	return c.Request(ctx, resty.MethodGet, url)
}

func (c *TracedClient) Head(ctx context.Context, url string) *resty.Request {
	return c.Request(ctx, resty.MethodHead, url)
}

func (c *TracedClient) Put(ctx context.Context, url string) *resty.Request {
	return c.Request(ctx, resty.MethodPut, url)
}

func (c *TracedClient) Post(ctx context.Context, url string) *resty.Request {
	return c.Request(ctx, resty.MethodPost, url)
}

func (c *TracedClient) Patch(ctx context.Context, url string) *resty.Request {
	return c.Request(ctx, resty.MethodPatch, url)
}

func (c *TracedClient) Delete(ctx context.Context, url string) *resty.Request {
	return c.Request(ctx, resty.MethodDelete, url)
}

func (c *TracedClient) Options(ctx context.Context, url string) *resty.Request {
	return c.Request(ctx, resty.MethodOptions, url)
}

// InjectTrace writes the B3 headers of the next span of the trace in ctx.
// Requests without a trace are left untouched.
func InjectTrace(ctx context.Context, req *resty.Request) {
	if next, ok := trace.NextFromContext(ctx); ok {
		next.Inject(req.Header)
	}
}

// AcceptJSON marks req as sending and expecting JSON.
func AcceptJSON(req *resty.Request) *resty.Request {
	return req.
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}
