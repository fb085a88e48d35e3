// Package httpfetch serves the http and https schemes of the protocol
// handler registry. The launcher registers it so remote bundle locators can
// be fetched before bootstrap continues.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/protocol"
)

// Schemes served by this package.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// sharedClient is reused by all handler instances so TCP connections are
// pooled across fetches. Cancellation comes from the request context, not a
// client timeout.
var sharedClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Handler downloads locator content over HTTP.
type Handler struct {
	client *http.Client
}

// New creates a handler on the shared package client.
func New() *Handler {
	return NewWithClient(sharedClient)
}

// NewWithClient creates a handler on a caller-supplied client.
func NewWithClient(client *http.Client) *Handler {
	return &Handler{client: client}
}

// Open issues a GET for the locator and returns the response body. Any
// status other than 200 is an error.
func (h *Handler) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	ctxlog.FromContext(ctx).Debug("Fetching remote locator.", "locator", locator)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch request for '%s': %w", locator, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch '%s': %w", locator, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch of '%s' failed with status: %s", locator, resp.Status)
	}
	return resp.Body, nil
}

// Factory returns the handler factory serving the http and https schemes.
func Factory() protocol.HandlerFactory {
	handler := New()
	return protocol.HandlerFactoryFunc(func(scheme string) (protocol.Handler, bool) {
		switch scheme {
		case SchemeHTTP, SchemeHTTPS:
			return handler, true
		}
		return nil, false
	})
}
