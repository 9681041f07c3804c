// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cookapi/jobclient/pkg/auth"
	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/logging"
	"github.com/cookapi/jobclient/pkg/metrics"
	"github.com/cookapi/jobclient/pkg/transport"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
)

// HTTP communicates with the scheduler via http(s)/json transport.
// HTTP implements the Transport interface.
type HTTP struct {
	// Addr is the scheduler base URL, e.g. http://localhost:12321
	Addr string
	// Auth decorates every request with credentials. It may be nil.
	Auth auth.Authenticator
	// Timeout bounds every single request. Zero means no timeout.
	Timeout time.Duration
	// Client is the underlying HTTP client. If nil, a pooled client from
	// go-cleanhttp is used.
	Client *http.Client
	// Log receives one debug line per request. If nil, the package logger
	// is used.
	Log *logrus.Entry
	// Metrics may be nil.
	Metrics *metrics.Metrics
}

var _ transport.Transport = &HTTP{}

// ParseAddr validates a scheduler base URL.
func ParseAddr(addr string) (*url.URL, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server address '%s': %v", addr, err)
	}
	if u.Scheme == "" {
		return nil, errors.New("server URL scheme not specified")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme '%s', please specify either http or https", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server URL '%s' has no host", addr)
	}
	return u, nil
}

// Get implements transport.Transport.
func (h *HTTP) Get(ctx context.Context, paths ...string) ([]*transport.Response, error) {
	return h.batch(ctx, http.MethodGet, paths)
}

// Delete implements transport.Transport.
func (h *HTTP) Delete(ctx context.Context, paths ...string) ([]*transport.Response, error) {
	return h.batch(ctx, http.MethodDelete, paths)
}

// Post implements transport.Transport. body is encoded as JSON.
func (h *HTTP) Post(ctx context.Context, path string, body interface{}) (*transport.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("cannot encode request body: %w", err)
	}
	return h.request(ctx, http.MethodPost, path, data)
}

func (h *HTTP) batch(ctx context.Context, method string, paths []string) ([]*transport.Response, error) {
	resps := make([]*transport.Response, 0, len(paths))
	for _, path := range paths {
		resp, err := h.request(ctx, method, path, nil)
		if err != nil {
			return resps, err
		}
		resps = append(resps, resp)
		if !resp.Success() {
			break
		}
	}
	return resps, nil
}

func (h *HTTP) logger() *logrus.Entry {
	if h.Log != nil {
		return h.Log
	}
	return logging.GetLogger("cook/transport")
}

func (h *HTTP) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return defaultClient
}

var defaultClient = cleanhttp.DefaultPooledClient()

func (h *HTTP) request(ctx context.Context, method, path string, body []byte) (*transport.Response, error) {
	u := strings.TrimRight(h.Addr, "/") + path
	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &cerrors.TransportError{Method: method, URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.Auth != nil {
		if err := h.Auth.Authenticate(req); err != nil {
			return nil, &cerrors.TransportError{Method: method, URL: u, Err: err}
		}
	}

	log := h.logger().WithFields(logrus.Fields{"method": method, "url": u})
	start := time.Now()
	resp, err := h.client().Do(req)
	if err != nil {
		h.Metrics.ObserveTransportError(method, endpoint, time.Since(start))
		log.Debugf("request failed: %v", err)
		return nil, &cerrors.TransportError{Method: method, URL: u, Err: err}
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		h.Metrics.ObserveTransportError(method, endpoint, elapsed)
		return nil, &cerrors.TransportError{Method: method, URL: u, Err: fmt.Errorf("cannot read HTTP response: %w", err)}
	}
	h.Metrics.ObserveRequest(method, endpoint, resp.StatusCode, elapsed)
	log.Debugf("the server responded with status %s in %s", resp.Status, elapsed)

	return &transport.Response{StatusCode: resp.StatusCode, Status: resp.Status, Body: data}, nil
}
