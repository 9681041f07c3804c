// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package transport

import (
	"context"
)

// Response is a raw scheduler response. It is not decoded: interpreting the
// status code and the body is up to the caller.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Success reports whether the status code is 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport abstracts the way of talking to the scheduler.
//
// Get and Delete issue one request per path, sequentially and in order, and
// return the responses in the same order. They stop at the first non-2xx
// response, which is returned as the last element. An error is only
// returned when a request got no response at all (*cerrors.TransportError).
type Transport interface {
	Get(ctx context.Context, paths ...string) ([]*Response, error)
	Delete(ctx context.Context, paths ...string) ([]*Response, error)
	Post(ctx context.Context, path string, body interface{}) (*Response, error)
}
