// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cookapi/jobclient/pkg/auth"
	"github.com/cookapi/jobclient/pkg/job"
	"github.com/cookapi/jobclient/pkg/logging"
	"github.com/cookapi/jobclient/pkg/types"

	"github.com/stretchr/testify/require"
)

func init() {
	logging.Disable()
}

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
}

// fakeScheduler records every request and lets each test decide the answer.
type fakeScheduler struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	handle   func(w http.ResponseWriter, r *http.Request, body []byte)
}

func newFakeScheduler(t *testing.T, handle func(w http.ResponseWriter, r *http.Request, body []byte)) *fakeScheduler {
	s := &fakeScheduler{handle: handle}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
		s.mu.Unlock()
		s.handle(w, r, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *fakeScheduler) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func newTestClient(t *testing.T, s *fakeScheduler, opts ...Option) *Client {
	a, err := auth.Basic("foo", "secret")
	require.NoError(t, err)
	opts = append([]Option{
		OptionAuth{a},
		OptionPollInterval(time.Millisecond),
		OptionRequestTimeout(5 * time.Second),
		OptionDefaultJobSettings{&job.Description{MaxRetries: job.Int(10)}},
	}, opts...)
	c, err := New(s.URL, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondWith(code int, body string) func(w http.ResponseWriter, r *http.Request, body []byte) {
	return func(w http.ResponseWriter, r *http.Request, _ []byte) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

// echoJobs answers a query with one job per requested ID, in request order.
func echoJobs(status job.Status) func(w http.ResponseWriter, r *http.Request, body []byte) {
	return func(w http.ResponseWriter, r *http.Request, _ []byte) {
		var infos []job.Info
		for _, id := range r.URL.Query()["job"] {
			infos = append(infos, job.Info{UUID: types.JobID(id), Status: status})
		}
		writeJSON(w, http.StatusOK, infos)
	}
}
