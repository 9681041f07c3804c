// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package client implements a client for the Cook batch scheduler REST API.
package client

import (
	"fmt"
	"net/url"

	"github.com/cookapi/jobclient/pkg/auth"
	"github.com/cookapi/jobclient/pkg/batch"
	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/job"
	"github.com/cookapi/jobclient/pkg/logging"
	"github.com/cookapi/jobclient/pkg/transport"
	httptransport "github.com/cookapi/jobclient/pkg/transport/http"
	"github.com/cookapi/jobclient/pkg/types"

	"github.com/sirupsen/logrus"
)

// Scheduler API endpoints.
const (
	SchedulerEndpoint = "/rawscheduler"
	ListEndpoint      = "/list"
	RetryEndpoint     = "/retry"
)

// Client talks to the scheduler. Its configuration is immutable once
// created. A Client carries no lock: share it between goroutines only if
// its Transport is safe for concurrent use, which the default one is.
type Client struct {
	config    Config
	transport transport.Transport
	log       *logrus.Entry
}

// New returns a Client for the scheduler at url.
func New(url string, opts ...Option) (*Client, error) {
	cfg := getConfig(url, opts...)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if cfg.Log == nil {
		cfg.Log = logging.GetLogger("cook/client")
	}
	tr := cfg.Transport
	if tr == nil {
		tr = &httptransport.HTTP{
			Addr:    cfg.URL,
			Auth:    cfg.Auth,
			Timeout: cfg.RequestTimeout,
			Client:  cfg.HTTPClient,
			Log:     cfg.Log,
			Metrics: cfg.Metrics,
		}
	}
	return &Client{config: cfg, transport: tr, log: cfg.Log}, nil
}

func validateConfig(cfg *Config) error {
	if _, err := httptransport.ParseAddr(cfg.URL); err != nil {
		return &cerrors.ConfigurationError{Setting: "url", Reason: err.Error()}
	}
	if cfg.Auth == nil && cfg.Transport == nil {
		return &cerrors.ConfigurationError{Setting: "auth", Reason: "an authentication method is required"}
	}
	if cfg.BatchSize <= 0 {
		return &cerrors.ConfigurationError{Setting: "batch size", Reason: fmt.Sprintf("must be positive, got %d", cfg.BatchSize)}
	}
	if cfg.PollInterval < 0 {
		return &cerrors.ConfigurationError{Setting: "poll interval", Reason: fmt.Sprintf("cannot be negative, got %s", cfg.PollInterval)}
	}
	if cfg.RequestTimeout < 0 {
		return &cerrors.ConfigurationError{Setting: "request timeout", Reason: fmt.Sprintf("cannot be negative, got %s", cfg.RequestTimeout)}
	}
	return nil
}

// URL returns the scheduler base URL.
func (c *Client) URL() string {
	return c.config.URL
}

// Auth returns the authentication method.
func (c *Client) Auth() auth.Authenticator {
	return c.config.Auth
}

// DefaultJobSettings returns a copy of the default job settings.
func (c *Client) DefaultJobSettings() *job.Description {
	return job.Copy(c.config.DefaultJobSettings)
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	cfg := c.config
	cfg.DefaultJobSettings = job.Copy(cfg.DefaultJobSettings)
	return cfg
}

// jobPaths returns the request paths targeting ids on the scheduler
// endpoint. A single job is addressed directly, more jobs are split in
// batches of at most BatchSize.
func (c *Client) jobPaths(op string, ids []types.JobID) ([]string, error) {
	if len(ids) == 0 {
		return nil, &cerrors.ArgumentError{Op: op, Reason: "one or more jobs required"}
	}
	if len(ids) == 1 {
		return []string{fmt.Sprintf("%s?%s=%s", SchedulerEndpoint, batch.JobParam, url.QueryEscape(ids[0].String()))}, nil
	}
	return batch.Paths(SchedulerEndpoint, ids, c.config.BatchSize), nil
}
