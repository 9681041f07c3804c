// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"net/http"
	"time"

	"github.com/cookapi/jobclient/pkg/auth"
	"github.com/cookapi/jobclient/pkg/job"
	"github.com/cookapi/jobclient/pkg/metrics"
	"github.com/cookapi/jobclient/pkg/transport"

	"github.com/sirupsen/logrus"
)

// Default values of the client configuration.
const (
	DefaultBatchSize      = 32
	DefaultPollInterval   = 10 * time.Second
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxRetries     = 1
)

// DefaultJobSettings returns the job defaults used when none are configured.
func DefaultJobSettings() *job.Description {
	return &job.Description{MaxRetries: job.Int(DefaultMaxRetries)}
}

// Option is an additional argument to method New to change the behavior
// of the Client.
type Option interface {
	Apply(*Config)
}

// Config is a set of knobs to change the behavior of the Client.
// In other words, Config aggregates all the Option-s into one structure.
type Config struct {
	// URL is the scheduler REST API base URL.
	URL string

	// Auth decorates every request with credentials.
	Auth auth.Authenticator

	// BatchSize is the maximum number of jobs targeted by a single
	// query or delete request.
	BatchSize int

	// PollInterval is the time Wait sleeps between two polling passes.
	PollInterval time.Duration

	// RequestTimeout bounds every HTTP request.
	RequestTimeout time.Duration

	// DefaultJobSettings are merged into every submitted job that does not
	// set the same field.
	DefaultJobSettings *job.Description

	Log        *logrus.Entry
	Metrics    *metrics.Metrics
	Transport  transport.Transport
	HTTPClient *http.Client
}

// OptionAuth defines the credentials attached to every request.
type OptionAuth struct {
	auth.Authenticator
}

// Apply implements Option.
func (opt OptionAuth) Apply(config *Config) {
	config.Auth = opt.Authenticator
}

// OptionBatchSize defines the maximum number of jobs per query/delete request.
type OptionBatchSize int

// Apply implements Option.
func (opt OptionBatchSize) Apply(config *Config) {
	config.BatchSize = int(opt)
}

// OptionPollInterval defines the time Wait sleeps between polling passes.
type OptionPollInterval time.Duration

// Apply implements Option.
func (opt OptionPollInterval) Apply(config *Config) {
	config.PollInterval = time.Duration(opt)
}

// OptionRequestTimeout defines the timeout of every HTTP request.
type OptionRequestTimeout time.Duration

// Apply implements Option.
func (opt OptionRequestTimeout) Apply(config *Config) {
	config.RequestTimeout = time.Duration(opt)
}

// OptionDefaultJobSettings defines the defaults merged into submitted jobs.
type OptionDefaultJobSettings struct {
	*job.Description
}

// Apply implements Option.
func (opt OptionDefaultJobSettings) Apply(config *Config) {
	config.DefaultJobSettings = job.Copy(opt.Description)
}

// OptionLogger defines the logger used by the client.
type OptionLogger struct {
	*logrus.Entry
}

// Apply implements Option.
func (opt OptionLogger) Apply(config *Config) {
	config.Log = opt.Entry
}

// OptionMetrics defines where request and polling metrics are recorded.
type OptionMetrics struct {
	*metrics.Metrics
}

// Apply implements Option.
func (opt OptionMetrics) Apply(config *Config) {
	config.Metrics = opt.Metrics
}

// OptionTransport replaces the HTTP transport. Auth, RequestTimeout and
// HTTPClient are ignored when it is set.
type OptionTransport struct {
	transport.Transport
}

// Apply implements Option.
func (opt OptionTransport) Apply(config *Config) {
	config.Transport = opt.Transport
}

// OptionHTTPClient defines the HTTP client used by the default transport.
type OptionHTTPClient struct {
	*http.Client
}

// Apply implements Option.
func (opt OptionHTTPClient) Apply(config *Config) {
	config.HTTPClient = opt.Client
}

// getConfig converts a set of Option-s into one structure "Config".
func getConfig(url string, opts ...Option) Config {
	result := Config{
		URL:                url,
		BatchSize:          DefaultBatchSize,
		PollInterval:       DefaultPollInterval,
		RequestTimeout:     DefaultRequestTimeout,
		DefaultJobSettings: DefaultJobSettings(),
	}
	for _, opt := range opts {
		opt.Apply(&result)
	}
	return result
}
