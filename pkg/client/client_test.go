// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"errors"
	"testing"
	"time"

	"github.com/cookapi/jobclient/pkg/auth"
	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireConfigurationError(t *testing.T, err error, setting string) {
	require.Error(t, err)
	var cerr *cerrors.ConfigurationError
	require.True(t, errors.As(err, &cerr), "expected ConfigurationError, got %T: %v", err, err)
	require.Equal(t, setting, cerr.Setting)
}

func TestNewDefaults(t *testing.T) {
	a, err := auth.Basic("foo", "secret")
	require.NoError(t, err)
	c, err := New("http://localhost:12321", OptionAuth{a})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:12321", c.URL())
	assert.Equal(t, a, c.Auth())
	assert.Equal(t, &job.Description{MaxRetries: job.Int(1)}, c.DefaultJobSettings())
	cfg := c.Config()
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestNewOptions(t *testing.T) {
	a, err := auth.Basic("foo", "secret")
	require.NoError(t, err)
	defaults := &job.Description{MaxRetries: job.Int(10)}
	c, err := New("https://cook.example.com",
		OptionAuth{a},
		OptionBatchSize(4),
		OptionPollInterval(time.Second),
		OptionRequestTimeout(2*time.Second),
		OptionDefaultJobSettings{defaults},
	)
	require.NoError(t, err)
	cfg := c.Config()
	assert.Equal(t, 4, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, defaults, c.DefaultJobSettings())

	// the configuration is immutable
	*defaults.MaxRetries = 3
	c.DefaultJobSettings().MaxRetries = job.Int(4)
	assert.Equal(t, 10, *c.DefaultJobSettings().MaxRetries)
}

func TestNewInvalidConfiguration(t *testing.T) {
	a, err := auth.Basic("foo", "secret")
	require.NoError(t, err)

	_, err = New("http://localhost:12321")
	requireConfigurationError(t, err, "auth")
	_, err = New("localhost:12321", OptionAuth{a})
	requireConfigurationError(t, err, "url")
	_, err = New("http://localhost:12321", OptionAuth{a}, OptionBatchSize(0))
	requireConfigurationError(t, err, "batch size")
	_, err = New("http://localhost:12321", OptionAuth{a}, OptionPollInterval(-time.Second))
	requireConfigurationError(t, err, "poll interval")
	_, err = New("http://localhost:12321", OptionAuth{a}, OptionRequestTimeout(-time.Second))
	requireConfigurationError(t, err, "request timeout")
}
