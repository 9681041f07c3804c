// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package config reads the job client configuration and job description
// files.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/cookapi/jobclient/pkg/auth"
	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/client"
	"github.com/cookapi/jobclient/pkg/job"
	httptransport "github.com/cookapi/jobclient/pkg/transport/http"

	"github.com/insomniacslk/xjson"
)

// AuthConfig selects and configures the authentication scheme.
type AuthConfig struct {
	Scheme   auth.Scheme `json:"scheme"`
	User     string      `json:"user,omitempty"`
	Password string      `json:"password,omitempty"`
	Krb5Conf string      `json:"krb5_conf,omitempty"`
	CCache   string      `json:"ccache,omitempty"`
	SPN      string      `json:"spn,omitempty"`
}

// ClientConfig is the content of a client configuration file. Zero values
// leave the client defaults in place.
type ClientConfig struct {
	URL                *xjson.URL             `json:"url"`
	Auth               AuthConfig             `json:"auth"`
	BatchSize          int                    `json:"batch_size,omitempty"`
	PollInterval       xjson.Duration         `json:"poll_interval,omitempty"`
	RequestTimeout     xjson.Duration         `json:"request_timeout,omitempty"`
	DefaultJobSettings map[string]interface{} `json:"default_job_settings,omitempty"`
}

// ParseClientConfig decodes a JSON or YAML client configuration.
func ParseClientConfig(data []byte, format Format) (*ClientConfig, error) {
	jsonDoc, err := ToJSON(data, format)
	if err != nil {
		return nil, err
	}
	var cfg ClientConfig
	if err := json.Unmarshal(jsonDoc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client configuration: %w", err)
	}
	return &cfg, nil
}

// LoadClientConfig reads a client configuration file. The format is guessed
// from the file extension.
func LoadClientConfig(path string) (*ClientConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read client configuration: %w", err)
	}
	cfg, err := ParseClientConfig(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// URLString returns the configured scheduler URL, or an empty string.
func (c *ClientConfig) URLString() string {
	if c.URL == nil {
		return ""
	}
	return c.URL.String()
}

// Validate checks the values that can be checked without building a client.
func (c *ClientConfig) Validate() error {
	if c.URL != nil {
		if _, err := httptransport.ParseAddr(c.URL.String()); err != nil {
			return &cerrors.ConfigurationError{Setting: "url", Reason: err.Error()}
		}
	}
	switch c.Auth.Scheme {
	case "", auth.SchemeBasic, auth.SchemeKerberos:
	default:
		return &cerrors.ConfigurationError{Setting: "auth", Reason: fmt.Sprintf("authentication type '%s' not supported", c.Auth.Scheme)}
	}
	if c.BatchSize < 0 {
		return &cerrors.ConfigurationError{Setting: "batch size", Reason: fmt.Sprintf("cannot be negative, got %d", c.BatchSize)}
	}
	if c.PollInterval < 0 {
		return &cerrors.ConfigurationError{Setting: "poll interval", Reason: fmt.Sprintf("cannot be negative, got %s", time.Duration(c.PollInterval))}
	}
	if c.RequestTimeout < 0 {
		return &cerrors.ConfigurationError{Setting: "request timeout", Reason: fmt.Sprintf("cannot be negative, got %s", time.Duration(c.RequestTimeout))}
	}
	if _, err := c.defaultJobSettings(); err != nil {
		return err
	}
	return nil
}

func (c *ClientConfig) defaultJobSettings() (*job.Description, error) {
	if c.DefaultJobSettings == nil {
		return nil, nil
	}
	d, err := job.Decode(0, c.DefaultJobSettings)
	if err != nil {
		return nil, &cerrors.ConfigurationError{Setting: "default job settings", Reason: err.Error()}
	}
	job.MergeDefaults(d, client.DefaultJobSettings())
	return d, nil
}

func (c *ClientConfig) authConfig() auth.Config {
	return auth.Config{
		User:     c.Auth.User,
		Password: c.Auth.Password,
		Kerberos: auth.KerberosConfig{
			Krb5Conf: c.Auth.Krb5Conf,
			CCache:   c.Auth.CCache,
			SPN:      c.Auth.SPN,
		},
	}
}

// Options converts the configuration into client options. The
// authenticator is built here, so Kerberos credentials are loaded at this
// point.
func (c *ClientConfig) Options() ([]client.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var opts []client.Option
	if c.Auth.Scheme != "" {
		a, err := auth.New(c.Auth.Scheme, c.authConfig())
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.OptionAuth{Authenticator: a})
	}
	if c.BatchSize > 0 {
		opts = append(opts, client.OptionBatchSize(c.BatchSize))
	}
	if c.PollInterval > 0 {
		opts = append(opts, client.OptionPollInterval(time.Duration(c.PollInterval)))
	}
	if c.RequestTimeout > 0 {
		opts = append(opts, client.OptionRequestTimeout(time.Duration(c.RequestTimeout)))
	}
	defaults, err := c.defaultJobSettings()
	if err != nil {
		return nil, err
	}
	if defaults != nil {
		opts = append(opts, client.OptionDefaultJobSettings{Description: defaults})
	}
	return opts, nil
}
