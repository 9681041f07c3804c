// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package auth provides the credentials attached to every scheduler request.
package auth

import (
	"fmt"
	"net/http"

	"github.com/cookapi/jobclient/pkg/cerrors"
)

// Scheme is the name of an authentication method.
type Scheme string

// Supported authentication schemes.
const (
	SchemeBasic    Scheme = "http_basic"
	SchemeKerberos Scheme = "kerberos"
)

// Authenticator decorates outgoing requests with credentials.
type Authenticator interface {
	Scheme() Scheme
	Authenticate(req *http.Request) error
}

// Config gathers the settings of every supported scheme. Only the settings
// of the selected scheme are used.
type Config struct {
	User     string
	Password string
	Kerberos KerberosConfig
}

// New returns the Authenticator for the given scheme.
func New(scheme Scheme, cfg Config) (Authenticator, error) {
	var (
		a   Authenticator
		err error
	)
	switch scheme {
	case SchemeBasic:
		a, err = Basic(cfg.User, cfg.Password)
	case SchemeKerberos:
		a, err = Kerberos(cfg.Kerberos)
	default:
		return nil, &cerrors.ConfigurationError{Setting: "auth", Reason: fmt.Sprintf("authentication type '%s' not supported", scheme)}
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// BasicAuth implements HTTP basic authentication.
type BasicAuth struct {
	User     string
	Password string
}

// Basic returns an HTTP basic Authenticator. Both user and password are
// required.
func Basic(user, password string) (*BasicAuth, error) {
	if user == "" {
		return nil, &cerrors.ConfigurationError{Setting: "auth", Reason: "HTTP user is required when authentication is HTTP basic"}
	}
	if password == "" {
		return nil, &cerrors.ConfigurationError{Setting: "auth", Reason: "HTTP password is required when authentication is HTTP basic"}
	}
	return &BasicAuth{User: user, Password: password}, nil
}

// Scheme implements Authenticator.
func (b *BasicAuth) Scheme() Scheme {
	return SchemeBasic
}

// Authenticate implements Authenticator.
func (b *BasicAuth) Authenticate(req *http.Request) error {
	req.SetBasicAuth(b.User, b.Password)
	return nil
}
