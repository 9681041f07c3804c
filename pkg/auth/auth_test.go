// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package auth

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/cookapi/jobclient/pkg/cerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireConfigurationError(t *testing.T, err error) {
	require.Error(t, err)
	var cerr *cerrors.ConfigurationError
	require.True(t, errors.As(err, &cerr), "expected ConfigurationError, got %T: %v", err, err)
}

func TestBasic(t *testing.T) {
	_, err := Basic("", "")
	requireConfigurationError(t, err)
	_, err = Basic("foo", "")
	requireConfigurationError(t, err)

	a, err := Basic("foo", "secret")
	require.NoError(t, err)
	assert.Equal(t, SchemeBasic, a.Scheme())

	req, err := http.NewRequest(http.MethodGet, "http://localhost:12321/rawscheduler", nil)
	require.NoError(t, err)
	require.NoError(t, a.Authenticate(req))
	user, password, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "foo", user)
	assert.Equal(t, "secret", password)
}

func TestNew(t *testing.T) {
	a, err := New(SchemeBasic, Config{User: "foo", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, SchemeBasic, a.Scheme())

	_, err = New(SchemeBasic, Config{User: "foo"})
	requireConfigurationError(t, err)

	_, err = New("digest", Config{})
	requireConfigurationError(t, err)
}

func TestKerberosMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := New(SchemeKerberos, Config{Kerberos: KerberosConfig{
		Krb5Conf: filepath.Join(dir, "krb5.conf"),
		CCache:   filepath.Join(dir, "ccache"),
	}})
	requireConfigurationError(t, err)
}

func TestKerberosDefaults(t *testing.T) {
	t.Setenv("KRB5_CONFIG", "/opt/krb5.conf")
	t.Setenv("KRB5CCNAME", "FILE:/tmp/cc")
	cfg := KerberosConfig{}.withDefaults()
	assert.Equal(t, "/opt/krb5.conf", cfg.Krb5Conf)
	assert.Equal(t, "/tmp/cc", cfg.CCache)

	cfg = KerberosConfig{Krb5Conf: "/a", CCache: "/b", SPN: "HTTP/cook"}.withDefaults()
	assert.Equal(t, KerberosConfig{Krb5Conf: "/a", CCache: "/b", SPN: "HTTP/cook"}, cfg)
}
