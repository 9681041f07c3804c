// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/cookapi/jobclient/pkg/cerrors"

	"github.com/jcmturner/gokrb5/v8/client"
	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/spnego"
)

// DefaultKrb5Conf is used when neither KerberosConfig.Krb5Conf nor the
// KRB5_CONFIG environment variable are set.
const DefaultKrb5Conf = "/etc/krb5.conf"

// KerberosConfig locates the Kerberos configuration and an existing
// credential cache. Tickets are never acquired by this package.
type KerberosConfig struct {
	// Krb5Conf is the path of krb5.conf.
	Krb5Conf string
	// CCache is the path of the credential cache.
	CCache string
	// SPN is the service principal of the scheduler. If empty it is
	// derived from the request host as HTTP/<host>.
	SPN string
}

func (c KerberosConfig) withDefaults() KerberosConfig {
	if c.Krb5Conf == "" {
		c.Krb5Conf = os.Getenv("KRB5_CONFIG")
	}
	if c.Krb5Conf == "" {
		c.Krb5Conf = DefaultKrb5Conf
	}
	if c.CCache == "" {
		c.CCache = strings.TrimPrefix(os.Getenv("KRB5CCNAME"), "FILE:")
	}
	if c.CCache == "" {
		c.CCache = fmt.Sprintf("/tmp/krb5cc_%d", os.Getuid())
	}
	return c
}

// KerberosAuth negotiates a SPNEGO token for every request.
type KerberosAuth struct {
	cfg    KerberosConfig
	client *client.Client
}

// Kerberos loads the Kerberos configuration and credential cache and returns
// an Authenticator using them.
func Kerberos(cfg KerberosConfig) (*KerberosAuth, error) {
	cfg = cfg.withDefaults()
	krb5conf, err := config.Load(cfg.Krb5Conf)
	if err != nil {
		return nil, &cerrors.ConfigurationError{Setting: "auth", Reason: fmt.Sprintf("cannot load Kerberos configuration '%s': %v", cfg.Krb5Conf, err)}
	}
	ccache, err := credentials.LoadCCache(cfg.CCache)
	if err != nil {
		return nil, &cerrors.ConfigurationError{Setting: "auth", Reason: fmt.Sprintf("cannot load Kerberos credential cache '%s': %v", cfg.CCache, err)}
	}
	cl, err := client.NewFromCCache(ccache, krb5conf, client.DisablePAFXFAST(true))
	if err != nil {
		return nil, &cerrors.ConfigurationError{Setting: "auth", Reason: fmt.Sprintf("cannot create Kerberos client: %v", err)}
	}
	return &KerberosAuth{cfg: cfg, client: cl}, nil
}

// Scheme implements Authenticator.
func (k *KerberosAuth) Scheme() Scheme {
	return SchemeKerberos
}

// Authenticate implements Authenticator.
func (k *KerberosAuth) Authenticate(req *http.Request) error {
	if err := spnego.SetSPNEGOHeader(k.client, req, k.cfg.SPN); err != nil {
		return fmt.Errorf("cannot negotiate Kerberos token: %w", err)
	}
	return nil
}
