// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"net/http"

	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/transport"
)

type resultKind int

const (
	resultOK resultKind = iota
	resultClientError
	resultUnknownError
)

// clientErrorCodes are the 4xx statuses attributable to the caller.
var clientErrorCodes = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusUnauthorized:        true,
	http.StatusForbidden:           true,
	http.StatusNotFound:            true,
	http.StatusConflict:            true,
	http.StatusUnprocessableEntity: true,
}

// result is the outcome of one HTTP interaction.
type result struct {
	kind resultKind
	resp *transport.Response
}

// classify maps a response to a result. If expected is empty any 2xx status
// is a success.
func classify(resp *transport.Response, expected ...int) result {
	ok := false
	if len(expected) == 0 {
		ok = resp.Success()
	}
	for _, code := range expected {
		if resp.StatusCode == code {
			ok = true
		}
	}
	switch {
	case ok:
		return result{kind: resultOK, resp: resp}
	case clientErrorCodes[resp.StatusCode]:
		return result{kind: resultClientError, resp: resp}
	}
	return result{kind: resultUnknownError, resp: resp}
}

// err returns nil for resultOK and the typed error otherwise.
func (r result) err() error {
	switch r.kind {
	case resultOK:
		return nil
	case resultClientError:
		return &cerrors.ClientError{StatusCode: r.resp.StatusCode, Body: r.resp.Body}
	}
	return &cerrors.UnknownError{StatusCode: r.resp.StatusCode, Body: r.resp.Body}
}
