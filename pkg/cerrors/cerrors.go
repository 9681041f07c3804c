// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package cerrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrJobClient is matched (via errors.Is) by every error derived from an
// HTTP status returned by the scheduler, i.e. ClientError and UnknownError.
var ErrJobClient = errors.New("job client error")

// ConfigurationError indicates that a client was constructed with invalid
// settings. It is returned before any request reaches the network.
type ConfigurationError struct {
	Setting string
	Reason  string
}

// Error returns the error string associated with the error
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Setting, e.Reason)
}

// ArgumentError indicates that an operation was invoked with invalid
// arguments, e.g. an empty list of jobs.
type ArgumentError struct {
	Op     string
	Reason string
}

// Error returns the error string associated with the error
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// FieldError describes a single constraint violated by one job description.
type FieldError struct {
	// Index is the position of the job in the submitted batch.
	Index  int
	Field  string
	Reason string
}

// Error returns the error string associated with the error
func (e *FieldError) Error() string {
	return fmt.Sprintf("job #%d: field '%s': %s", e.Index, e.Field, e.Reason)
}

// ValidationError is returned when one or more job descriptions in a batch
// fail schema validation. It lists every violation, not only the first.
type ValidationError struct {
	errs *multierror.Error
}

// NewValidationError aggregates field errors into a ValidationError. It
// returns nil if no field error is passed.
func NewValidationError(fieldErrs ...*FieldError) *ValidationError {
	if len(fieldErrs) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, fe := range fieldErrs {
		merr = multierror.Append(merr, fe)
	}
	merr.ErrorFormat = func(errs []error) string {
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		return fmt.Sprintf("job validation failed with %d error(s): %s", len(errs), strings.Join(msgs, "; "))
	}
	return &ValidationError{errs: merr}
}

// Error returns the error string associated with the error
func (e *ValidationError) Error() string {
	return e.errs.Error()
}

// Fields returns every field violation, ordered by job index.
func (e *ValidationError) Fields() []*FieldError {
	ret := make([]*FieldError, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		var fe *FieldError
		if errors.As(err, &fe) {
			ret = append(ret, fe)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Index < ret[j].Index
	})
	return ret
}

// Has reports whether the job at the given index violated a constraint on
// the given field.
func (e *ValidationError) Has(index int, field string) bool {
	for _, fe := range e.Fields() {
		if fe.Index == index && fe.Field == field {
			return true
		}
	}
	return false
}

// ClientError is returned when the scheduler answers with a 4xx status that
// is attributable to the caller. It is never retried automatically.
type ClientError struct {
	StatusCode int
	Body       []byte
}

// Error returns the error string associated with the error
func (e *ClientError) Error() string {
	return fmt.Sprintf("scheduler rejected the request: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), strings.TrimSpace(string(e.Body)))
}

// Is makes ClientError match ErrJobClient.
func (e *ClientError) Is(target error) bool {
	return target == ErrJobClient
}

// UnknownError is returned for any other non-success status, e.g. 5xx.
type UnknownError struct {
	StatusCode int
	Body       []byte
}

// Error returns the error string associated with the error
func (e *UnknownError) Error() string {
	return fmt.Sprintf("scheduler returned an unexpected status: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), strings.TrimSpace(string(e.Body)))
}

// Is makes UnknownError match ErrJobClient.
func (e *UnknownError) Is(target error) bool {
	return target == ErrJobClient
}

// TransportError indicates that a request could not be completed at all:
// connection failure, timeout, or an unreadable response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error returns the error string associated with the error
func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP %s %s failed: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request failed because of a timeout.
func (e *TransportError) Timeout() bool {
	var t interface{ Timeout() bool }
	if errors.As(e.Err, &t) {
		return t.Timeout()
	}
	return false
}
