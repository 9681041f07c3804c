// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/job"
)

// ListOptions filters the jobs returned by List. The zero value lists every
// job of the current user, in any state.
type ListOptions struct {
	// User who submitted the jobs. Defaults to the current user.
	User string
	// States to match. Defaults to every state.
	States []job.ListState
	// Start, if set, only considers jobs submitted after it.
	Start time.Time
	// Stop, if set, only considers jobs submitted before it.
	Stop time.Time
	// Limit, if positive, bounds the number of returned jobs.
	Limit int
}

// currentUser returns the name of the user running the process.
var currentUser = func() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// epochMillis converts a wall-clock time into milliseconds since the epoch.
func epochMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

func (o ListOptions) query() (string, error) {
	userName := o.User
	if userName == "" {
		userName = currentUser()
	}
	if userName == "" {
		return "", &cerrors.ArgumentError{Op: "list", Reason: "cannot determine the current user, please specify one"}
	}
	states := o.States
	if len(states) == 0 {
		states = job.ListStates
	}
	names := make([]string, 0, len(states))
	for _, st := range states {
		parsed, err := job.ParseListState(string(st))
		if err != nil {
			return "", &cerrors.ArgumentError{Op: "list", Reason: err.Error()}
		}
		names = append(names, string(parsed))
	}
	if o.Limit < 0 {
		return "", &cerrors.ArgumentError{Op: "list", Reason: fmt.Sprintf("limit cannot be negative, got %d", o.Limit)}
	}
	if !o.Start.IsZero() && !o.Stop.IsZero() && o.Stop.Before(o.Start) {
		return "", &cerrors.ArgumentError{Op: "list", Reason: "stop time is before start time"}
	}

	// keep the order the scheduler documents; multiple states are joined
	// with '+', which has to be escaped to survive query decoding
	params := []string{
		"user=" + url.QueryEscape(userName),
		"state=" + url.QueryEscape(strings.Join(names, "+")),
	}
	if !o.Start.IsZero() {
		params = append(params, "start_ms="+strconv.FormatInt(epochMillis(o.Start), 10))
	}
	if !o.Stop.IsZero() {
		params = append(params, "stop_ms="+strconv.FormatInt(epochMillis(o.Stop), 10))
	}
	if o.Limit > 0 {
		params = append(params, "limit="+strconv.Itoa(o.Limit))
	}
	return ListEndpoint + "?" + strings.Join(params, "&"), nil
}

// List returns the jobs matching the given filters.
func (c *Client) List(ctx context.Context, opts ListOptions) ([]*job.Info, error) {
	path, err := opts.query()
	if err != nil {
		return nil, err
	}
	resps, err := c.transport.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("cannot list jobs: %w", err)
	}
	if len(resps) != 1 {
		return nil, fmt.Errorf("cannot list jobs: expected one response, got %d", len(resps))
	}
	infos, err := decodeInfos(resps[0])
	if err != nil {
		return nil, fmt.Errorf("cannot list jobs: %w", err)
	}
	return infos, nil
}
