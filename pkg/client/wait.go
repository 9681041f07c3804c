// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"context"
	"errors"
	"time"

	"github.com/cookapi/jobclient/pkg/job"
	"github.com/cookapi/jobclient/pkg/types"
)

// ErrWaitDone is returned by Waiter.Next once every job has finished.
var ErrWaitDone = errors.New("all jobs finished")

// Waiter polls the scheduler until a set of jobs finishes, handing out each
// finished job once. A Waiter cannot be rewound and is not safe for
// concurrent use.
type Waiter struct {
	client    *Client
	remaining []types.JobID
	pending   []*job.Info
	polled    bool
}

// Wait returns a Waiter for the given jobs. UUIDs are compared in their
// canonical form and duplicated IDs are waited for once. Nothing is sent to the scheduler until Next is called.
//
// A job is finished when its status is "completed", which covers both
// successful and failed jobs. The Waiter has no deadline of its own: bound
// it with the context passed to Next.
func (c *Client) Wait(ids []types.JobID) *Waiter {
	seen := make(map[types.JobID]bool, len(ids))
	remaining := make([]types.JobID, 0, len(ids))
	for _, id := range ids {
		id = id.Canonical()
		if !seen[id] {
			seen[id] = true
			remaining = append(remaining, id)
		}
	}
	return &Waiter{client: c, remaining: remaining}
}

// Next blocks until another job finishes and returns it. It returns
// ErrWaitDone when no job is left, or the context error if ctx is done
// first. Query failures are logged and retried after the poll interval.
func (w *Waiter) Next(ctx context.Context) (*job.Info, error) {
	for {
		if len(w.pending) > 0 {
			info := w.pending[0]
			w.pending = w.pending[1:]
			return info, nil
		}
		if len(w.remaining) == 0 {
			return nil, ErrWaitDone
		}
		if w.polled {
			if err := sleep(ctx, w.client.config.PollInterval); err != nil {
				return nil, err
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.poll(ctx)
		w.polled = true
	}
}

func (w *Waiter) poll(ctx context.Context) {
	infos, err := w.client.Query(ctx, w.remaining)
	w.client.config.Metrics.WaitPoll(err != nil)
	if err != nil {
		if ctx.Err() == nil {
			w.client.log.WithField("remaining", len(w.remaining)).Errorf("failed to poll job status, retrying: %v", err)
		}
		return
	}
	for _, info := range infos {
		if info.Finished() && w.Forget(info.UUID) {
			w.pending = append(w.pending, info)
		}
	}
}

// Remaining returns the jobs that have not finished yet.
func (w *Waiter) Remaining() []types.JobID {
	return append([]types.JobID(nil), w.remaining...)
}

// Forget stops waiting for a job, e.g. because it will never complete. It
// returns false if the job was not being waited for.
func (w *Waiter) Forget(id types.JobID) bool {
	id = id.Canonical()
	for i, r := range w.remaining {
		if r == id {
			w.remaining = append(w.remaining[:i], w.remaining[i+1:]...)
			return true
		}
	}
	return false
}

// WaitAll waits for every job to finish and returns them in completion
// order. On error, the jobs that finished so far are returned too.
func (c *Client) WaitAll(ctx context.Context, ids []types.JobID) ([]*job.Info, error) {
	var (
		w    = c.Wait(ids)
		done []*job.Info
	)
	for {
		info, err := w.Next(ctx)
		if errors.Is(err, ErrWaitDone) {
			return done, nil
		}
		if err != nil {
			return done, err
		}
		done = append(done, info)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
