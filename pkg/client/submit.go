// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/job"
	"github.com/cookapi/jobclient/pkg/types"
)

type submitRequest struct {
	Jobs []*job.Description `json:"jobs"`
}

// Submit sends a batch of jobs to the scheduler in a single request and
// returns their UUIDs, in input order.
//
// Jobs without a UUID get a time-based one, then the default job settings
// are merged in and the whole batch is validated. If any job is invalid a
// *cerrors.ValidationError is returned and nothing is sent. The passed
// descriptions are not modified.
func (c *Client) Submit(ctx context.Context, jobs []*job.Description) ([]types.JobID, error) {
	if len(jobs) == 0 {
		return nil, &cerrors.ArgumentError{Op: "submit", Reason: "one or more jobs required"}
	}
	prepared := make([]*job.Description, 0, len(jobs))
	for _, d := range jobs {
		if d == nil {
			// reported by job.Validate
			prepared = append(prepared, nil)
			continue
		}
		p := job.Copy(d)
		if p.UUID == nil {
			id, err := types.NewJobID()
			if err != nil {
				return nil, err
			}
			p.UUID = job.String(id.String())
		}
		job.MergeDefaults(p, c.config.DefaultJobSettings)
		prepared = append(prepared, p)
	}
	if err := job.Validate(prepared); err != nil {
		return nil, err
	}

	resp, err := c.transport.Post(ctx, SchedulerEndpoint, submitRequest{Jobs: prepared})
	if err != nil {
		return nil, fmt.Errorf("cannot submit jobs: %w", err)
	}
	if err := classify(resp, http.StatusCreated).err(); err != nil {
		return nil, fmt.Errorf("cannot submit jobs: %w", err)
	}

	ids := make([]types.JobID, 0, len(prepared))
	for _, p := range prepared {
		ids = append(ids, types.JobID(*p.UUID))
	}
	c.config.Metrics.JobsSubmitted(len(ids))
	c.log.Debugf("submitted %d job(s)", len(ids))
	return ids, nil
}
