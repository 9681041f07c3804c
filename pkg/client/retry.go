// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cookapi/jobclient/pkg/batch"
	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/types"
)

// Retry sets the number of retries of each job. Every job is retried with
// its own request; the first failure stops the operation.
func (c *Client) Retry(ctx context.Context, ids []types.JobID, retries int) error {
	if len(ids) == 0 {
		return &cerrors.ArgumentError{Op: "retry", Reason: "one or more jobs required"}
	}
	if retries < 0 {
		return &cerrors.ArgumentError{Op: "retry", Reason: fmt.Sprintf("retries cannot be negative, got %d", retries)}
	}
	for _, id := range ids {
		params := url.Values{}
		params.Set(batch.JobParam, id.String())
		params.Set("retries", strconv.Itoa(retries))
		resp, err := c.transport.Post(ctx, RetryEndpoint+"?"+params.Encode(), struct{}{})
		if err != nil {
			return fmt.Errorf("cannot retry job %s: %w", id, err)
		}
		if err := classify(resp).err(); err != nil {
			return fmt.Errorf("cannot retry job %s: %w", id, err)
		}
	}
	return nil
}
