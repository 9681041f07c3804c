// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cookapi/jobclient/pkg/types"
)

// Delete kills one or more jobs. Batches are sent in order and the first
// failing batch aborts the operation.
func (c *Client) Delete(ctx context.Context, ids []types.JobID) error {
	paths, err := c.jobPaths("delete", ids)
	if err != nil {
		return err
	}
	resps, err := c.transport.Delete(ctx, paths...)
	if err != nil {
		return fmt.Errorf("cannot delete jobs: %w", err)
	}
	for _, resp := range resps {
		if err := classify(resp, http.StatusNoContent).err(); err != nil {
			return fmt.Errorf("cannot delete jobs: %w", err)
		}
	}
	return nil
}
