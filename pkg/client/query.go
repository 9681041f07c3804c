// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cookapi/jobclient/pkg/job"
	"github.com/cookapi/jobclient/pkg/transport"
	"github.com/cookapi/jobclient/pkg/types"
)

// Query returns the information of one or more jobs, in request order.
func (c *Client) Query(ctx context.Context, ids []types.JobID) ([]*job.Info, error) {
	paths, err := c.jobPaths("query", ids)
	if err != nil {
		return nil, err
	}
	resps, err := c.transport.Get(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("cannot query jobs: %w", err)
	}
	ret := make([]*job.Info, 0, len(ids))
	for _, resp := range resps {
		infos, err := decodeInfos(resp)
		if err != nil {
			return nil, fmt.Errorf("cannot query jobs: %w", err)
		}
		ret = append(ret, infos...)
	}
	return ret, nil
}

// decodeInfos decodes a 200 response carrying a list of jobs.
func decodeInfos(resp *transport.Response) ([]*job.Info, error) {
	if err := classify(resp, http.StatusOK).err(); err != nil {
		return nil, err
	}
	var infos []*job.Info
	if err := json.Unmarshal(resp.Body, &infos); err != nil {
		return nil, fmt.Errorf("cannot decode json response: %v", err)
	}
	return infos, nil
}
