// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package batch splits lists of job identifiers into bounded-size chunks so
// that each chunk fits in one URL-encoded request.
package batch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cookapi/jobclient/pkg/types"
)

// JobParam is the query parameter used to target a job.
const JobParam = "job"

// Partition splits ids into ordered chunks of at most size elements. The last
// chunk may be shorter. An empty input yields no chunks. size must be
// positive.
func Partition(ids []types.JobID, size int) [][]types.JobID {
	if size <= 0 {
		panic(fmt.Sprintf("batch size must be positive, got %d", size))
	}
	chunks := make([][]types.JobID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end:end])
	}
	return chunks
}

// QueryParams renders a chunk as a list of "job=<id>" query parameters.
func QueryParams(chunk []types.JobID) []string {
	params := make([]string, 0, len(chunk))
	for _, id := range chunk {
		params = append(params, JobParam+"="+url.QueryEscape(id.String()))
	}
	return params
}

// Paths builds one request path per chunk, in chunk order, for the given
// endpoint.
func Paths(endpoint string, ids []types.JobID, size int) []string {
	chunks := Partition(ids, size)
	paths := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		paths = append(paths, endpoint+"?"+strings.Join(QueryParams(chunk), "&"))
	}
	return paths
}
