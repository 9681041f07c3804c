// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package batch

import (
	"fmt"
	"testing"

	"github.com/cookapi/jobclient/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genIDs(n int) []types.JobID {
	ids := make([]types.JobID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, types.JobID(fmt.Sprintf("id-%d", i)))
	}
	return ids
}

func TestPartitionProperties(t *testing.T) {
	for length := 1; length <= 20; length++ {
		for size := 1; size <= 7; size++ {
			ids := genIDs(length)
			chunks := Partition(ids, size)
			require.Len(t, chunks, (length+size-1)/size, "length=%d size=%d", length, size)
			var joined []types.JobID
			for _, chunk := range chunks {
				require.NotEmpty(t, chunk)
				require.LessOrEqual(t, len(chunk), size)
				joined = append(joined, chunk...)
			}
			require.Equal(t, ids, joined)
		}
	}
}

func TestPartitionEmpty(t *testing.T) {
	require.Empty(t, Partition(nil, 4))
	require.Empty(t, Paths("/rawscheduler", nil, 4))
}

func TestPartitionInvalidSize(t *testing.T) {
	require.Panics(t, func() { Partition(genIDs(3), 0) })
}

func TestPartitionDoesNotAlias(t *testing.T) {
	ids := genIDs(5)
	chunks := Partition(ids, 2)
	chunks[0] = append(chunks[0], "extra")
	require.Equal(t, types.JobID("id-2"), ids[2])
}

func TestQueryParams(t *testing.T) {
	ids := types.JobIDs(
		"15dd97d6-a628-11e7-b27b-3cfdfea21a98", "15dd95b0-a628-11e7-b27b-3cfdfea21a98",
		"15dd9380-a628-11e7-b27b-3cfdfea21a98", "15dd915a-a628-11e7-b27b-3cfdfea21a98",
		"15dd8f2a-a628-11e7-b27b-3cfdfea21a98",
	)
	chunks := Partition(ids, 4)
	require.Len(t, chunks, 2)
	assert.Equal(t, []string{
		"job=15dd97d6-a628-11e7-b27b-3cfdfea21a98", "job=15dd95b0-a628-11e7-b27b-3cfdfea21a98",
		"job=15dd9380-a628-11e7-b27b-3cfdfea21a98", "job=15dd915a-a628-11e7-b27b-3cfdfea21a98",
	}, QueryParams(chunks[0]))
	assert.Equal(t, []string{"job=15dd8f2a-a628-11e7-b27b-3cfdfea21a98"}, QueryParams(chunks[1]))

	// ids are escaped
	assert.Equal(t, []string{"job=a%26b"}, QueryParams(types.JobIDs("a&b")))
}

func TestPaths(t *testing.T) {
	paths := Paths("/rawscheduler", types.JobIDs("a", "b", "c", "d", "e"), 4)
	assert.Equal(t, []string{
		"/rawscheduler?job=a&job=b&job=c&job=d",
		"/rawscheduler?job=e",
	}, paths)
}
