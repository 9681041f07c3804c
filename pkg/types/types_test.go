// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewJobID(t *testing.T) {
	id, err := NewJobID()
	require.NoError(t, err)
	require.NoError(t, id.Validate())
	u, err := uuid.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, uuid.Version(1), u.Version())
}

func TestJobIDValidate(t *testing.T) {
	require.NoError(t, JobID("15dd97d6-a628-11e7-b27b-3cfdfea21a98").Validate())
	require.Error(t, JobID("").Validate())
	require.Error(t, JobID("foobar").Validate())
}

func TestJobIDs(t *testing.T) {
	require.Equal(t, []JobID{"a", "b"}, JobIDs("a", "b"))
	require.Empty(t, JobIDs())
}

func TestJobIDCanonical(t *testing.T) {
	const canonical = JobID("2413bf75-1587-4a69-82e2-63cc4b0d656d")
	for _, id := range []JobID{
		canonical,
		"2413BF75-1587-4A69-82E2-63CC4B0D656D",
		"urn:uuid:2413bf75-1587-4a69-82e2-63cc4b0d656d",
		"{2413BF75-1587-4a69-82e2-63cc4b0d656d}",
	} {
		require.Equal(t, canonical, id.Canonical(), string(id))
	}
	require.Equal(t, JobID("not-a-uuid"), JobID("not-a-uuid").Canonical())
}
