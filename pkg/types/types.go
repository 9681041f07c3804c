// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package types

import (
	"fmt"

	"github.com/google/uuid"
)

// JobID represents a unique job identifier. The scheduler uses UUIDs.
type JobID string

func (v JobID) String() string {
	return string(v)
}

// Validate returns an error if the job ID is not a well-formed UUID.
func (v JobID) Validate() error {
	if v == "" {
		return fmt.Errorf("job ID cannot be empty")
	}
	if _, err := uuid.Parse(string(v)); err != nil {
		return fmt.Errorf("invalid job ID '%s': %w", string(v), err)
	}
	return nil
}

// Canonical returns the canonical lowercase form of a UUID job ID, so that
// IDs written in upper case, as "urn:uuid:..." or in braces compare equal
// to the ones returned by the scheduler. Other IDs are returned unchanged.
func (v JobID) Canonical() JobID {
	u, err := uuid.Parse(string(v))
	if err != nil {
		return v
	}
	return JobID(u.String())
}

// NewJobID returns a new time-based (version 1) job identifier.
func NewJobID() (JobID, error) {
	u, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("cannot generate job UUID: %w", err)
	}
	return JobID(u.String()), nil
}

// JobIDs converts a list of strings into a list of JobID.
func JobIDs(ids ...string) []JobID {
	ret := make([]JobID, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, JobID(id))
	}
	return ret
}
