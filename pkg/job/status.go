// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package job

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cookapi/jobclient/pkg/types"
)

// Status is the coarse lifecycle status of a job as reported by the
// scheduler.
type Status string

// The statuses a job goes through. StatusCompleted is terminal, whether the
// job succeeded or failed; see State for the outcome.
const (
	StatusWaiting   Status = "waiting"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// State is the outcome-aware state of a job.
type State string

// The job states reported by the scheduler.
const (
	StateWaiting State = "waiting"
	StateRunning State = "running"
	StateSuccess State = "success"
	StateFailed  State = "failed"
)

// ListState is a filter accepted by the list endpoint. It mixes states and
// statuses, as the scheduler does.
type ListState string

// Supported list filters.
const (
	ListStateSuccess   ListState = "success"
	ListStateRunning   ListState = "running"
	ListStateFailed    ListState = "failed"
	ListStateCompleted ListState = "completed"
	ListStateWaiting   ListState = "waiting"
)

// ListStates contains every filter accepted by the list endpoint.
var ListStates = []ListState{ListStateSuccess, ListStateRunning, ListStateFailed, ListStateCompleted, ListStateWaiting}

// ParseListState converts a string into a ListState.
func ParseListState(s string) (ListState, error) {
	for _, st := range ListStates {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid job state '%s', must be one of %v", s, ListStates)
}

// Info is the job information returned by the query and list endpoints.
// Only the common fields are typed; Raw keeps the object exactly as the
// scheduler sent it, and is what MarshalJSON emits when set.
type Info struct {
	UUID             types.JobID       `json:"uuid"`
	Name             string            `json:"name,omitempty"`
	User             string            `json:"user,omitempty"`
	Command          string            `json:"command,omitempty"`
	Status           Status            `json:"status"`
	State            State             `json:"state,omitempty"`
	Priority         int               `json:"priority,omitempty"`
	MaxRetries       int               `json:"max_retries,omitempty"`
	RetriesRemaining int               `json:"retries_remaining,omitempty"`
	MaxRuntime       int64             `json:"max_runtime,omitempty"`
	CPUs             float64           `json:"cpus,omitempty"`
	Mem              float64           `json:"mem,omitempty"`
	GPUs             int               `json:"gpus,omitempty"`
	Env              map[string]string `json:"env,omitempty"`
	Labels           map[string]string `json:"labels,omitempty"`
	SubmitTime       int64             `json:"submit_time,omitempty"`
	FrameworkID      string            `json:"framework_id,omitempty"`
	Instances        []Instance        `json:"instances,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// infoFields has the fields of Info but none of its methods.
type infoFields Info

// UnmarshalJSON decodes the typed fields and keeps a copy of data in Raw.
func (i *Info) UnmarshalJSON(data []byte) error {
	var f infoFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*i = Info(f)
	i.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns Raw if set, the typed fields otherwise.
func (i Info) MarshalJSON() ([]byte, error) {
	if len(i.Raw) > 0 {
		return i.Raw, nil
	}
	return json.Marshal(infoFields(i))
}

// Finished reports whether the scheduler will not run the job anymore.
func (i *Info) Finished() bool {
	return i.Status == StatusCompleted
}

// Succeeded reports whether the job finished successfully.
func (i *Info) Succeeded() bool {
	return i.Finished() && i.State == StateSuccess
}

// Instance is one attempt at running a job.
type Instance struct {
	TaskID       string `json:"task_id"`
	Status       string `json:"status"`
	Hostname     string `json:"hostname,omitempty"`
	SlaveID      string `json:"slave_id,omitempty"`
	ExecutorID   string `json:"executor_id,omitempty"`
	StartTime    int64  `json:"start_time,omitempty"`
	EndTime      int64  `json:"end_time,omitempty"`
	ReasonCode   int    `json:"reason_code,omitempty"`
	ReasonString string `json:"reason_string,omitempty"`
	ExitCode     *int   `json:"exit_code,omitempty"`
	OutputURL    string `json:"output_url,omitempty"`
	Preempted    bool   `json:"preempted,omitempty"`
}
