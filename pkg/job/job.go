// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package job

// Executor selects the executor the scheduler uses to run a job.
type Executor string

// Supported executors.
const (
	ExecutorMesos Executor = "mesos"
	ExecutorCook  Executor = "cook"
)

// Executors lists the executors accepted by the scheduler.
var Executors = []Executor{ExecutorMesos, ExecutorCook}

// Description models one unit of work as sent to the scheduler. Optional
// fields are nil when absent, so that defaults can be told apart from
// caller-supplied values. Use Decode to build a Description out of loosely
// typed JSON or YAML data.
type Description struct {
	UUID                   *string           `json:"uuid,omitempty" mapstructure:"uuid"`
	Name                   *string           `json:"name,omitempty" mapstructure:"name"`
	Executor               *Executor         `json:"executor,omitempty" mapstructure:"executor"`
	Priority               *int              `json:"priority,omitempty" mapstructure:"priority"`
	MaxRetries             *int              `json:"max_retries,omitempty" mapstructure:"max_retries"`
	MaxRuntime             *int64            `json:"max_runtime,omitempty" mapstructure:"max_runtime"`
	ExpectedRuntime        *int64            `json:"expected_runtime,omitempty" mapstructure:"expected_runtime"`
	CPUs                   *float64          `json:"cpus,omitempty" mapstructure:"cpus"`
	Mem                    *float64          `json:"mem,omitempty" mapstructure:"mem"`
	GPUs                   *int              `json:"gpus,omitempty" mapstructure:"gpus"`
	Ports                  *int              `json:"ports,omitempty" mapstructure:"ports"`
	URIs                   []URI             `json:"uris,omitempty" mapstructure:"uris"`
	Env                    map[string]string `json:"env,omitempty" mapstructure:"env"`
	Labels                 map[string]string `json:"labels,omitempty" mapstructure:"labels"`
	Constraints            []Constraint      `json:"constraints,omitempty" mapstructure:"constraints"`
	DisableMeaCulpaRetries *bool             `json:"disable_mea_culpa_retries,omitempty" mapstructure:"disable_mea_culpa_retries"`
	Container              *Container        `json:"container,omitempty" mapstructure:"container"`
	Application            *Application      `json:"application,omitempty" mapstructure:"application"`
	Group                  *string           `json:"group,omitempty" mapstructure:"group"`
	Command                *string           `json:"command,omitempty" mapstructure:"command"`
}

// URI is a resource the executor fetches into the sandbox before running.
type URI struct {
	Value      string `json:"value" mapstructure:"value"`
	Executable bool   `json:"executable,omitempty" mapstructure:"executable"`
	Extract    bool   `json:"extract,omitempty" mapstructure:"extract"`
	Cache      bool   `json:"cache,omitempty" mapstructure:"cache"`
}

// Constraint is an [attribute, operator, pattern] tuple restricting the
// hosts a job may run on, e.g. ["instance_type", "EQUALS", "beefybox"].
type Constraint []string

// ConstraintEquals matches a host attribute exactly against the pattern.
const ConstraintEquals = "EQUALS"

// Container describes the container a job runs in.
type Container struct {
	Type    string   `json:"type" mapstructure:"type"`
	Docker  *Docker  `json:"docker,omitempty" mapstructure:"docker"`
	Volumes []Volume `json:"volumes,omitempty" mapstructure:"volumes"`
}

// Docker holds docker specific container settings.
type Docker struct {
	Image          string        `json:"image" mapstructure:"image"`
	Network        string        `json:"network,omitempty" mapstructure:"network"`
	ForcePullImage bool          `json:"force-pull-image,omitempty" mapstructure:"force-pull-image"`
	Parameters     []Parameter   `json:"parameters,omitempty" mapstructure:"parameters"`
	PortMapping    []PortMapping `json:"port-mapping,omitempty" mapstructure:"port-mapping"`
}

// Parameter is an extra key/value argument passed to docker run.
type Parameter struct {
	Key   string `json:"key" mapstructure:"key"`
	Value string `json:"value" mapstructure:"value"`
}

// PortMapping maps a host port onto a container port.
type PortMapping struct {
	HostPort      int    `json:"host-port" mapstructure:"host-port"`
	ContainerPort int    `json:"container-port" mapstructure:"container-port"`
	Protocol      string `json:"protocol,omitempty" mapstructure:"protocol"`
}

// Volume mounts a host path into the container.
type Volume struct {
	ContainerPath string `json:"container-path,omitempty" mapstructure:"container-path"`
	HostPath      string `json:"host-path" mapstructure:"host-path"`
	Mode          string `json:"mode,omitempty" mapstructure:"mode"`
}

// Application identifies the software that submitted the job.
type Application struct {
	Name    string `json:"name" mapstructure:"name"`
	Version string `json:"version" mapstructure:"version"`
}

// String returns a pointer to s. It eases building descriptions in code.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Int64 returns a pointer to n.
func Int64(n int64) *int64 { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// ExecutorPtr returns a pointer to e.
func ExecutorPtr(e Executor) *Executor { return &e }
