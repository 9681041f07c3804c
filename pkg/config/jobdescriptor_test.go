// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package config

import (
	"errors"
	"testing"

	"github.com/cookapi/jobclient/pkg/cerrors"
	"github.com/cookapi/jobclient/pkg/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("jobs.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("/etc/cook/jobs.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("jobs.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("-"))
}

func TestParseJobDescriptionsShapes(t *testing.T) {
	testCases := map[string]struct {
		data   string
		format Format
		names  []string
	}{
		"single JSON job": {
			data:   `{"name": "a", "command": "ls", "cpus": 1.5}`,
			format: FormatJSON,
			names:  []string{"a"},
		},
		"JSON list": {
			data:   `[{"name": "a"}, {"name": "b"}]`,
			format: FormatJSON,
			names:  []string{"a", "b"},
		},
		"JSON jobs object": {
			data:   `{"jobs": [{"name": "a"}, {"name": "b"}, {"name": "c"}]}`,
			format: FormatJSON,
			names:  []string{"a", "b", "c"},
		},
		"YAML list": {
			data:   "- name: a\n  command: ls\n- name: b\n  command: pwd\n",
			format: FormatYAML,
			names:  []string{"a", "b"},
		},
		"YAML jobs object": {
			data:   "jobs:\n  - name: a\n",
			format: FormatYAML,
			names:  []string{"a"},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			jobs, err := ParseJobDescriptions([]byte(tc.data), tc.format)
			require.NoError(t, err)
			require.Len(t, jobs, len(tc.names))
			for i, n := range tc.names {
				assert.Equal(t, n, *jobs[i].Name)
			}
		})
	}
}

func TestParseJobDescriptionsYAMLTypes(t *testing.T) {
	data := `
name: sleeper
command: sleep 30
priority: 50
max_retries: 3
max_runtime: 86400000
cpus: 2
mem: 128.5
env:
  FOO: bar
labels:
  team: batch
constraints:
  - [instance_type, EQUALS, beefybox]
container:
  type: docker
  docker:
    image: alpine:3
    force-pull-image: true
  volumes:
    - host-path: /tmp
      mode: ro
`
	jobs, err := ParseJobDescriptions([]byte(data), FormatYAML)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	d := jobs[0]
	assert.Equal(t, 50, *d.Priority)
	assert.Equal(t, 3, *d.MaxRetries)
	assert.Equal(t, int64(86400000), *d.MaxRuntime)
	assert.Equal(t, 2.0, *d.CPUs)
	assert.Equal(t, 128.5, *d.Mem)
	assert.Equal(t, map[string]string{"FOO": "bar"}, d.Env)
	assert.Equal(t, []job.Constraint{{"instance_type", "EQUALS", "beefybox"}}, d.Constraints)
	require.NotNil(t, d.Container)
	assert.Equal(t, "alpine:3", d.Container.Docker.Image)
	assert.True(t, d.Container.Docker.ForcePullImage)
	assert.Equal(t, "/tmp", d.Container.Volumes[0].HostPath)
	require.NoError(t, job.Validate(jobs))
}

func TestParseJobDescriptionsErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		data   string
		format Format
	}{
		"invalid JSON":  {`{"name": `, FormatJSON},
		"invalid YAML":  {"name: [a", FormatYAML},
		"scalar":        {`"job"`, FormatJSON},
		"empty list":    {`[]`, FormatJSON},
		"jobs not list": {`{"jobs": "a"}`, FormatJSON},
		"list of lists": {`[[1]]`, FormatJSON},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJobDescriptions([]byte(tc.data), tc.format)
			require.Error(t, err)
		})
	}

	_, err := ParseJobDescriptions([]byte(`[{"name": "a"}, {"name": 1, "foo": "bar"}]`), FormatJSON)
	var verr *cerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(1, "name"))
	assert.True(t, verr.Has(1, "foo"))
	assert.False(t, verr.Has(0, "name"))
}
