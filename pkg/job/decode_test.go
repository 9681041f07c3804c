// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFromJSON(t *testing.T) {
	data := []byte(`{
		"uuid": "15dd97d6-a628-11e7-b27b-3cfdfea21a98",
		"name": "cookjob_20170925_1",
		"ports": 0,
		"gpus": 0,
		"constraints": [["instance_type", "EQUALS", "beefybox"]],
		"env": {"foo": "bar"},
		"disable_mea_culpa_retries": false,
		"mem": 128,
		"command": "echo \"hello world\"",
		"priority": 1,
		"max_retries": 1,
		"max_runtime": 3600,
		"cpus": 1.5,
		"uris": [{"value": "http://localhost/executor.tar.gz", "extract": true}],
		"container": {
			"type": "DOCKER",
			"docker": {"image": "centos:latest", "network": "HOST", "force-pull-image": true},
			"volumes": [{"container-path": "/data", "host-path": "/data", "mode": "ro"}]
		}
	}`)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	d, err := Decode(0, m)
	require.NoError(t, err)
	require.NoError(t, Validate([]*Description{d}))

	assert.Equal(t, testUUID, *d.UUID)
	assert.Equal(t, 0, *d.Ports)
	assert.Equal(t, 128.0, *d.Mem)
	assert.Equal(t, 1.5, *d.CPUs)
	assert.Equal(t, int64(3600), *d.MaxRuntime)
	assert.False(t, *d.DisableMeaCulpaRetries)
	assert.Equal(t, []Constraint{{"instance_type", "EQUALS", "beefybox"}}, d.Constraints)
	assert.Equal(t, "http://localhost/executor.tar.gz", d.URIs[0].Value)
	assert.True(t, d.URIs[0].Extract)
	require.NotNil(t, d.Container)
	assert.True(t, d.Container.Docker.ForcePullImage)
	assert.Equal(t, "/data", d.Container.Volumes[0].HostPath)
	assert.Nil(t, d.Executor)

	// encoding keeps the wire names
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"force-pull-image":true`)
	assert.Contains(t, string(out), `"disable_mea_culpa_retries":false`)
	assert.NotContains(t, string(out), `"executor"`)
}

func TestDecodeAcceptsIntegers(t *testing.T) {
	d, err := Decode(0, map[string]interface{}{"cpus": 1, "mem": 2, "max_retries": 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, *d.CPUs)
	assert.Equal(t, 2.0, *d.Mem)
	assert.Equal(t, 3, *d.MaxRetries)
}

func TestDecodeTypeErrors(t *testing.T) {
	testCases := map[string]interface{}{
		"name":                      1234,
		"uuid":                      1234,
		"cpus":                      "should break",
		"mem":                       "should break",
		"uris":                      "foo",
		"env":                       "foo",
		"constraints":               "foo",
		"disable_mea_culpa_retries": "foo",
		"container":                 "foo",
		"command":                   123,
	}
	for field, value := range testCases {
		t.Run(field, func(t *testing.T) {
			_, err := Decode(2, map[string]interface{}{field: value})
			requireFieldError(t, err, 2, field)
		})
	}
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := Decode(0, map[string]interface{}{"max_retries": 1, "colour": "blue"})
	requireFieldError(t, err, 0, "colour")
}

func TestDecodeAll(t *testing.T) {
	jobs, err := DecodeAll([]map[string]interface{}{
		{"command": "true"},
		{"command": "false", "max_retries": 2},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "false", *jobs[1].Command)

	_, err = DecodeAll([]map[string]interface{}{
		{"command": "true"},
		{"name": 1},
		{"cpus": "x", "mem": "y"},
	})
	requireFieldError(t, err, 1, "name")
	requireFieldError(t, err, 2, "cpus")
	requireFieldError(t, err, 2, "mem")
}

func TestDecodeRejectsFractionalIntegers(t *testing.T) {
	for field, value := range map[string]interface{}{
		"ports":       1.5,
		"gpus":        0.9,
		"max_runtime": 2.2,
		"priority":    float32(10.5),
	} {
		t.Run(field, func(t *testing.T) {
			_, err := Decode(0, map[string]interface{}{field: value})
			requireFieldError(t, err, 0, field)
		})
	}

	d, err := Decode(0, map[string]interface{}{"ports": 2.0, "max_runtime": 1000.0})
	require.NoError(t, err)
	assert.Equal(t, 2, *d.Ports)
	assert.Equal(t, int64(1000), *d.MaxRuntime)

	_, err = Decode(0, map[string]interface{}{
		"container": map[string]interface{}{
			"type": "docker",
			"docker": map[string]interface{}{
				"image":        "alpine",
				"port-mapping": []interface{}{map[string]interface{}{"host-port": 80.5, "container-port": 8080}},
			},
		},
	})
	requireFieldError(t, err, 0, "container")
}
