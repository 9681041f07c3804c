// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cookapi/jobclient/pkg/job"

	"gopkg.in/yaml.v3"
)

// Format defines a type for the supported formats of configuration and job
// description documents.
type Format int

// List of supported formats
const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath guesses the format of a file from its extension. Anything
// that is not .yaml or .yml is considered JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ToJSON validates a document's well-formedness, and returns it as JSON if it
// was provided in a different format.
func ToJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, fmt.Errorf("failed to parse JSON document: invalid JSON")
		}
		return data, nil
	case FormatYAML:
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
		// then marshal the structure back to JSON
		jsonDoc, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize YAML document to JSON: %w", err)
		}
		return jsonDoc, nil
	}
	return nil, fmt.Errorf("unsupported document format %d", format)
}

// ParseJobDescriptions decodes a document holding either a single job, a
// list of jobs, or an object with a "jobs" list. Descriptions are decoded
// but not validated against the scheduler constraints, which is done at
// submission time once defaults are merged.
func ParseJobDescriptions(data []byte, format Format) ([]*job.Description, error) {
	jsonDoc, err := ToJSON(data, format)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(jsonDoc, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse job descriptions: %w", err)
	}
	var items []interface{}
	switch v := doc.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		if jobs, ok := v["jobs"]; ok && len(v) == 1 {
			list, ok := jobs.([]interface{})
			if !ok {
				return nil, fmt.Errorf("'jobs' must be a list, got %T", jobs)
			}
			items = list
		} else {
			items = []interface{}{v}
		}
	default:
		return nil, fmt.Errorf("expected a job or a list of jobs, got %T", doc)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no job description found")
	}
	maps := make([]map[string]interface{}, 0, len(items))
	for idx, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("job #%d: expected an object, got %T", idx, item)
		}
		maps = append(maps, m)
	}
	return job.DecodeAll(maps)
}
