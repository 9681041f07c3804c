// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package job

import (
	"fmt"
	"strings"

	"github.com/cookapi/jobclient/pkg/cerrors"

	"github.com/google/uuid"
)

// Priority bounds, inclusive.
const (
	MinPriority = 0
	MaxPriority = 100
)

type reportFunc func(field, reason string)

// validators holds one check per field of a Description. Each check reports
// every violation it finds.
var validators = []func(d *Description, report reportFunc){
	func(d *Description, report reportFunc) {
		checkUUID(d.UUID, "uuid", report)
	},
	func(d *Description, report reportFunc) {
		checkNonEmpty(d.Name, "name", report)
	},
	func(d *Description, report reportFunc) {
		if d.Executor == nil {
			return
		}
		for _, e := range Executors {
			if *d.Executor == e {
				return
			}
		}
		report("executor", fmt.Sprintf("'%s' is not one of %v", *d.Executor, Executors))
	},
	func(d *Description, report reportFunc) {
		if d.Priority != nil && (*d.Priority < MinPriority || *d.Priority > MaxPriority) {
			report("priority", fmt.Sprintf("%d is not between %d and %d", *d.Priority, MinPriority, MaxPriority))
		}
	},
	func(d *Description, report reportFunc) {
		if d.MaxRetries == nil {
			report("max_retries", "field is required")
			return
		}
		if *d.MaxRetries <= 0 {
			report("max_retries", fmt.Sprintf("must be positive, got %d", *d.MaxRetries))
		}
	},
	func(d *Description, report reportFunc) {
		checkPositiveInt64(d.MaxRuntime, "max_runtime", report)
	},
	func(d *Description, report reportFunc) {
		checkPositiveInt64(d.ExpectedRuntime, "expected_runtime", report)
	},
	func(d *Description, report reportFunc) {
		checkPositiveFloat(d.CPUs, "cpus", report)
	},
	func(d *Description, report reportFunc) {
		checkPositiveFloat(d.Mem, "mem", report)
	},
	func(d *Description, report reportFunc) {
		checkNonNegative(d.GPUs, "gpus", report)
	},
	func(d *Description, report reportFunc) {
		checkNonNegative(d.Ports, "ports", report)
	},
	func(d *Description, report reportFunc) {
		for i, u := range d.URIs {
			if u.Value == "" {
				report(fmt.Sprintf("uris[%d].value", i), "cannot be empty")
			}
		}
	},
	func(d *Description, report reportFunc) {
		checkKeys(d.Env, "env", report)
	},
	func(d *Description, report reportFunc) {
		checkKeys(d.Labels, "labels", report)
	},
	func(d *Description, report reportFunc) {
		for i, c := range d.Constraints {
			field := fmt.Sprintf("constraints[%d]", i)
			if len(c) != 3 {
				report(field, fmt.Sprintf("must be an [attribute, operator, pattern] tuple, got %d element(s)", len(c)))
				continue
			}
			if c[0] == "" {
				report(field, "attribute cannot be empty")
			}
			if c[1] == "" {
				report(field, "operator cannot be empty")
			}
		}
	},
	func(d *Description, report reportFunc) {
		if d.Container != nil {
			checkContainer(d.Container, report)
		}
	},
	func(d *Description, report reportFunc) {
		if d.Application == nil {
			return
		}
		if d.Application.Name == "" {
			report("application.name", "cannot be empty")
		}
		if d.Application.Version == "" {
			report("application.version", "cannot be empty")
		}
	},
	func(d *Description, report reportFunc) {
		checkUUID(d.Group, "group", report)
	},
	func(d *Description, report reportFunc) {
		checkNonEmpty(d.Command, "command", report)
	},
}

// Validate checks every job of a batch against the field constraints. The
// batch is accepted or rejected as a whole: if any job violates any
// constraint, a *cerrors.ValidationError listing every violation of every
// job is returned.
func Validate(jobs []*Description) error {
	var fieldErrs []*cerrors.FieldError
	for idx, d := range jobs {
		if d == nil {
			fieldErrs = append(fieldErrs, &cerrors.FieldError{Index: idx, Field: "*", Reason: "job description is nil"})
			continue
		}
		report := func(field, reason string) {
			fieldErrs = append(fieldErrs, &cerrors.FieldError{Index: idx, Field: field, Reason: reason})
		}
		for _, check := range validators {
			check(d, report)
		}
	}
	if err := cerrors.NewValidationError(fieldErrs...); err != nil {
		return err
	}
	return nil
}

func checkNonEmpty(s *string, field string, report reportFunc) {
	if s != nil && *s == "" {
		report(field, "cannot be empty")
	}
}

func checkUUID(s *string, field string, report reportFunc) {
	if s == nil {
		return
	}
	if *s == "" {
		report(field, "cannot be empty")
		return
	}
	if _, err := uuid.Parse(*s); err != nil {
		report(field, fmt.Sprintf("'%s' is not a valid UUID", *s))
	}
}

func checkPositiveInt64(n *int64, field string, report reportFunc) {
	if n != nil && *n <= 0 {
		report(field, fmt.Sprintf("must be positive, got %d", *n))
	}
}

func checkPositiveFloat(f *float64, field string, report reportFunc) {
	if f != nil && *f <= 0 {
		report(field, fmt.Sprintf("must be positive, got %v", *f))
	}
}

func checkNonNegative(n *int, field string, report reportFunc) {
	if n != nil && *n < 0 {
		report(field, fmt.Sprintf("cannot be negative, got %d", *n))
	}
}

func checkKeys(m map[string]string, field string, report reportFunc) {
	for k := range m {
		if k == "" {
			report(field, "keys cannot be empty")
			return
		}
	}
}

func checkContainer(c *Container, report reportFunc) {
	if strings.EqualFold(c.Type, "docker") {
		if c.Docker == nil || c.Docker.Image == "" {
			report("container.docker.image", "is required for docker containers")
		}
	}
	for i, v := range c.Volumes {
		if v.HostPath == "" {
			report(fmt.Sprintf("container.volumes[%d].host-path", i), "cannot be empty")
		}
	}
}
