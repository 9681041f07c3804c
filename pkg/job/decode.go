// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package job

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/cookapi/jobclient/pkg/cerrors"

	"github.com/mitchellh/mapstructure"
)

// knownFields maps wire field names to their position in Description.
var knownFields = func() map[string]int {
	fields := make(map[string]int)
	t := reflect.TypeOf(Description{})
	for i := 0; i < t.NumField(); i++ {
		fields[t.Field(i).Tag.Get("mapstructure")] = i
	}
	return fields
}()

// Decode converts loosely typed data, as obtained by unmarshalling JSON or
// YAML, into a Description. Unknown fields and values of the wrong type are
// reported as a *cerrors.ValidationError for the job at position index.
// Numeric fields accept both integer and floating point values.
func Decode(index int, data map[string]interface{}) (*Description, error) {
	d, fieldErrs := decode(index, data)
	if err := cerrors.NewValidationError(fieldErrs...); err != nil {
		return nil, err
	}
	return d, nil
}

// DecodeAll decodes a batch of job descriptions. Errors of every job are
// collected into one *cerrors.ValidationError.
func DecodeAll(items []map[string]interface{}) ([]*Description, error) {
	var (
		jobs      = make([]*Description, 0, len(items))
		fieldErrs []*cerrors.FieldError
	)
	for idx, item := range items {
		d, errs := decode(idx, item)
		fieldErrs = append(fieldErrs, errs...)
		jobs = append(jobs, d)
	}
	if err := cerrors.NewValidationError(fieldErrs...); err != nil {
		return nil, err
	}
	return jobs, nil
}

func decode(index int, data map[string]interface{}) (*Description, []*cerrors.FieldError) {
	var (
		d         Description
		fieldErrs []*cerrors.FieldError
	)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &d,
		TagName:    "mapstructure",
		DecodeHook: rejectFractions,
	})
	if err != nil {
		// only fails if Result is not a pointer
		panic(fmt.Sprintf("cannot build job decoder: %v", err))
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	// decode one key at a time so that errors can be attributed to a field
	for _, key := range keys {
		if _, ok := knownFields[key]; !ok {
			fieldErrs = append(fieldErrs, &cerrors.FieldError{Index: index, Field: key, Reason: "unknown field"})
			continue
		}
		if err := decoder.Decode(map[string]interface{}{key: data[key]}); err != nil {
			fieldErrs = append(fieldErrs, &cerrors.FieldError{Index: index, Field: key, Reason: decodeReason(err)})
		}
	}
	return &d, fieldErrs
}

// rejectFractions fails the decoding of a floating point value with a
// fractional part into an integer field, which mapstructure would truncate.
func rejectFractions(from, to reflect.Type, data interface{}) (interface{}, error) {
	for to.Kind() == reflect.Ptr {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var f float64
	switch v := data.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("expected an integer, got %v", f)
	}
	return data, nil
}

func decodeReason(err error) string {
	var merr *mapstructure.Error
	if errors.As(err, &merr) {
		return strings.Join(merr.Errors, "; ")
	}
	return err.Error()
}
