// Copyright (c) Facebook, Inc. and its affiliates.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package job

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// Copy returns a deep copy of the description.
func Copy(d *Description) *Description {
	if d == nil {
		return nil
	}
	c, err := copystructure.Copy(d)
	if err != nil {
		// Description only holds plain data, copying cannot fail
		panic(fmt.Sprintf("cannot copy job description: %v", err))
	}
	return c.(*Description)
}

// MergeDefaults sets every field that is absent in d to the value found in
// defaults. Values supplied in d are never overwritten. defaults is
// deep-copied, so d never shares memory with it.
func MergeDefaults(d, defaults *Description) {
	if d == nil || defaults == nil {
		return
	}
	src := reflect.ValueOf(Copy(defaults)).Elem()
	dst := reflect.ValueOf(d).Elem()
	for i := 0; i < dst.NumField(); i++ {
		if isAbsent(dst.Field(i)) && !isAbsent(src.Field(i)) {
			dst.Field(i).Set(src.Field(i))
		}
	}
}

func isAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return v.IsZero()
}
