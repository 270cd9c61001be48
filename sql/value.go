// Copyright 2026 The Quill Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Kind is the tag of a Value's dynamic type. It mirrors the scalar types a
// Column may declare.
type Kind int

const (
	// KindAbsent marks the explicit "no value" marker. It is distinct from
	// any zero value of another Kind.
	KindAbsent Kind = iota
	KindInt
	KindFloat
	KindText
	KindBool
	KindTimestamp
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "ABSENT"
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindText:
		return "TEXT"
	case KindBool:
		return "BOOL"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindBlob:
		return "BLOB"
	default:
		return "UNKNOWN"
	}
}

// Value is a closed, tagged scalar. A Row's payload is a map of column name
// to Value; a Column's declared Kind constrains which Values are legal for
// it. There is no raw interface{} escape hatch: every cell of a Row is one
// of these seven shapes.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	s     string
	b     bool
	t     time.Time
	blob  []byte
}

// Absent is the explicit absent marker, standing in for SQL NULL without
// adopting three-valued logic (see spec's Open Questions).
func Absent() Value { return Value{kind: KindAbsent} }

func Int(v int64) Value     { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func Text(v string) Value   { return Value{kind: KindText, s: v} }
func Bool(v bool) Value     { return Value{kind: KindBool, b: v} }
func Timestamp(v time.Time) Value { return Value{kind: KindTimestamp, t: v} }
func Blob(v []byte) Value   { return Value{kind: KindBlob, blob: append([]byte(nil), v...)} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsAbsent() bool  { return v.kind == KindAbsent }

func (v Value) Int() int64           { return v.i }
func (v Value) Float() float64       { return v.f }
func (v Value) Text() string         { return v.s }
func (v Value) Bool() bool           { return v.b }
func (v Value) Time() time.Time      { return v.t }
func (v Value) BlobBytes() []byte    { return v.blob }

// Raw exposes the dynamic value as an interface{}, for call sites that hand
// off to generic formatting or hashing utilities. It is never used to carry
// the value through the engine itself.
func (v Value) Raw() interface{} {
	switch v.kind {
	case KindAbsent:
		return nil
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBool:
		return v.b
	case KindTimestamp:
		return v.t
	case KindBlob:
		return v.blob
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%v", v.f)
	case KindText:
		return v.s
	case KindBool:
		return fmt.Sprintf("%v", v.b)
	case KindTimestamp:
		return v.t.Format(time.RFC3339Nano)
	case KindBlob:
		return fmt.Sprintf("%x", v.blob)
	default:
		return "<unknown>"
	}
}

// asFloat64 coerces numeric values (and numeric-looking text) to a float64
// for cross-kind comparisons and arithmetic, via spf13/cast.
func (v Value) asFloat64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindText:
		f, err := cast.ToFloat64E(v.s)
		return f, err == nil
	case KindBool:
		f, err := cast.ToFloat64E(v.b)
		return f, err == nil
	default:
		return 0, false
	}
}

// Equal reports strict equality. Two Absent values are never equal to each
// other (spec's decided null-comparison semantics); numeric kinds coerce.
func (v Value) Equal(o Value) bool {
	if v.kind == KindAbsent || o.kind == KindAbsent {
		return false
	}
	if v.kind == o.kind {
		switch v.kind {
		case KindInt:
			return v.i == o.i
		case KindFloat:
			return v.f == o.f
		case KindText:
			return v.s == o.s
		case KindBool:
			return v.b == o.b
		case KindTimestamp:
			return v.t.Equal(o.t)
		case KindBlob:
			return string(v.blob) == string(o.blob)
		}
	}
	if vf, ok := v.asFloat64(); ok {
		if of, ok := o.asFloat64(); ok {
			return vf == of
		}
	}
	return false
}

// Compare orders two Values. ok is false when the two Values cannot be
// meaningfully ordered against one another (e.g. Text vs Blob). Absent
// sorts before every other Value, per the spec's decided NULL-ordering
// rule (Absent < any value in ascending order).
func (v Value) Compare(o Value) (cmp int, ok bool) {
	if v.kind == KindAbsent && o.kind == KindAbsent {
		return 0, true
	}
	if v.kind == KindAbsent {
		return -1, true
	}
	if o.kind == KindAbsent {
		return 1, true
	}
	if v.kind == o.kind {
		switch v.kind {
		case KindInt:
			return cmpInt64(v.i, o.i), true
		case KindFloat:
			return cmpFloat64(v.f, o.f), true
		case KindText:
			return cmpString(v.s, o.s), true
		case KindBool:
			return cmpBool(v.b, o.b), true
		case KindTimestamp:
			if v.t.Equal(o.t) {
				return 0, true
			}
			if v.t.Before(o.t) {
				return -1, true
			}
			return 1, true
		case KindBlob:
			return cmpString(string(v.blob), string(o.blob)), true
		}
	}
	if vf, ok1 := v.asFloat64(); ok1 {
		if of, ok2 := o.asFloat64(); ok2 {
			return cmpFloat64(vf, of), true
		}
	}
	return 0, false
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}
