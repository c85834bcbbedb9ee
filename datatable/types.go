// Copyright 2025 Magnus Pierre
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

// Package datatable holds the host side of a grid: column handles, the data
// source contracts consumed by the accessibility layer and an in-memory grid
// model that implements them.
package datatable

import (
	"fmt"
	"strconv"
	"time"
)

// DataType is the declared type of a column. It decides how cell text is
// parsed on edit, how a column sorts and whether it renders as a check box.
type DataType int

const (
	TypeString DataType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDate      // calendar date, no time of day
	TypeTimestamp // date and time
	TypeBinary
	TypeDecimal
	TypeStruct // nested fields, shown as JSON text
	TypeList
)

var typeNames = [...]string{
	TypeString:    "String",
	TypeInt:       "Int",
	TypeFloat:     "Float",
	TypeBool:      "Bool",
	TypeDate:      "Date",
	TypeTimestamp: "Timestamp",
	TypeBinary:    "Binary",
	TypeDecimal:   "Decimal",
	TypeStruct:    "Struct",
	TypeList:      "List",
}

func (dt DataType) String() string {
	if dt >= 0 && int(dt) < len(typeNames) {
		return typeNames[dt]
	}
	return fmt.Sprintf("Unknown(%d)", dt)
}

// Scalar reports whether values of this type can be edited as plain text.
func (dt DataType) Scalar() bool {
	switch dt {
	case TypeBinary, TypeStruct, TypeList:
		return false
	default:
		return true
	}
}

// Value is one cell. Formatted is computed once when the value is built and
// is the text the grid hands to the accessibility layer; Raw keeps the
// source value for sorting, export and check box state.
type Value struct {
	Raw       interface{}
	Type      DataType
	IsNull    bool
	Formatted string
}

// NewValue wraps raw. A nil raw yields a null value of dataType.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return NewNullValue(dataType)
	}
	return Value{Raw: raw, Type: dataType, Formatted: formatValue(raw, dataType)}
}

// NewNullValue returns a null of dataType. Its text is empty.
func NewNullValue(dataType DataType) Value {
	return Value{Type: dataType, IsNull: true}
}

// NewTextValue creates a string value whose formatted text is the input.
func NewTextValue(text string) Value {
	return Value{Raw: text, Type: TypeString, Formatted: text}
}

// Truthy reports whether the value reads as a checked boolean.
func (v Value) Truthy() bool {
	if v.IsNull {
		return false
	}
	if b, ok := v.Raw.(bool); ok {
		return b
	}
	b, err := strconv.ParseBool(v.Formatted)
	return err == nil && b
}

func formatValue(raw interface{}, dataType DataType) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if dataType == TypeDate {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02 15:04:05.999999999")
	}
	return fmt.Sprintf("%v", raw)
}

// Metadata describes where a data source came from (path, delimiter and
// the like). Adapters fill it; the grid only passes it along.
type Metadata map[string]interface{}

type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	}
	return fmt.Sprintf("Unknown(%d)", sd)
}

// SortState is the active ordering of a Grid. A nil Column or SortNone
// means rows are shown in insertion order.
type SortState struct {
	Column    *Column
	Direction SortDirection
}

func (s SortState) IsSorted() bool {
	return s.Column != nil && s.Direction != SortNone
}
