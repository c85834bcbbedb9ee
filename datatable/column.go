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

package datatable

// Column is an opaque handle for one grid column. Handles compare by pointer
// identity and stay valid for the lifetime of the grid that issued them.
type Column struct {
	id string
}

// NewColumn creates a handle with the given identifier.
func NewColumn(id string) *Column {
	return &Column{id: id}
}

// ID returns the identifier the column was created with.
func (c *Column) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}

// String implements fmt.Stringer.
func (c *Column) String() string {
	return c.ID()
}

// IndexOf returns the position of col in cols, or -1.
func IndexOf(cols []*Column, col *Column) int {
	for i, c := range cols {
		if c == col {
			return i
		}
	}
	return -1
}
