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

// Package a11y exposes a host-owned grid as an accessible table.
//
// A Tree materializes one Row per host row on demand. Each Row caches one
// Cell per column handle, so repeated lookups of the same coordinate return
// the same object for as long as the row lives. The TableAdapter answers
// table and selection queries by reading the live data source and the rows
// the tree has materialized; it keeps no state of its own.
//
// The host pushes changes: Tree implements datatable.GridListener and routes
// each notification to the affected rows, which revalidate their cached
// cells and emit name and state change events to registered observers.
//
// Everything in this package runs on the host's UI goroutine. None of the
// types are safe for concurrent use.
package a11y
