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

// Package sharing loads Delta Sharing tables into Arrow.
package sharing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/goccy/go-json"
	delta_sharing "github.com/magpierre/go_delta_sharing_client"
)

// DefaultTimeout bounds every call to the sharing server.
const DefaultTimeout = 60 * time.Second

var (
	// ErrInvalidTableRef is returned for names that are not share.schema.table.
	ErrInvalidTableRef = errors.New("invalid table reference")

	// ErrNoFiles is returned when a table has no data files.
	ErrNoFiles = errors.New("table has no data files")

	// ErrSchemaMismatch is returned when the files of a table disagree on schema.
	ErrSchemaMismatch = errors.New("data files have different schemas")
)

// TableRef names a shared table.
type TableRef struct {
	Share  string
	Schema string
	Name   string
}

// ParseTableRef parses "share.schema.table".
func ParseTableRef(s string) (TableRef, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return TableRef{}, fmt.Errorf("%w: %q", ErrInvalidTableRef, s)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return TableRef{}, fmt.Errorf("%w: %q", ErrInvalidTableRef, s)
		}
	}
	return TableRef{Share: parts[0], Schema: parts[1], Name: parts[2]}, nil
}

// String returns the dotted form of the reference.
func (r TableRef) String() string {
	return r.Share + "." + r.Schema + "." + r.Name
}

func (r TableRef) table() delta_sharing.Table {
	return delta_sharing.Table{Share: r.Share, Schema: r.Schema, Name: r.Name}
}

// IsProfile reports whether content looks like a Delta Sharing profile.
func IsProfile(content []byte) bool {
	var profile map[string]interface{}
	if err := json.Unmarshal(content, &profile); err != nil {
		return false
	}

	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasBearerToken := profile["bearerToken"]
	return hasVersion && hasEndpoint && hasBearerToken
}

// WithTimeout derives a context for one server call. A non-positive
// timeout uses DefaultTimeout.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(parent, timeout)
}

// Client reads tables from one sharing profile.
type Client struct {
	client  delta_sharing.SharingClientV2
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a client from the JSON text of a profile.
func NewClient(profile string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	client, err := delta_sharing.NewSharingClientV2FromString(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create Delta Sharing client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{client: client, timeout: timeout, logger: logger.With("component", "sharing")}, nil
}

// ListTables returns every table visible to the profile.
func (c *Client) ListTables(ctx context.Context) ([]TableRef, error) {
	ctx, cancel := WithTimeout(ctx, c.timeout)
	defer cancel()

	tables, _, err := c.client.ListAllTables_V2(ctx, 0, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list all tables: %w", err)
	}
	refs := make([]TableRef, 0, len(tables))
	for _, t := range tables {
		refs = append(refs, TableRef{Share: t.Share, Schema: t.Schema, Name: t.Name})
	}
	c.logger.Debug("tables listed", "count", len(refs))
	return refs, nil
}

// Load reads every data file of a table and combines them into one Arrow
// table. The caller must release it.
func (c *Client) Load(ctx context.Context, ref TableRef) (arrow.Table, error) {
	ctx, cancel := WithTimeout(ctx, c.timeout)
	defer cancel()

	table := ref.table()
	resp, err := c.client.ListFilesInTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list files of %s: %w", ref, err)
	}
	if len(resp.AddFiles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, ref)
	}

	var (
		schema  *arrow.Schema
		records []arrow.Record
	)
	defer func() {
		for _, rec := range records {
			rec.Release()
		}
	}()

	for _, f := range resp.AddFiles {
		part, err := delta_sharing.LoadArrowTable(ctx, c.client, table, f.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to load file %s of %s: %w", f.Id, ref, err)
		}
		if schema == nil {
			schema = part.Schema()
		} else if !schema.Equal(part.Schema()) {
			part.Release()
			return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, ref)
		}

		tr := array.NewTableReader(part, 0)
		for tr.Next() {
			rec := tr.Record()
			rec.Retain()
			records = append(records, rec)
		}
		tr.Release()
		part.Release()
		c.logger.Debug("file loaded", "table", ref.String(), "file", f.Id)
	}

	return array.NewTableFromRecords(schema, records), nil
}
