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

// Package script compiles user supplied Go snippets into cell name
// formatters using the yaegi interpreter.
package script

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ErrNoNameFunc is returned when a snippet does not define a usable Name.
var ErrNoNameFunc = errors.New("snippet must define func Name(header, text string) string")

// Example is a snippet that reads the header before the value.
const Example = `package format

import "strings"

func Name(header, text string) string {
	if strings.TrimSpace(text) == "" {
		return header + ": blank"
	}
	return header + ": " + text
}
`

// Formatter is a NameFormatter backed by interpreted Go code.
type Formatter struct {
	mu     sync.Mutex
	fn     func(header, text string) string
	logger *slog.Logger
}

// Compile interprets src. The snippet is in package format and defines
// Name(header, text string) string; the package clause may be omitted.
// Only the standard library can be imported.
func Compile(src string, logger *slog.Logger) (*Formatter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !strings.HasPrefix(strings.TrimSpace(src), "package ") {
		src = "package format\n\n" + src
	}

	i := interp.New(interp.Options{
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib: %w", err)
	}
	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("failed to compile name script: %w", err)
	}

	v, err := i.Eval("format.Name")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoNameFunc, err)
	}
	fn, ok := v.Interface().(func(string, string) string)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNoNameFunc, v.Type())
	}
	return &Formatter{fn: fn, logger: logger.With("component", "script")}, nil
}

// CompileFile reads and compiles a snippet from path.
func CompileFile(path string, logger *slog.Logger) (*Formatter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read name script: %w", err)
	}
	return Compile(string(src), logger)
}

// FormatName implements a11y.NameFormatter. A panicking script yields the
// plain text.
func (f *Formatter) FormatName(header, text string) (name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("name script panicked", "header", header, "panic", r)
			name = text
		}
	}()
	return f.fn(header, text)
}
