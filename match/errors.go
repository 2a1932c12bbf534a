// Copyright 2026 EngFlow Inc. All rights reserved.
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

package match

import (
	"errors"
	"fmt"
)

// ErrNoFilesetContext is returned when a 'set:' pattern is supplied to a
// matcher built without a FilesetContext.
var ErrNoFilesetContext = errors.New("fileset expression with no context")

// PatternError reports an invalid pattern. Source names the pattern file the
// pattern came from and is empty for inline patterns.
type PatternError struct {
	Source string
	Kind   Kind
	Body   string
	Err    error
}

func (e *PatternError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("invalid pattern: %v", e.Err)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: invalid pattern (%s): %s", e.Source, e.Kind, e.Body)
	}
	return fmt.Sprintf("invalid pattern (%s): %s", e.Kind, e.Body)
}

func (e *PatternError) Unwrap() error { return e.Err }

// ListError reports an unreadable listfile. Unlike include files, which are
// skipped with a warning, an unreadable listfile aborts matcher construction.
type ListError struct {
	Path string
	Err  error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("unable to read file list (%s): %v", e.Path, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// IncludeCycleError reports an include chain that revisits a pattern file or
// exceeds the include nesting limit.
type IncludeCycleError struct {
	Path string
}

func (e *IncludeCycleError) Error() string {
	return fmt.Sprintf("circular or too deeply nested pattern file include: %s", e.Path)
}
