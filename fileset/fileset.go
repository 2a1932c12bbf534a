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

// Package fileset provides a match.FilesetContext that resolves 'set:'
// expressions as doublestar patterns against a filesystem snapshot.
//
// The pattern language of full fileset queries (predicates over size, status
// and the like) belongs to the host; this package covers the common case of
// selecting tracked files by extended glob, including '**' crossing directory
// boundaries.
package fileset

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/EngFlow/vcsmatch/match"
)

// ErrUnknownSubrepo is returned by Subrepo for paths no sub-repository was
// registered at.
var ErrUnknownSubrepo = errors.New("unknown subrepository")

// Context resolves fileset expressions against an fs.FS. The zero value is
// not usable; construct with New.
type Context struct {
	fsys     fs.FS
	subrepos map[string]*Context
}

var _ match.FilesetContext = (*Context)(nil)

// New returns a Context resolving expressions against the given filesystem.
func New(fsys fs.FS) *Context {
	return &Context{fsys: fsys, subrepos: map[string]*Context{}}
}

// AddSubrepo registers a nested sub-repository at the given repository
// relative path. Returns the Context to allow chaining.
func (c *Context) AddSubrepo(path string, sub *Context) *Context {
	c.subrepos[path] = sub
	return c
}

// GetFileset resolves a doublestar expression to the matching regular files.
func (c *Context) GetFileset(expr string) ([]string, error) {
	if !doublestar.ValidatePattern(expr) {
		return nil, fmt.Errorf("invalid fileset expression %q: %w", expr, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.Glob(c.fsys, expr, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("resolving fileset expression %q: %w", expr, err)
	}
	return matches, nil
}

// SubrepoPaths lists the registered sub-repository paths in sorted order.
func (c *Context) SubrepoPaths() []string {
	paths := make([]string, 0, len(c.subrepos))
	for p := range c.subrepos {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Subrepo returns the context registered at the given path.
func (c *Context) Subrepo(path string) (match.FilesetContext, error) {
	sub, ok := c.subrepos[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubrepo, path)
	}
	return sub, nil
}
