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

// Package pathutil implements slash-separated path manipulation for
// repository-relative paths: canonicalization of user-supplied paths against a
// repository root and iteration over ancestor directories.
//
// All repository-relative paths handled here use '/' as the separator
// regardless of platform. The repository root itself is spelled ".".
package pathutil

import (
	"fmt"
	"iter"
	"path"
	"path/filepath"
	"strings"

	"github.com/bazelbuild/bazel-gazelle/pathtools"
)

// AuditError reports a path that resolves outside the repository root.
type AuditError struct {
	Path string
	Root string
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("%s not under root '%s'", e.Path, e.Root)
}

// CanonPath resolves name against cwd and returns its canonical slash-separated
// form relative to root. A relative cwd is itself resolved against root, so an
// empty cwd stands for the root. The root itself canonicalizes to the empty
// string. Returns an AuditError if the resolved path escapes root. The audit
// is lexical: '..' segments are collapsed before the containment check, so a
// name that climbs out of the repository is rejected even if it never exists
// on disk.
func CanonPath(root, cwd, name string) (string, error) {
	rootSlash := path.Clean(filepath.ToSlash(root))
	cwdSlash := filepath.ToSlash(cwd)
	if filepath.IsAbs(cwd) || path.IsAbs(cwdSlash) {
		cwdSlash = path.Clean(cwdSlash)
	} else {
		cwdSlash = path.Join(rootSlash, cwdSlash)
	}
	resolved := filepath.ToSlash(name)
	if filepath.IsAbs(name) || path.IsAbs(resolved) {
		resolved = path.Clean(resolved)
	} else {
		resolved = path.Join(cwdSlash, resolved)
	}
	if resolved == rootSlash {
		return "", nil
	}
	if pathtools.HasPrefix(resolved, rootSlash) {
		return pathtools.TrimPrefix(resolved, rootSlash), nil
	}
	return "", &AuditError{Path: name, Root: root}
}

// NormPath converts platform separators to '/' and collapses '.' and '..'
// segments. An empty path normalizes to ".".
func NormPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// Dirname returns the directory portion of a slash-separated path, without a
// trailing slash. A path with no slash has dirname "".
func Dirname(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}

// FindDirs yields every proper ancestor directory of a slash-separated path,
// from the immediate parent upwards. "a/b/c" yields "a/b" then "a". The root
// "." is not yielded.
func FindDirs(p string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			i := strings.LastIndexByte(p, '/')
			if i < 0 {
				return
			}
			p = p[:i]
			if !yield(p) {
				return
			}
		}
	}
}

// Dirs yields the proper ancestors of every path in the given slice. Ancestors
// shared by several paths are yielded once per occurrence; collect into a set
// when uniqueness matters.
func Dirs(paths []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range paths {
			for d := range FindDirs(p) {
				if !yield(d) {
					return
				}
			}
		}
	}
}
