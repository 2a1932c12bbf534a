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
	"slices"

	"github.com/bazelbuild/bazel-gazelle/pathtools"

	"github.com/EngFlow/vcsmatch/internal/collections"
)

// subdirMatcher adapts a matcher to work on a subdirectory only. Queries are
// remapped by prepending the subdirectory, results by stripping it.
type subdirMatcher struct {
	path    string
	parent  Matcher
	files   []string
	fileset collections.Set[string]
	always  bool
	bad     BadFunc
}

// Subdir adapts matcher m to operate on paths relative to the subdirectory
// path. Files are restricted to those under path, with the prefix stripped. If
// m selects path itself by prefix, the subdir matcher matches everything.
func Subdir(m Matcher, path string) Matcher {
	s := &subdirMatcher{
		path:   path,
		parent: m,
		always: m.Always(),
	}
	for _, f := range m.Files() {
		if f != path && pathtools.HasPrefix(f, path) {
			s.files = append(s.files, pathtools.TrimPrefix(f, path))
		}
	}
	if m.Prefix() {
		s.always = slices.Contains(m.Files(), path)
	}
	s.fileset = collections.ToSet(s.files)
	return s
}

func (s *subdirMatcher) join(f string) string { return s.path + "/" + f }

func (s *subdirMatcher) Matches(f string) bool { return s.parent.Matches(s.join(f)) }

func (s *subdirMatcher) VisitDir(dir string) Visit {
	if dir == "." {
		dir = s.path
	} else {
		dir = s.join(dir)
	}
	return s.parent.VisitDir(dir)
}

func (s *subdirMatcher) Files() []string { return s.files }

func (s *subdirMatcher) Exact(f string) bool { return s.fileset.Contains(f) }

func (s *subdirMatcher) IsExact() bool { return s.parent.IsExact() }

func (s *subdirMatcher) Always() bool { return s.always }

func (s *subdirMatcher) AnyPats() bool { return s.parent.AnyPats() }

func (s *subdirMatcher) Prefix() bool {
	return !s.Always() && !s.IsExact() && !s.AnyPats()
}

func (s *subdirMatcher) Abs(f string) string { return s.parent.Abs(s.join(f)) }

func (s *subdirMatcher) Rel(f string) string { return s.parent.Rel(s.join(f)) }

func (s *subdirMatcher) UIPath(f string) string { return s.parent.UIPath(s.join(f)) }

func (s *subdirMatcher) Bad(f, msg string) {
	if s.bad != nil {
		s.bad(f, msg)
		return
	}
	s.parent.Bad(s.join(f), msg)
}

func (s *subdirMatcher) ExplicitDir(dir string) { s.parent.ExplicitDir(s.join(dir)) }

func (s *subdirMatcher) TraverseDir(dir string) { s.parent.TraverseDir(s.join(dir)) }

func (s *subdirMatcher) WithBad(fn BadFunc) Matcher {
	clone := *s
	clone.bad = fn
	return &clone
}

func (s *subdirMatcher) Regexps() (include, exclude, patterns string) {
	return s.parent.Regexps()
}
