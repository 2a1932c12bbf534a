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
	"fmt"
	"strings"
	"sync"
)

// subincludeMatcher evaluates one 'subinclude:' pattern file against the
// sub-tree rooted at the file's directory. The inner matcher is built on the
// first candidate path under the prefix; construction is memoized so that
// concurrent queries race at most on who runs the one-time build.
type subincludeMatcher struct {
	// prefix is the file's directory relative to the matcher root, with a
	// trailing slash, or empty for the root itself.
	prefix      string
	root        string
	patternFile string
	warn        WarnFunc
	build       *options

	once  sync.Once
	inner Matcher
}

func newSubincludeMatcher(prefix, root, patternFile string, o *options) *subincludeMatcher {
	return &subincludeMatcher{
		prefix:      prefix,
		root:        root,
		patternFile: patternFile,
		warn:        o.warn,
		build:       o.forSubinclude(patternFile),
	}
}

// matcher returns the lazily built inner matcher, or nil when the pattern
// file could not be turned into one. A failed build is reported through warn
// once and the subinclude then contributes no matches.
func (s *subincludeMatcher) matcher() Matcher {
	s.once.Do(func() {
		inner, err := newMatcher(s.root, s.root, nil, s.build)
		if err != nil {
			if s.warn != nil {
				s.warn(fmt.Sprintf("skipping unmatchable subinclude file '%s': %v", s.patternFile, err))
			}
			return
		}
		s.inner = inner
	})
	return s.inner
}

// subincludesOp matches a path when it lies under a subinclude's directory and
// the subinclude's own patterns match the path relative to that directory.
type subincludesOp []*subincludeMatcher

func (op subincludesOp) matches(f string) bool {
	for _, s := range op {
		if !strings.HasPrefix(f, s.prefix) {
			continue
		}
		if m := s.matcher(); m != nil && m.Matches(f[len(s.prefix):]) {
			return true
		}
	}
	return false
}
