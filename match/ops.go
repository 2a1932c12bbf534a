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
	"regexp"

	"github.com/EngFlow/vcsmatch/internal/collections"
)

// matchOp is the compiled predicate over a single repository-relative path.
// Matchers compose a small tree of ops at construction time and evaluate it
// recursively; the tree is immutable afterwards and safe for concurrent use.
type matchOp interface {
	matches(f string) bool
}

// alwaysOp matches every path.
type alwaysOp struct{}

func (alwaysOp) matches(string) bool { return true }

// regexpOp matches paths against one compiled regexp program.
type regexpOp struct {
	re *regexp.Regexp
}

func (op *regexpOp) matches(f string) bool { return op.re.MatchString(f) }

// filesOp matches by membership in an explicit path set.
type filesOp collections.Set[string]

func (op filesOp) matches(f string) bool {
	return collections.Set[string](op).Contains(f)
}

// andOp matches when every child op matches.
type andOp []matchOp

func (op andOp) matches(f string) bool {
	for _, sub := range op {
		if !sub.matches(f) {
			return false
		}
	}
	return true
}

// orOp matches when any child op matches.
type orOp []matchOp

func (op orOp) matches(f string) bool {
	for _, sub := range op {
		if sub.matches(f) {
			return true
		}
	}
	return false
}

// notOp inverts its child op.
type notOp struct {
	x matchOp
}

func (op notOp) matches(f string) bool { return !op.x.matches(f) }
