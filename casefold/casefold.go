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

// Package casefold implements path case normalization for matchers built for
// working directories on case-insensitive file systems. Paths are compared
// under Unicode case folding, which is stable across languages, unlike simple
// lowercasing.
package casefold

import "golang.org/x/text/cases"

// Fold returns the case-folded form of a repository-relative path.
func Fold(p string) string {
	// cases.Caser is not safe for concurrent use, so a fresh one is created
	// per call.
	return cases.Fold().String(p)
}

// Normalizer maps user-supplied paths to the case recorded in a tracked path
// set, the way a dirstate does on a case-insensitive file system. A Normalizer
// is immutable after construction and safe for concurrent use.
type Normalizer struct {
	tracked map[string]bool
	byFold  map[string]string
}

// NewNormalizer builds a Normalizer over the given tracked paths. When two
// tracked paths fold to the same key the first one wins.
func NewNormalizer(paths []string) *Normalizer {
	n := &Normalizer{
		tracked: make(map[string]bool, len(paths)),
		byFold:  make(map[string]string, len(paths)),
	}
	for _, p := range paths {
		n.tracked[p] = true
		key := Fold(p)
		if _, ok := n.byFold[key]; !ok {
			n.byFold[key] = p
		}
	}
	return n
}

// Normalize returns the tracked spelling of p when a tracked path matches it
// under case folding, and p unchanged otherwise.
func (n *Normalizer) Normalize(p string) string {
	if stored, ok := n.byFold[Fold(p)]; ok {
		return stored
	}
	return p
}

// Contains reports whether p is tracked with exactly this spelling.
func (n *Normalizer) Contains(p string) bool {
	return n.tracked[p]
}
