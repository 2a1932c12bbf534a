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
	"path/filepath"
	"strings"

	"github.com/EngFlow/vcsmatch/internal/collections"
	"github.com/EngFlow/vcsmatch/pathutil"
)

// maxIncludeDepth bounds include file nesting. Cycles are detected earlier
// through the stack of canonicalized include paths; the depth limit is the
// backstop for non-cyclic but pathological chains.
const maxIncludeDepth = 10

// normalizeFunc converts raw 'kind:pat' strings into normalized Patterns.
type normalizeFunc func(patterns []string, def Kind) ([]Pattern, error)

type normEnv struct {
	root    string
	cwd     string
	auditor Auditor
	reader  FileReader
	warn    WarnFunc
}

// makeNormalize builds the normalizer for one matcher construction. In
// case-insensitive mode every non-regex body is rewritten to its dirstate
// case; when that changes a body that is tracked under its original spelling,
// both forms are emitted so that case-only renames keep matching.
func makeNormalize(root, cwd string, o *options) normalizeFunc {
	env := &normEnv{root: root, cwd: cwd, auditor: o.auditor, reader: o.reader, warn: o.warn}
	base := func(patterns []string, def Kind) ([]Pattern, error) {
		return env.normalize(patterns, def, 0, collections.Set[string]{})
	}
	if o.normCase == nil {
		return base
	}
	return func(patterns []string, def Kind) ([]Pattern, error) {
		kindpats, err := base(patterns, def)
		if err != nil {
			return nil, err
		}
		folded := make([]Pattern, 0, len(kindpats))
		for _, kp := range kindpats {
			if kp.Kind != KindRe && kp.Kind != KindRelRe { // regex can't be normalized
				f := o.normCase(kp.Body)
				if f != kp.Body && o.inDirstate != nil && o.inDirstate(kp.Body) {
					// Preserve the original to handle a case-only rename.
					folded = append(folded, kp)
				}
				kp.Body = f
			}
			folded = append(folded, kp)
		}
		return folded, nil
	}
}

// normalize converts 'kind:pat' strings from the patterns list into Patterns
// with canonical rooted bodies and with listfiles and includes expanded.
func (e *normEnv) normalize(patterns []string, def Kind, depth int, stack collections.Set[string]) ([]Pattern, error) {
	var kindpats []Pattern
	for _, raw := range patterns {
		kind, pat := SplitPattern(raw, def)
		switch kind {
		case KindGlob, KindRelPath:
			canon, err := e.auditor(e.root, e.cwd, pat)
			if err != nil {
				return nil, err
			}
			pat = canon

		case KindRelGlob, KindPath, KindRootFilesIn:
			pat = pathutil.NormPath(pat)

		case KindListfile, KindListfile0:
			data, err := e.reader.ReadFile(filepath.FromSlash(pat))
			if err != nil {
				return nil, &ListError{Path: pat, Err: err}
			}
			sep := "\n"
			if kind == KindListfile0 {
				sep = "\x00"
			}
			var files []string
			for _, f := range strings.Split(string(data), sep) {
				if f = strings.TrimSuffix(f, "\r"); f != "" {
					files = append(files, f)
				}
			}
			inner, err := e.normalize(files, def, depth, stack)
			if err != nil {
				return nil, err
			}
			for _, kp := range inner {
				kp.Source = pat
				kindpats = append(kindpats, kp)
			}
			continue

		case KindInclude:
			fullpath := filepath.FromSlash(pat)
			if !filepath.IsAbs(fullpath) {
				fullpath = filepath.Join(e.root, fullpath)
			}
			canonical := filepath.Clean(fullpath)
			if depth >= maxIncludeDepth || stack.Contains(canonical) {
				return nil, &IncludeCycleError{Path: pat}
			}
			lines, err := ReadPatternFile(e.reader, fullpath, e.warn)
			if err != nil {
				if e.warn != nil {
					e.warn(fmt.Sprintf("skipping unreadable pattern file '%s': %v", pat, err))
				}
				continue
			}
			stack.Add(canonical)
			inner, err := e.normalize(patternStrings(lines), def, depth+1, stack)
			delete(stack, canonical)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pat, err)
			}
			for _, kp := range inner {
				if kp.Source == "" {
					kp.Source = pat
				}
				kindpats = append(kindpats, kp)
			}
			continue

		default:
			// re and relre cannot be normalized without defeating the regex;
			// set and subinclude bodies are resolved later by their expanders.
		}
		kindpats = append(kindpats, Pattern{Kind: kind, Body: pat})
	}
	return kindpats, nil
}

func patternStrings(lines []PatternLine) []string {
	return collections.MapSlice(lines, func(l PatternLine) string { return l.Pattern })
}
