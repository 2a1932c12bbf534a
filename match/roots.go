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
	"strings"

	"github.com/EngFlow/vcsmatch/internal/collections"
	"github.com/EngFlow/vcsmatch/pathutil"
)

// patternRootsAndDirs returns the roots and directories corresponding exactly
// to each pattern: roots are matched recursively, dirs non-recursively. Parent
// directories that a walker must pass through are not included; rootsAndDirs
// adds those.
func patternRootsAndDirs(kindpats []Pattern) (roots, dirs []string) {
	for _, kp := range kindpats {
		switch kp.Kind {
		case KindGlob:
			// The root is the longest prefix with no glob metacharacters.
			var root []string
			for _, seg := range strings.Split(kp.Body, "/") {
				if strings.ContainsAny(seg, "[{*?") {
					break
				}
				root = append(root, seg)
			}
			roots = append(roots, orDot(strings.Join(root, "/")))
		case KindRelPath, KindPath:
			roots = append(roots, orDot(kp.Body))
		case KindRootFilesIn:
			dirs = append(dirs, orDot(kp.Body))
		default: // relglob, re, relre: the whole tree
			roots = append(roots, ".")
		}
	}
	return roots, dirs
}

func orDot(p string) string {
	if p == "" {
		return "."
	}
	return p
}

// patternRoots returns the directories to match recursively for the given
// patterns.
func patternRoots(kindpats []Pattern) []string {
	roots, _ := patternRootsAndDirs(kindpats)
	return roots
}

// rootsAndDirs returns recursive roots and exact directories for the given
// patterns. The dirs also cover every ancestor of a root or an exact dir,
// since a walker must be able to descend to them, and always include the
// repository root ".".
func rootsAndDirs(kindpats []Pattern) (roots, dirs []string) {
	roots, dirs = patternRootsAndDirs(kindpats)
	dirs = append(dirs, slices.Collect(pathutil.Dirs(dirs))...)
	dirs = append(dirs, slices.Collect(pathutil.Dirs(roots))...)
	dirs = append(dirs, ".")
	return roots, dirs
}

// explicitFiles returns the potential explicit filenames from the patterns:
// the roots of every pattern kind that can name a file. rootfilesin names only
// directories and is left out.
func explicitFiles(kindpats []Pattern) []string {
	filable := collections.FilterSlice(kindpats, func(kp Pattern) bool {
		return kp.Kind != KindRootFilesIn
	})
	return patternRoots(filable)
}

// anyPats reports whether the patterns include a glob, regex or set-like
// pattern, as opposed to plain paths only.
func anyPats(kindpats []Pattern) bool {
	for _, kp := range kindpats {
		switch kp.Kind {
		case KindGlob, KindRe, KindRelGlob, KindRelRe, KindSet, KindRootFilesIn:
			return true
		}
	}
	return false
}
