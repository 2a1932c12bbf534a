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

import "strings"

// Kind identifies how a pattern body is interpreted.
type Kind string

const (
	// KindGlob is an extended glob, anchored at the current working directory
	// and canonicalized against the repository root.
	KindGlob Kind = "glob"
	// KindRelGlob is an unrooted extended glob: *.c matches C files in all
	// directories.
	KindRelGlob Kind = "relglob"
	// KindRe is a regular expression anchored at the start of a path.
	KindRe Kind = "re"
	// KindRelRe is a regular expression that needn't match the start of a
	// path.
	KindRelRe Kind = "relre"
	// KindPath is a path relative to the repository root, matched recursively.
	KindPath Kind = "path"
	// KindRelPath is a path relative to the current working directory.
	KindRelPath Kind = "relpath"
	// KindRootFilesIn is a directory relative to the repository root whose
	// immediate files match, non-recursively.
	KindRootFilesIn Kind = "rootfilesin"
	// KindSet is a fileset expression, resolved by a FilesetContext.
	KindSet Kind = "set"
	// KindListfile reads newline-separated patterns from a file.
	KindListfile Kind = "listfile"
	// KindListfile0 reads NUL-separated patterns from a file.
	KindListfile0 Kind = "listfile0"
	// KindInclude reads a pattern file; its patterns inherit the current root.
	KindInclude Kind = "include"
	// KindSubinclude reads a pattern file; its patterns apply only to paths
	// under the file's directory.
	KindSubinclude Kind = "subinclude"
)

var knownKinds = map[Kind]bool{
	KindGlob: true, KindRelGlob: true, KindRe: true, KindRelRe: true,
	KindPath: true, KindRelPath: true, KindRootFilesIn: true, KindSet: true,
	KindListfile: true, KindListfile0: true, KindInclude: true,
	KindSubinclude: true,
}

// Pattern is a normalized pattern: a kind, the canonical root-relative body,
// and the origin file for error messages (empty when supplied inline).
type Pattern struct {
	Kind   Kind
	Body   string
	Source string
}

// SplitPattern splits a raw pattern string into its optional kind prefix and
// the pattern body. A prefix before ':' is only honored when it names a known
// kind; otherwise the whole string is returned with the default kind.
func SplitPattern(pattern string, def Kind) (Kind, string) {
	if kind, body, ok := strings.Cut(pattern, ":"); ok && knownKinds[Kind(kind)] {
		return Kind(kind), body
	}
	return def, pattern
}

// PatKind returns the kind of the given raw pattern, or def when the pattern
// carries no recognized kind prefix.
func PatKind(pattern string, def Kind) Kind {
	kind, _ := SplitPattern(pattern, def)
	return kind
}

// alwaysMatch reports whether the normalized patterns match everything, as
// e.g. 'relpath:.' does once canonicalized to an empty body.
func alwaysMatch(pats []Pattern) bool {
	for _, p := range pats {
		if p.Body != "" || (p.Kind != KindRelPath && p.Kind != KindGlob) {
			return false
		}
	}
	return true
}
