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
	"os"
	"regexp"
	"strings"
)

// FileReader reads pattern and list files during matcher construction. The
// default implementation reads from the OS filesystem.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type osReader struct{}

func (osReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// OSReader returns a FileReader backed by the OS filesystem.
func OSReader() FileReader { return osReader{} }

// PatternLine is one pattern parsed from a pattern file: the kind-prefixed
// pattern, its line number, and the line as written (after comment stripping
// and prefix removal). The original line is useful to debug ignore files.
type PatternLine struct {
	Pattern  string
	LineNo   int
	Original string
}

// A '#' preceded by an even number of backslashes starts a comment.
var commentRe = regexp.MustCompile(`((?:^|[^\\])(?:\\\\)*)#.*`)

// syntaxes maps 'syntax:' directive names and per-line prefixes to the kind
// prefix applied to the line. The first entry whose prefix or "NAME:" starts a
// line wins; entries that can both match a line map it to the same prefix, so
// the order of the entries does not change the result.
var syntaxes = []struct {
	name   string
	prefix string
}{
	{"regexp", string(KindRelRe) + ":"},
	{"re", string(KindRelRe) + ":"},
	{"glob", string(KindRelGlob) + ":"},
	{"include", string(KindInclude) + ":"},
	{"subinclude", string(KindSubinclude) + ":"},
}

// ReadPatternFile parses a pattern file into kind-prefixed patterns in file
// order.
//
// Lines are split on LF or CRLF. Trailing whitespace is dropped and empty
// lines are skipped. The escape character is backslash: '\#' is a literal
// hash, any other '#' not shielded by backslashes starts a comment. A line of
// the form 'syntax: NAME' switches the default kind of the following
// unprefixed lines; recognized names are re, regexp (both relre), glob
// (relglob), include and subinclude. Unknown names are reported through warn
// and ignored. A recognized 'NAME:' prefix on an individual line overrides the
// default for that line only. The initial default is relre.
func ReadPatternFile(r FileReader, path string, warn WarnFunc) ([]PatternLine, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, err
	}

	syntax := string(KindRelRe) + ":"
	var patterns []PatternLine

	for lineNo, line := range strings.Split(string(data), "\n") {
		lineNo++ // 1-based
		line = strings.TrimSuffix(line, "\r")
		if strings.Contains(line, "#") {
			if loc := commentRe.FindStringSubmatchIndex(line); loc != nil {
				line = line[:loc[3]]
			}
			// Unescape properly escaped hashes that survived the above.
			line = strings.ReplaceAll(line, `\#`, "#")
		}
		line = strings.TrimRight(line, " \t\v\f")
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "syntax:"); ok {
			name := strings.TrimSpace(rest)
			found := false
			for _, s := range syntaxes {
				if s.name == name {
					syntax = s.prefix
					found = true
					break
				}
			}
			if !found && warn != nil {
				warn(fmt.Sprintf("%s: ignoring invalid syntax '%s'", path, name))
			}
			continue
		}

		lineSyntax := syntax
		for _, s := range syntaxes {
			if rest, ok := strings.CutPrefix(line, s.prefix); ok {
				lineSyntax, line = s.prefix, rest
				break
			}
			if rest, ok := strings.CutPrefix(line, s.name+":"); ok {
				lineSyntax, line = s.prefix, rest
				break
			}
		}
		patterns = append(patterns, PatternLine{
			Pattern:  lineSyntax + line,
			LineNo:   lineNo,
			Original: line,
		})
	}
	return patterns, nil
}
