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
	"strings"
)

// globToRegexp converts an extended glob string to an unanchored regexp
// fragment:
//
//	?         .
//	*         [^/]*
//	**        .*
//	**/       (?:.*/)?
//	[abc]     [abc]       leading '!' negates, leading '^' is escaped
//	{a,b}     (?:a|b)     groups nest and may contain commas
//	\X        literal X
//
// An unmatched '}' or a ',' outside a group is a literal. Anchoring is the
// caller's job.
func globToRegexp(pat string) string {
	var res strings.Builder
	i, n := 0, len(pat)
	group := 0
	peek := func() byte {
		if i < n {
			return pat[i]
		}
		return 0
	}
	for i < n {
		c := pat[i]
		i++
		switch c {
		case '*':
			if peek() == '*' {
				i++
				if peek() == '/' {
					i++
					res.WriteString("(?:.*/)?")
				} else {
					res.WriteString(".*")
				}
			} else {
				res.WriteString("[^/]*")
			}
		case '?':
			res.WriteByte('.')
		case '[':
			j := i
			if j < n && (pat[j] == '!' || pat[j] == ']') {
				j++
			}
			for j < n && pat[j] != ']' {
				j++
			}
			if j >= n {
				res.WriteString(`\[`)
			} else {
				stuff := strings.ReplaceAll(pat[i:j], `\`, `\\`)
				i = j + 1
				if strings.HasPrefix(stuff, "!") {
					stuff = "^" + stuff[1:]
				} else if strings.HasPrefix(stuff, "^") {
					stuff = `\` + stuff
				}
				res.WriteString("[" + stuff + "]")
			}
		case '{':
			group++
			res.WriteString("(?:")
		case '}':
			if group > 0 {
				res.WriteByte(')')
				group--
			} else {
				res.WriteString(regexp.QuoteMeta(string(c)))
			}
		case ',':
			if group > 0 {
				res.WriteByte('|')
			} else {
				res.WriteByte(',')
			}
		case '\\':
			if p := peek(); p != 0 {
				i++
				res.WriteString(regexp.QuoteMeta(string(p)))
			} else {
				res.WriteString(regexp.QuoteMeta(string(c)))
			}
		default:
			res.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return res.String()
}
