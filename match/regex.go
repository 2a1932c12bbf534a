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
	"errors"
	"regexp"
	"strings"

	"github.com/EngFlow/vcsmatch/internal/collections"
)

const (
	// dirGlobSuffix is appended to include/exclude globs so that including a
	// directory implies including everything under it.
	dirGlobSuffix = "(?:/|$)"
	// fileGlobSuffix is appended to explicitly supplied globs, which match
	// whole paths only.
	fileGlobSuffix = "$"

	// maxRegexLen bounds the size of a single composed regexp. Longer pattern
	// lists are split in half and composed as an alternation of two compiled
	// programs.
	maxRegexLen = 20000
)

// kindRegexp converts a normalized pattern of any kind into an unanchored
// regexp fragment. globSuffix is appended to the regexp of globs. An empty
// body yields an empty fragment, which matches everything.
func kindRegexp(kind Kind, body, globSuffix string) string {
	if body == "" {
		return ""
	}
	switch kind {
	case KindRe:
		return body
	case KindPath:
		if body == "." {
			return ""
		}
		return "^" + regexp.QuoteMeta(body) + "(?:/|$)"
	case KindRootFilesIn:
		var escaped string
		if body != "." {
			// The body names a directory; anything after it must be a
			// non-directory.
			escaped = regexp.QuoteMeta(body) + "/"
		}
		return "^" + escaped + "[^/]+$"
	case KindRelGlob:
		return "(?:|.*/)" + globToRegexp(body) + globSuffix
	case KindRelPath:
		return regexp.QuoteMeta(body) + "(?:/|$)"
	case KindRelRe:
		if strings.HasPrefix(body, "^") {
			return body
		}
		return ".*" + body
	default:
		return globToRegexp(body) + globSuffix
	}
}

// rematcher compiles a composed regexp fragment into a match op. The fragment
// is anchored at the start of the path: like every regexp composed here, it is
// a prefix match, not a full match.
func rematcher(regex string) (matchOp, error) {
	re, err := regexp.Compile("^" + regex)
	if err != nil {
		return nil, err
	}
	return &regexpOp{re: re}, nil
}

// oversized reports a regexp the engine refused because the compiled program
// would be too large. Such failures are recovered by splitting the pattern
// list, unlike genuine syntax errors.
func oversized(err error) bool {
	return err != nil && strings.Contains(err.Error(), "expression too large")
}

// buildRegexMatch composes the patterns into a single alternation regexp and
// compiles it. When the composed regexp exceeds maxRegexLen, or the engine
// rejects it as too large, the pattern list is split in half and built
// recursively; the returned op is then the OR of the two halves while the
// returned regexp string still describes the whole, unsplit alternation.
func buildRegexMatch(pats []Pattern, globSuffix string) (string, matchOp, error) {
	fragments := collections.MapSlice(pats, func(p Pattern) string {
		return kindRegexp(p.Kind, p.Body, globSuffix)
	})
	regex := "(?:" + strings.Join(fragments, "|") + ")"

	if len(regex) <= maxRegexLen {
		op, err := rematcher(regex)
		if err == nil {
			return regex, op, nil
		}
		if !oversized(err) {
			return "", nil, diagnoseRegexError(pats, globSuffix, err)
		}
	}

	// Split the pattern list in two until the engine accepts each half.
	if len(pats) < 2 {
		return "", nil, &PatternError{
			Source: pats[0].Source,
			Kind:   pats[0].Kind,
			Body:   pats[0].Body,
			Err:    errRegexOverflow,
		}
	}
	half := len(pats) / 2
	_, a, err := buildRegexMatch(pats[:half], globSuffix)
	if err != nil {
		return "", nil, err
	}
	_, b, err := buildRegexMatch(pats[half:], globSuffix)
	if err != nil {
		return "", nil, err
	}
	return regex, orOp{a, b}, nil
}

var errRegexOverflow = errors.New("pattern regexp too large")

// diagnoseRegexError re-tests each pattern individually to attribute a compile
// failure to the offending (source, kind, body). When every fragment compiles
// on its own the combination itself is at fault and a generic error is
// returned.
func diagnoseRegexError(pats []Pattern, globSuffix string, err error) error {
	for _, p := range pats {
		if _, ferr := rematcher("(?:" + kindRegexp(p.Kind, p.Body, globSuffix) + ")"); ferr != nil {
			return &PatternError{Source: p.Source, Kind: p.Kind, Body: p.Body, Err: ferr}
		}
	}
	return &PatternError{Err: err}
}
