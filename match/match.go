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

// Package match decides, for every path in a repository working tree, whether
// it is selected by a set of user-supplied patterns.
//
// A pattern is one of:
//
//	glob:<glob>        a glob relative to cwd
//	re:<regexp>        a regular expression
//	path:<path>        a path relative to the repository root, matched
//	                   recursively
//	rootfilesin:<path> a path relative to the repository root, matched
//	                   non-recursively (will not match subdirectories)
//	relglob:<glob>     an unrooted glob (*.c matches C files in all dirs)
//	relpath:<path>     a path relative to cwd
//	relre:<regexp>     a regexp that needn't match the start of a path
//	set:<fileset>      a fileset expression
//	listfile:<path>    a file of newline-separated patterns
//	listfile0:<path>   a file of NUL-separated patterns
//	include:<path>     a file of patterns to read and include
//	subinclude:<path>  a file of patterns to match against files under the
//	                   same directory
//	<something>        a pattern of the default kind
//
// Matchers are immutable after construction and safe for concurrent use. They
// also act as a pruning oracle for tree walkers: VisitDir decides, without
// descending, whether a directory could contain a match.
package match

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/EngFlow/vcsmatch/internal/collections"
	"github.com/EngFlow/vcsmatch/pathutil"
)

// Visit is the directory-pruning verdict returned by VisitDir.
type Visit int

const (
	// VisitNo prunes the directory: nothing under it can match.
	VisitNo Visit = iota
	// VisitThis visits the directory; its entries must still be matched
	// individually.
	VisitThis
	// VisitAll marks the directory and every descendant as matching; a walker
	// may take everything without further queries.
	VisitAll
)

func (v Visit) String() string {
	switch v {
	case VisitNo:
		return "no"
	case VisitThis:
		return "this"
	case VisitAll:
		return "all"
	default:
		return "invalid"
	}
}

// Matcher is an immutable predicate over repository-relative slash-separated
// paths, plus a pruning oracle for directories.
type Matcher interface {
	// Matches reports whether the given repository-relative path is selected.
	Matches(f string) bool
	// VisitDir decides whether a directory should be visited based on whether
	// it has potential matches in it or one of its subdirectories. VisitDir is
	// meant to be called top-down: its behavior is undefined if it has
	// returned VisitNo for one of the dir's parent directories.
	VisitDir(dir string) Visit
	// Files returns explicitly listed files, patterns or roots: empty when
	// the matcher matches everything, the exact file list in exact mode, and
	// the computed pattern roots otherwise.
	Files() []string
	// Exact reports whether f is in Files().
	Exact(f string) bool
	// IsExact reports whether the matcher was built in exact mode.
	IsExact() bool
	// Always reports whether the matcher matches everything.
	Always() bool
	// AnyPats reports whether the matcher uses include/exclude, or glob,
	// regexp, set or rootfilesin patterns. Plain path patterns do not count.
	AnyPats() bool
	// Prefix reports whether the matcher selects whole subtrees by path
	// prefix only: not always, not exact, and no glob/regex/set patterns.
	Prefix() bool
	// Abs converts a repository path to a path relative to the matcher root.
	Abs(f string) string
	// Rel converts a repository path to a path relative to the matcher cwd.
	Rel(f string) string
	// UIPath converts a repository path to a display path: relative to cwd
	// when patterns or include/exclude restricted this matcher, relative to
	// the root otherwise.
	UIPath(f string) string
	// Bad is the callback for each explicit file a walker can't find or
	// access. The default is a no-op.
	Bad(f, msg string)
	// ExplicitDir is invoked when a walker visits an explicitly listed
	// directory. The default is a no-op.
	ExplicitDir(dir string)
	// TraverseDir is invoked when a walker visits a directory discovered by
	// recursive traversal. The default is a no-op.
	TraverseDir(dir string)
	// WithBad returns a copy of this matcher with its bad callback replaced.
	WithBad(fn BadFunc) Matcher
	// Regexps returns the composed include, exclude and pattern regexps, for
	// diagnostics. Empty strings stand for absent pattern groups.
	Regexps() (include, exclude, patterns string)
}

// New builds a matcher for a set of file patterns.
//
// root is the canonical root of the tree being matched, cwd the working
// directory patterns are relative to. Patterns without an explicit kind prefix
// assume the default kind (KindGlob unless WithDefaultKind changes it).
// Include and exclude pattern groups, collaborators and callbacks are supplied
// through Options.
func New(root, cwd string, patterns []string, opts ...Option) (Matcher, error) {
	return newMatcher(root, cwd, patterns, newOptions(opts))
}

// Exact builds a matcher whose patterns are literal filenames. Include and
// exclude options still apply.
func Exact(root, cwd string, files []string, opts ...Option) (Matcher, error) {
	o := newOptions(opts)
	o.exact = true
	return newMatcher(root, cwd, files, o)
}

// Always returns a matcher that matches everything.
func Always(root, cwd string) Matcher {
	m, _ := New(root, cwd, nil)
	return m
}

// matcher is the root implementation of Matcher, holding the pattern-derived
// prune sets and the compiled match op.
type matcher struct {
	root string
	cwd  string

	// files are exact files and roots of patterns; fileset is the same as a
	// set and dirs the ancestor closure of files.
	files   []string
	fileset collections.Set[string]
	dirs    collections.Set[string]

	// includeRoots/excludeRoots are directories recursively included or
	// excluded; includeDirs are directories included non-recursively.
	includeRoots collections.Set[string]
	includeDirs  collections.Set[string]
	excludeRoots collections.Set[string]

	includeRegexp  string
	excludeRegexp  string
	patternsRegexp string

	always         bool
	exactMode      bool
	anyPats        bool
	pathRestricted bool

	op matchOp

	bad         BadFunc
	explicitDir DirFunc
	traverseDir DirFunc
}

func newMatcher(root, cwd string, patterns []string, o *options) (*matcher, error) {
	m := &matcher{
		root:           root,
		cwd:            cwd,
		anyPats:        len(o.include) > 0 || len(o.exclude) > 0,
		pathRestricted: len(o.include) > 0 || len(o.exclude) > 0 || len(patterns) > 0,
		includeRoots:   collections.Set[string]{},
		includeDirs:    collections.Set[string]{},
		excludeRoots:   collections.Set[string]{},
		bad:            o.bad,
		explicitDir:    o.explicitDir,
		traverseDir:    o.traverseDir,
	}
	normalize := makeNormalize(root, cwd, o)

	var ops []matchOp
	if len(o.include) > 0 {
		kindpats, err := normalize(o.include, KindGlob)
		if err != nil {
			return nil, err
		}
		regex, op, err := buildMatch(kindpats, dirGlobSuffix, root, o)
		if err != nil {
			return nil, err
		}
		m.includeRegexp = regex
		roots, dirs := rootsAndDirs(kindpats)
		m.includeRoots.AddSlice(roots)
		m.includeDirs.AddSlice(dirs)
		ops = append(ops, op)
	}
	if len(o.exclude) > 0 {
		kindpats, err := normalize(o.exclude, KindGlob)
		if err != nil {
			return nil, err
		}
		regex, op, err := buildMatch(kindpats, dirGlobSuffix, root, o)
		if err != nil {
			return nil, err
		}
		m.excludeRegexp = regex
		// Only consider recursive excludes for pruning. When a non-recursive
		// exclude such as glob:src/*.c is used we must still recurse into the
		// excluded directory, at least to find subdirectories; the regexp
		// still won't match the non-recursively-excluded files.
		if !anyPats(kindpats) {
			m.excludeRoots.AddSlice(patternRoots(kindpats))
		}
		for _, kp := range kindpats {
			if treeRoot, ok := wholeTreeGlobRoot(kp); ok {
				m.excludeRoots.Add(treeRoot)
			}
		}
		ops = append(ops, notOp{x: op})
	}
	if o.exact {
		m.files = slices.Clone(patterns)
		m.exactMode = true
	} else if len(patterns) > 0 {
		kindpats, err := normalize(patterns, o.defaultKind)
		if err != nil {
			return nil, err
		}
		if !alwaysMatch(kindpats) {
			m.files = explicitFiles(kindpats)
			m.anyPats = m.anyPats || anyPats(kindpats)
			regex, op, err := buildMatch(kindpats, fileGlobSuffix, root, o)
			if err != nil {
				return nil, err
			}
			m.patternsRegexp = regex
			ops = append(ops, op)
		}
	}

	m.fileset = collections.ToSet(m.files)
	m.dirs = collections.Set[string]{}.AddSeq(pathutil.Dirs(m.files)).Add(".")
	if o.exact {
		ops = append(ops, filesOp(m.fileset))
	}

	switch len(ops) {
	case 0:
		m.always = true
		m.op = alwaysOp{}
	case 1:
		m.op = ops[0]
	default:
		m.op = andOp(ops)
	}
	return m, nil
}

// wholeTreeGlobRoot recognizes glob excludes that cover an entire subtree,
// such as '**' or 'vendor/**', and returns the subtree root. Those prune like
// path excludes even though globs normally don't.
func wholeTreeGlobRoot(kp Pattern) (string, bool) {
	if kp.Kind != KindGlob && kp.Kind != KindRelGlob {
		return "", false
	}
	if kp.Body == "**" {
		return ".", true
	}
	prefix, ok := strings.CutSuffix(kp.Body, "/**")
	if !ok || strings.ContainsAny(prefix, "[{*?") {
		return "", false
	}
	return prefix, true
}

func (m *matcher) Matches(f string) bool { return m.op.matches(f) }

func (m *matcher) VisitDir(dir string) Visit {
	if m.always {
		return VisitAll
	}
	if (m.Prefix() || m.exactMode) && m.fileset.Contains(dir) {
		return VisitAll
	}
	if m.excludeRoots.Contains(".") || m.excludeRoots.Contains(dir) ||
		m.excludeRoots.ContainsSeq(pathutil.FindDirs(dir)) {
		return VisitNo
	}
	if (len(m.includeRoots) > 0 || len(m.includeDirs) > 0) &&
		!m.includeRoots.Contains(".") &&
		!m.includeRoots.Contains(dir) &&
		!m.includeDirs.Contains(dir) &&
		!m.includeRoots.ContainsSeq(pathutil.FindDirs(dir)) {
		return VisitNo
	}
	if len(m.fileset) == 0 || m.fileset.Contains(".") || m.fileset.Contains(dir) ||
		m.dirs.Contains(dir) || m.fileset.ContainsSeq(pathutil.FindDirs(dir)) {
		return VisitThis
	}
	return VisitNo
}

func (m *matcher) Files() []string { return m.files }

func (m *matcher) Exact(f string) bool { return m.fileset.Contains(f) }

func (m *matcher) IsExact() bool { return m.exactMode }

func (m *matcher) Always() bool { return m.always }

func (m *matcher) AnyPats() bool { return m.anyPats }

func (m *matcher) Prefix() bool {
	return !m.always && !m.exactMode && !m.anyPats
}

func (m *matcher) Abs(f string) string { return f }

func (m *matcher) Rel(f string) string {
	if m.cwd == "" {
		return f
	}
	rel, err := filepath.Rel(filepath.FromSlash(m.cwd),
		filepath.Join(filepath.FromSlash(m.root), filepath.FromSlash(f)))
	if err != nil {
		return f
	}
	return filepath.ToSlash(rel)
}

func (m *matcher) UIPath(f string) string {
	if m.pathRestricted {
		return m.Rel(f)
	}
	return m.Abs(f)
}

func (m *matcher) Bad(f, msg string) {
	if m.bad != nil {
		m.bad(f, msg)
	}
}

func (m *matcher) ExplicitDir(dir string) {
	if m.explicitDir != nil {
		m.explicitDir(dir)
	}
}

func (m *matcher) TraverseDir(dir string) {
	if m.traverseDir != nil {
		m.traverseDir(dir)
	}
}

func (m *matcher) WithBad(fn BadFunc) Matcher {
	clone := *m
	clone.bad = fn
	return &clone
}

func (m *matcher) Regexps() (include, exclude, patterns string) {
	return m.includeRegexp, m.excludeRegexp, m.patternsRegexp
}
