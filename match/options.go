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

import "github.com/EngFlow/vcsmatch/pathutil"

// WarnFunc receives non-fatal pattern file diagnostics.
type WarnFunc func(msg string)

// BadFunc is called by walkers for each explicit file that can't be found or
// accessed, with an error message.
type BadFunc func(f, msg string)

// DirFunc is called by walkers when a directory is visited.
type DirFunc func(dir string)

// Auditor canonicalizes a user-supplied path against (root, cwd) and rejects
// paths escaping the root. The default is pathutil.CanonPath.
type Auditor func(root, cwd, name string) (string, error)

// FilesetContext resolves 'set:' pattern expressions to concrete
// repository-relative paths. It may also enumerate sub-repositories so that
// fileset expansion can descend into them.
type FilesetContext interface {
	// GetFileset resolves a fileset expression to repository-relative paths.
	GetFileset(expr string) ([]string, error)
	// SubrepoPaths lists the paths of nested sub-repositories.
	SubrepoPaths() []string
	// Subrepo returns the context of the sub-repository at the given path.
	Subrepo(path string) (FilesetContext, error)
}

type options struct {
	include      []string
	exclude      []string
	defaultKind  Kind
	exact        bool
	auditor      Auditor
	reader       FileReader
	warn         WarnFunc
	bad          BadFunc
	explicitDir  DirFunc
	traverseDir  DirFunc
	ctx          FilesetContext
	listSubrepos bool
	normCase     func(string) string
	inDirstate   func(string) bool
}

// Option configures matcher construction.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		defaultKind: KindGlob,
		auditor:     pathutil.CanonPath,
		reader:      osReader{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// forSubinclude derives the construction options of a lazily built subinclude
// matcher: the collaborators carry over, the pattern inputs are replaced by
// the subinclude's own pattern file.
func (o *options) forSubinclude(patternFile string) *options {
	return &options{
		include:      []string{string(KindInclude) + ":" + patternFile},
		defaultKind:  KindGlob,
		auditor:      o.auditor,
		reader:       o.reader,
		warn:         o.warn,
		ctx:          o.ctx,
		listSubrepos: o.listSubrepos,
		normCase:     o.normCase,
		inDirstate:   o.inDirstate,
	}
}

// WithInclude adds patterns a path must match to be selected, unless it is
// excluded.
func WithInclude(patterns ...string) Option {
	return func(o *options) { o.include = append(o.include, patterns...) }
}

// WithExclude adds patterns that deselect a path even when it is included.
func WithExclude(patterns ...string) Option {
	return func(o *options) { o.exclude = append(o.exclude, patterns...) }
}

// WithDefaultKind sets the kind assumed for patterns with no explicit kind
// prefix. The default is KindGlob.
func WithDefaultKind(kind Kind) Option {
	return func(o *options) { o.defaultKind = kind }
}

// WithAuditor replaces the path auditor used to canonicalize glob and relpath
// patterns.
func WithAuditor(a Auditor) Option {
	return func(o *options) { o.auditor = a }
}

// WithFileReader replaces the reader used for pattern, include and list files.
func WithFileReader(r FileReader) Option {
	return func(o *options) { o.reader = r }
}

// WithWarn sets the sink for non-fatal pattern file diagnostics.
func WithWarn(warn WarnFunc) Option {
	return func(o *options) { o.warn = warn }
}

// WithBadFunc sets the matcher's bad callback.
func WithBadFunc(fn BadFunc) Option {
	return func(o *options) { o.bad = fn }
}

// WithExplicitDir sets the callback invoked when a walker visits an explicitly
// listed directory.
func WithExplicitDir(fn DirFunc) Option {
	return func(o *options) { o.explicitDir = fn }
}

// WithTraverseDir sets the callback invoked when a walker visits a directory
// discovered by recursive traversal.
func WithTraverseDir(fn DirFunc) Option {
	return func(o *options) { o.traverseDir = fn }
}

// WithFileset supplies the context used to resolve 'set:' patterns. Without
// it, a 'set:' pattern fails matcher construction.
func WithFileset(ctx FilesetContext) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithListSubrepos extends fileset resolution into sub-repositories.
func WithListSubrepos() Option {
	return func(o *options) { o.listSubrepos = true }
}

// WithCaseInsensitive builds a matcher for a working directory on a
// case-insensitive file system: every non-regex pattern body is rewritten with
// the dirstate-provided normalize function, which maps a path to the case the
// file system actually stores (casefold.Normalizer provides one). inDirstate
// reports whether a path is tracked with exactly the given spelling; when
// normalization changes a tracked body, both forms are matched to handle
// case-only renames. inDirstate may be nil.
func WithCaseInsensitive(normalize func(string) string, inDirstate func(string) bool) Option {
	return func(o *options) {
		o.normCase = normalize
		o.inDirstate = inDirstate
	}
}
