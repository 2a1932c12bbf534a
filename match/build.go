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
	"path"
	"path/filepath"

	"github.com/EngFlow/vcsmatch/internal/collections"
	"github.com/EngFlow/vcsmatch/pathutil"
)

// buildMatch compiles one pattern group (patterns, include or exclude) into a
// regexp string and a match op: subincludes and filesets are split off into
// their own ops, the remaining patterns into a composed regexp, and the group
// matches when any of them does.
func buildMatch(kindpats []Pattern, globSuffix, root string, o *options) (string, matchOp, error) {
	var ops []matchOp

	subincludes, kindpats, err := expandSubincludes(kindpats, root, o)
	if err != nil {
		return "", nil, err
	}
	if len(subincludes) > 0 {
		ops = append(ops, subincludesOp(subincludes))
	}

	fset, kindpats, err := expandSets(kindpats, o)
	if err != nil {
		return "", nil, err
	}
	if len(fset) > 0 {
		ops = append(ops, filesOp(fset))
	}

	regex := ""
	if len(kindpats) > 0 {
		var op matchOp
		regex, op, err = buildRegexMatch(kindpats, globSuffix)
		if err != nil {
			return "", nil, err
		}
		ops = append(ops, op)
	}

	if len(ops) == 1 {
		return regex, ops[0], nil
	}
	return regex, orOp(ops), nil
}

// expandSets resolves 'set:' patterns through the fileset context and returns
// the resolved path set along with the remaining patterns. With listSubrepos,
// each sub-repository's resolution is re-prefixed into the set.
func expandSets(kindpats []Pattern, o *options) (collections.Set[string], []Pattern, error) {
	fset := collections.Set[string]{}
	other := kindpats[:0:0]
	for _, kp := range kindpats {
		if kp.Kind != KindSet {
			other = append(other, kp)
			continue
		}
		if o.ctx == nil {
			return nil, nil, ErrNoFilesetContext
		}
		paths, err := o.ctx.GetFileset(kp.Body)
		if err != nil {
			return nil, nil, err
		}
		fset.AddSlice(paths)

		if o.listSubrepos {
			for _, subpath := range o.ctx.SubrepoPaths() {
				sub, err := o.ctx.Subrepo(subpath)
				if err != nil {
					return nil, nil, err
				}
				subPaths, err := sub.GetFileset(kp.Body)
				if err != nil {
					return nil, nil, err
				}
				for _, f := range subPaths {
					fset.Add(subpath + "/" + f)
				}
			}
		}
	}
	return fset, other, nil
}

// expandSubincludes splits off 'subinclude:' patterns as lazily constructed
// prefix-restricted matchers and returns them with the remaining patterns.
func expandSubincludes(kindpats []Pattern, root string, o *options) ([]*subincludeMatcher, []Pattern, error) {
	var subs []*subincludeMatcher
	other := kindpats[:0:0]
	for _, kp := range kindpats {
		if kp.Kind != KindSubinclude {
			other = append(other, kp)
			continue
		}
		// The pattern file lives relative to the directory of the file that
		// referenced it; an inline subinclude is relative to the root.
		sourceRoot := pathutil.Dirname(pathutil.NormPath(kp.Source))
		body := filepath.ToSlash(kp.Body)
		patternFile := path.Join(sourceRoot, body)
		if filepath.IsAbs(kp.Body) || path.IsAbs(body) {
			patternFile = path.Clean(body)
		}

		prefix, err := pathutil.CanonPath(root, root, pathutil.Dirname(patternFile))
		if err != nil {
			return nil, nil, err
		}
		newRoot := filepath.Join(root, filepath.FromSlash(prefix))
		innerFile := filepath.ToSlash(filepath.Join(newRoot, path.Base(patternFile)))
		if prefix != "" {
			prefix += "/"
		}
		subs = append(subs, newSubincludeMatcher(prefix, newRoot, innerFile, o))
	}
	return subs, other, nil
}
