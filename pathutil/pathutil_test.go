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

package pathutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonPath(t *testing.T) {
	cases := []struct {
		root, cwd, name string
		want            string
	}{
		{"/r", "/r", "src/a.c", "src/a.c"},
		{"/r", "/r", "./src/a.c", "src/a.c"},
		{"/r", "/r/src", "a.c", "src/a.c"},
		{"/r", "/r/src", "../doc/x", "doc/x"},
		{"/r", "/r", "/r/src/a.c", "src/a.c"},
		{"/r", "/r", ".", ""},
		{"/r", "/r", "", ""},
		{"/r", "/r/src", "..", ""},
		// A relative cwd is resolved against the root; empty means the root.
		{"/r", "", "src/a.c", "src/a.c"},
		{"/r", "src", "a.c", "src/a.c"},
	}
	for _, tc := range cases {
		got, err := CanonPath(tc.root, tc.cwd, tc.name)
		require.NoError(t, err, "CanonPath(%q, %q, %q)", tc.root, tc.cwd, tc.name)
		assert.Equal(t, tc.want, got, "CanonPath(%q, %q, %q)", tc.root, tc.cwd, tc.name)
	}
}

func TestCanonPathRejectsEscapes(t *testing.T) {
	for _, name := range []string{"../outside", "/elsewhere/x", "../../x", "src/../../x"} {
		_, err := CanonPath("/r", "/r", name)
		var auditErr *AuditError
		require.ErrorAs(t, err, &auditErr, "CanonPath(%q)", name)
		assert.Equal(t, name, auditErr.Path)
		assert.Contains(t, auditErr.Error(), "not under root")
	}
}

func TestNormPath(t *testing.T) {
	assert.Equal(t, "a/b", NormPath("a/b/"))
	assert.Equal(t, "a/c", NormPath("a/b/../c"))
	assert.Equal(t, "a/b", NormPath("./a/./b"))
	assert.Equal(t, ".", NormPath(""))
	assert.Equal(t, ".", NormPath("."))
}

func TestDirname(t *testing.T) {
	assert.Equal(t, "a/b", Dirname("a/b/c"))
	assert.Equal(t, "", Dirname("top"))
	assert.Equal(t, "/r", Dirname("/r/file"))
}

func TestFindDirs(t *testing.T) {
	assert.Equal(t, []string{"a/b", "a"}, slices.Collect(FindDirs("a/b/c")))
	assert.Empty(t, slices.Collect(FindDirs("top")))
	assert.Empty(t, slices.Collect(FindDirs(".")))
}

func TestDirs(t *testing.T) {
	got := slices.Collect(Dirs([]string{"a/b/c", "a/d", "e"}))
	assert.Equal(t, []string{"a/b", "a", "a"}, got)
}
