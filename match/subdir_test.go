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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubdirMatcher(t *testing.T) {
	m1, err := New("/r", "/r", []string{"a.txt", "sub/b.txt"})
	require.NoError(t, err)
	m2 := Subdir(m1, "sub")

	assert.False(t, m2.Matches("a.txt"))
	assert.True(t, m2.Matches("b.txt"))
	assert.Equal(t, []string{"b.txt"}, m2.Files())
	assert.True(t, m2.Exact("b.txt"))
	assert.False(t, m2.Exact("a.txt"))
	assert.Equal(t, "sub/b.txt", m2.Rel("b.txt"))
	assert.Equal(t, "sub/c.txt", m2.Abs("c.txt"))
}

func TestSubdirRoundTrip(t *testing.T) {
	m, err := New("/r", "/r", []string{"glob:sub/**.c", "path:sub/docs"},
		WithExclude("path:sub/docs/internal"))
	require.NoError(t, err)
	sub := Subdir(m, "sub")

	for _, f := range []string{
		"a.c", "deep/b.c", "a.h", "docs/guide.txt", "docs/internal/x", "other",
	} {
		assert.Equal(t, m.Matches("sub/"+f), sub.Matches(f), "round trip for %q", f)
	}
	for _, d := range []string{"deep", "docs", "docs/internal"} {
		assert.Equal(t, m.VisitDir("sub/"+d), sub.VisitDir(d), "visit round trip for %q", d)
	}
	assert.Equal(t, m.VisitDir("sub"), sub.VisitDir("."))
}

func TestSubdirOfPrefixMatcherIsAlways(t *testing.T) {
	m, err := New("/r", "/r", []string{"path:sub"})
	require.NoError(t, err)
	require.True(t, m.Prefix())

	sub := Subdir(m, "sub")
	assert.True(t, sub.Always())
	assert.True(t, sub.Matches("anything.txt"))

	other := Subdir(m, "other")
	assert.False(t, other.Always())
}

func TestSubdirBadDelegation(t *testing.T) {
	m, err := New("/r", "/r", []string{"a.txt", "sub/b.txt"})
	require.NoError(t, err)

	var got []string
	mb := m.WithBad(func(f, msg string) { got = append(got, f+": "+msg) })
	m2 := Subdir(mb, "sub")
	m2.Bad("x.txt", "no such file")
	assert.Equal(t, []string{"sub/x.txt: no such file"}, got)

	// Replacing bad on the subdir matcher stops the upward delegation.
	var local []string
	m3 := m2.WithBad(func(f, msg string) { local = append(local, f) })
	m3.Bad("y.txt", "gone")
	assert.Equal(t, []string{"y.txt"}, local)
	assert.Len(t, got, 1)
}

func TestSubdirOfExactMatcher(t *testing.T) {
	m, err := Exact("/r", "/r", []string{"a", "sub/b", "sub/deep/c"})
	require.NoError(t, err)
	sub := Subdir(m, "sub")
	assert.True(t, sub.IsExact())
	assert.Equal(t, []string{"b", "deep/c"}, sub.Files())
	assert.True(t, sub.Matches("b"))
	assert.False(t, sub.Matches("a"))
}
