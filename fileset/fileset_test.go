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

package fileset

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EngFlow/vcsmatch/match"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"src/a.c":      &fstest.MapFile{Data: []byte("a")},
		"src/deep/b.c": &fstest.MapFile{Data: []byte("b")},
		"src/a.h":      &fstest.MapFile{Data: []byte("h")},
		"doc/guide.md": &fstest.MapFile{Data: []byte("d")},
	}
}

func TestGetFileset(t *testing.T) {
	ctx := New(testFS())
	got, err := ctx.GetFileset("**/*.c")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/a.c", "src/deep/b.c"}, got)
}

func TestGetFilesetInvalidExpression(t *testing.T) {
	_, err := New(testFS()).GetFileset("a[")
	assert.Error(t, err)
}

func TestSubrepos(t *testing.T) {
	sub := New(fstest.MapFS{"nested.c": &fstest.MapFile{Data: []byte("n")}})
	ctx := New(testFS()).AddSubrepo("vendor/lib", sub)

	assert.Equal(t, []string{"vendor/lib"}, ctx.SubrepoPaths())

	got, err := ctx.Subrepo("vendor/lib")
	require.NoError(t, err)
	paths, err := got.GetFileset("*.c")
	require.NoError(t, err)
	assert.Equal(t, []string{"nested.c"}, paths)

	_, err = ctx.Subrepo("unknown")
	assert.ErrorIs(t, err, ErrUnknownSubrepo)
}

func TestMatcherIntegration(t *testing.T) {
	ctx := New(testFS())
	m, err := match.New("/r", "/r", []string{"set:**/*.c"}, match.WithFileset(ctx))
	require.NoError(t, err)
	assert.True(t, m.Matches("src/a.c"))
	assert.True(t, m.Matches("src/deep/b.c"))
	assert.False(t, m.Matches("src/a.h"))
}

func TestMatcherIntegrationWithSubrepos(t *testing.T) {
	sub := New(fstest.MapFS{"nested.c": &fstest.MapFile{Data: []byte("n")}})
	ctx := New(testFS()).AddSubrepo("vendor/lib", sub)
	m, err := match.New("/r", "/r", []string{"set:**/*.c"},
		match.WithFileset(ctx), match.WithListSubrepos())
	require.NoError(t, err)
	assert.True(t, m.Matches("src/a.c"))
	assert.True(t, m.Matches("vendor/lib/nested.c"))
}

func TestSetPatternWithoutContext(t *testing.T) {
	_, err := match.New("/r", "/r", []string{"set:**/*.c"})
	assert.ErrorIs(t, err, match.ErrNoFilesetContext)
}
