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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubincludeMatchesOnlyUnderPrefix(t *testing.T) {
	reader := fakeReader{
		"/r/sub/.ignore": "syntax: glob\n*.o\n",
	}
	m, err := New("/r", "/r", nil,
		WithInclude("subinclude:sub/.ignore"),
		WithFileReader(reader))
	require.NoError(t, err)

	assert.True(t, m.Matches("sub/x.o"))
	assert.True(t, m.Matches("sub/deep/x.o"))
	assert.False(t, m.Matches("x.o"), "outside the subinclude's directory")
	assert.False(t, m.Matches("sub/x.c"))
}

func TestSubincludeViaIncludedPatternFile(t *testing.T) {
	// The usual shape: a root ignore file pulls in a per-directory one.
	reader := fakeReader{
		"/r/.ignore":     "syntax: glob\n*.tmp\nsubinclude:sub/.ignore\n",
		"/r/sub/.ignore": "syntax: glob\n*.o\n",
	}
	m, err := New("/r", "/r", nil,
		WithInclude("include:/r/.ignore"),
		WithFileReader(reader))
	require.NoError(t, err)

	assert.True(t, m.Matches("a.tmp"))
	assert.True(t, m.Matches("sub/a.tmp"))
	assert.True(t, m.Matches("sub/x.o"))
	assert.False(t, m.Matches("x.o"))
}

func TestSubincludeUnreadableWarnsOnFirstUse(t *testing.T) {
	var mu sync.Mutex
	var warnings []string
	m, err := New("/r", "/r", nil,
		WithInclude("subinclude:sub/.ignore"),
		WithFileReader(fakeReader{}),
		WithWarn(func(msg string) {
			mu.Lock()
			defer mu.Unlock()
			warnings = append(warnings, msg)
		}))
	require.NoError(t, err, "construction succeeds; the file is read lazily")

	assert.False(t, m.Matches("sub/x.o"))
	assert.False(t, m.Matches("sub/y.o"))
	// An unreadable include inside the inner matcher warns exactly once.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], ".ignore")
}

func TestSubincludeLazyConstructionIsConcurrencySafe(t *testing.T) {
	reader := fakeReader{"/r/sub/.ignore": "syntax: glob\n*.o\n"}
	m, err := New("/r", "/r", nil,
		WithInclude("subinclude:sub/.ignore"),
		WithFileReader(reader))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]bool, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = m.Matches("sub/x.o")
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.True(t, r)
	}
}
