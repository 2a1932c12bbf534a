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
)

func TestSplitPattern(t *testing.T) {
	cases := []struct {
		pattern  string
		def      Kind
		wantKind Kind
		wantBody string
	}{
		{"glob:*.c", KindRelPath, KindGlob, "*.c"},
		{"re:a.*b", KindGlob, KindRe, "a.*b"},
		{"relre:a:b", KindGlob, KindRelRe, "a:b"},
		{"rootfilesin:src", KindGlob, KindRootFilesIn, "src"},
		{"listfile0:/tmp/files", KindGlob, KindListfile0, "/tmp/files"},
		{"subinclude:sub/.ignore", KindGlob, KindSubinclude, "sub/.ignore"},
		{"path:", KindGlob, KindPath, ""},
		// Unknown prefixes and prefix-free patterns fall back to the default.
		{"unknown:x", KindGlob, KindGlob, "unknown:x"},
		{"*.c", KindGlob, KindGlob, "*.c"},
		{"src/file.c", KindRelPath, KindRelPath, "src/file.c"},
	}
	for _, tc := range cases {
		kind, body := SplitPattern(tc.pattern, tc.def)
		assert.Equal(t, tc.wantKind, kind, "kind of %q", tc.pattern)
		assert.Equal(t, tc.wantBody, body, "body of %q", tc.pattern)
	}
}

func TestPatKind(t *testing.T) {
	assert.Equal(t, KindRe, PatKind("re:.*", KindGlob))
	assert.Equal(t, KindGlob, PatKind("*.c", KindGlob))
	assert.Equal(t, KindRelPath, PatKind("sub/dir", KindRelPath))
}

func TestAlwaysMatchPatterns(t *testing.T) {
	assert.True(t, alwaysMatch(nil))
	assert.True(t, alwaysMatch([]Pattern{{Kind: KindRelPath, Body: ""}}))
	assert.True(t, alwaysMatch([]Pattern{{Kind: KindGlob, Body: ""}}))
	assert.False(t, alwaysMatch([]Pattern{{Kind: KindRelPath, Body: "x"}}))
	assert.False(t, alwaysMatch([]Pattern{{Kind: KindPath, Body: ""}}))
	assert.False(t, alwaysMatch([]Pattern{
		{Kind: KindRelPath, Body: ""},
		{Kind: KindGlob, Body: "*.c"},
	}))
}
