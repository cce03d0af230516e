// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package htmlnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>a  \t b</p>", "<p>a b</p>"},
		{"<p>a\nb</p>", "<p>a b</p>"},
		{"\n<p>\n  a  b\t</p>\n", "<p>a b</p>"},
		{"<em>a  b</em> ", "<em>a b</em>"},
		{`<a title="bar" href="foo">x</a>`, `<a href="foo" title="bar">x</a>`},
		{"<pre><code>a\n b</code></pre>", "<pre><code>a\n b</code></pre>"},
		{"&amp;&gt;&lt;", "&amp;&gt;&lt;"},
	}
	for _, test := range tests {
		if got := Normalize(test.in); got != test.want {
			t.Errorf("Normalize(%q) = %q; want %q", test.in, got, test.want)
		}
	}
}
