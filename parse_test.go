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
// SPDX-License-Identifier: Apache-2.0

package ink

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doc22940/ink/internal/htmlnorm"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "HeadingAndParagraph",
			markdown: "# Title\n\nHello world",
			want:     "<h1>Title</h1><p>Hello world</p>",
		},
		{
			name:     "HeadingLevels",
			markdown: "## Two\n\n###### Six",
			want:     "<h2>Two</h2><h6>Six</h6>",
		},
		{
			name:     "HeadingNeedsSpace",
			markdown: "#NoSpace",
			want:     "<p>#NoSpace</p>",
		},
		{
			name:     "EmphasisParagraph",
			markdown: "***bold italic***",
			want:     "<p><strong><em>bold italic</em></strong></p>",
		},
		{
			name:     "SoftBreakJoinsLines",
			markdown: "one\ntwo\n\nthree",
			want:     "<p>one two</p><p>three</p>",
		},
		{
			name:     "Blockquote",
			markdown: "> first line\n> second line",
			want:     "<blockquote><p>first line second line</p></blockquote>",
		},
		{
			name:     "FencedCodeBlock",
			markdown: "```go\nx < y\n```",
			want:     "<pre><code class=\"language-go\">x &lt; y\n</code></pre>",
		},
		{
			name:     "FencedCodeBlockNoLanguage",
			markdown: "```\nplain\n```",
			want:     "<pre><code>plain\n</code></pre>",
		},
		{
			name:     "HorizontalRule",
			markdown: "a\n\n---\n\nb",
			want:     "<p>a</p><hr><p>b</p>",
		},
		{
			name:     "UnorderedList",
			markdown: "- a\n- b",
			want:     "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:     "NestedList",
			markdown: "- a\n- b\n  - c\n- d",
			want:     "<ul><li>a</li><li>b<ul><li>c</li></ul></li><li>d</li></ul>",
		},
		{
			name:     "OrderedListStart",
			markdown: "4. four\n5. five",
			want:     "<ol start=\"4\"><li>four</li><li>five</li></ol>",
		},
		{
			name:     "OrderedListFromOne",
			markdown: "1. one\n2. two",
			want:     "<ol><li>one</li><li>two</li></ol>",
		},
		{
			name:     "Table",
			markdown: "| A | B |\n|:--|--:|\n| 1 | 2 |",
			want: "<table><thead><tr>" +
				"<th align=\"left\">A</th><th align=\"right\">B</th>" +
				"</tr></thead><tbody><tr>" +
				"<td align=\"left\">1</td><td align=\"right\">2</td>" +
				"</tr></tbody></table>",
		},
		{
			name:     "TableHeaderOnly",
			markdown: "| A | B |\n|---|---|",
			want:     "<table><thead><tr><th>A</th><th>B</th></tr></thead></table>",
		},
		{
			name:     "TableNeedsDivider",
			markdown: "| not | a table |",
			want:     "<p>| not | a table |</p>",
		},
		{
			name:     "HTMLBlock",
			markdown: "<div>\n<p>raw</p>\n</div>",
			want:     "<div><p>raw</p></div>",
		},
		{
			name:     "URLDeclarationAfterUse",
			markdown: "[Go][go]\n\n[go]: https://go.dev",
			want:     "<p><a href=\"https://go.dev\">Go</a></p>",
		},
		{
			name:     "URLDeclarationBeforeUse",
			markdown: "[go]: https://go.dev\n\n[Go][go]",
			want:     "<p><a href=\"https://go.dev\">Go</a></p>",
		},
		{
			name:     "UnclosedFrontMatterIsContent",
			markdown: "---\n\ntext",
			want:     "<hr><p>text</p>",
		},
	}
	parser := NewParser()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := parser.HTML(test.markdown)
			if diff := cmp.Diff(htmlnorm.Normalize(test.want), htmlnorm.Normalize(got)); diff != "" {
				t.Errorf("HTML(%q) (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

func TestParseTitle(t *testing.T) {
	tests := []struct {
		markdown string
		want     string
	}{
		{"# One\n\n# Two", "One"},
		{"## Not a title", ""},
		{"body first\n\n# Late title", "Late title"},
		{"# *Styled* title", "Styled title"},
		{"", ""},
	}
	for _, test := range tests {
		doc := NewParser().Parse(test.markdown)
		if doc.Title != test.want {
			t.Errorf("Parse(%q).Title = %q; want %q", test.markdown, doc.Title, test.want)
		}
	}
}

func TestParseMetadata(t *testing.T) {
	const markdown = "---\nauthor: Jane Doe\ntags: a, b\n---\n# Hi"
	doc := NewParser().Parse(markdown)
	wantMetadata := map[string]string{
		"author": "Jane Doe",
		"tags":   "a, b",
	}
	if diff := cmp.Diff(wantMetadata, doc.Metadata); diff != "" {
		t.Errorf("metadata (-want +got):\n%s", diff)
	}
	if want := "<h1>Hi</h1>"; doc.HTML != want {
		t.Errorf("HTML = %q; want %q", doc.HTML, want)
	}
	if want := "Hi"; doc.Title != want {
		t.Errorf("Title = %q; want %q", doc.Title, want)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	for _, markdown := range []string{"", "\n\n", "   \n\t\n"} {
		doc := NewParser().Parse(markdown)
		if doc.HTML != "" {
			t.Errorf("Parse(%q).HTML = %q; want empty", markdown, doc.HTML)
		}
	}
}

func TestParseIsTotal(t *testing.T) {
	// Broken notation still yields output covering the whole input.
	inputs := []string{
		"Hello, ***World",
		"[dangling\n\n```",
		"| a |\n|--x--|",
		"> quote\n~~",
	}
	for _, markdown := range inputs {
		doc := NewParser().Parse(markdown)
		if doc.HTML == "" {
			t.Errorf("Parse(%q) produced no HTML", markdown)
		}
	}
}
