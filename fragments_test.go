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

import "testing"

func TestInlineCode(t *testing.T) {
	tests := []struct {
		markdown string
		want     string
	}{
		{"`code`", "<code>code</code>"},
		{"`a & b < c`", "<code>a &amp; b &lt; c</code>"},
		{"`*not emphasis*`", "<code>*not emphasis*</code>"},
		{"``a `backtick` b``", "<code>a `backtick` b</code>"},

		// Without a matching fence the backtick is plain text.
		{"`dangling", "`dangling"},

		// The double fence fails, but the rescan from the second
		// backtick finds a single-fence span.
		{"``mismatched`", "`<code>mismatched</code>"},
	}
	for _, test := range tests {
		if got := renderInline(test.markdown); got != test.want {
			t.Errorf("render(%q) = %q; want %q", test.markdown, got, test.want)
		}
	}
}

func TestInlineCodeDoesNotCrossLines(t *testing.T) {
	const markdown = "`a\nb`"
	// The failed span degrades and the newline softens as usual.
	if got, want := renderInline(markdown), "`a b`"; got != want {
		t.Errorf("render(%q) = %q; want %q", markdown, got, want)
	}
}

func TestLinks(t *testing.T) {
	urls := make(NamedURLs)
	urls.Add("Go", "https://go.dev")
	ctx := NewRenderContext(urls)

	tests := []struct {
		markdown string
		want     string
	}{
		{"[text](https://example.com)", `<a href="https://example.com">text</a>`},
		{"[*styled* text](u)", `<a href="u"><em>styled</em> text</a>`},
		{"[x](u?a=1&b=2)", `<a href="u?a=1&amp;b=2">x</a>`},

		// Reference labels resolve through the named-URL table,
		// case-insensitively.
		{"[Read this][go]", `<a href="https://go.dev">Read this</a>`},
		{"[Read this][GO]", `<a href="https://go.dev">Read this</a>`},

		// An unknown label falls back to the label itself.
		{"[x][missing]", `<a href="missing">x</a>`},

		// Bracketed text without a destination is not a link.
		{"[text]", "[text]"},
		{"[text] trailing", "[text] trailing"},

		// Link text may wrap across a soft line break.
		{"[a\nb](u)", `<a href="u">a b</a>`},
	}
	for _, test := range tests {
		text := ReadFormattedText(NewCursor(test.markdown))
		if got := text.HTML(ctx); got != test.want {
			t.Errorf("render(%q) = %q; want %q", test.markdown, got, test.want)
		}
	}
}

func TestImages(t *testing.T) {
	tests := []struct {
		markdown string
		want     string
	}{
		{"![alt text](image.png)", `<img src="image.png" alt="alt text"/>`},
		{"![](image.png)", `<img src="image.png"/>`},
		{"!not an image", "!not an image"},
	}
	for _, test := range tests {
		if got := renderInline(test.markdown); got != test.want {
			t.Errorf("render(%q) = %q; want %q", test.markdown, got, test.want)
		}
	}
}

func TestInlineHTML(t *testing.T) {
	tests := []struct {
		markdown string
		want     string
	}{
		{"a <span>hi</span> b", "a <span>hi</span> b"},
		{"a <SPAN>hi</SPAN> b", "a <SPAN>hi</SPAN> b"},
		{"a <em class=\"x\">y</em> b", "a <em class=\"x\">y</em> b"},
		{"line<br/>break", "line<br/>break"},

		// Void elements need no closing tag.
		{"an image <img src=\"x.png\"> here", "an image <img src=\"x.png\"> here"},

		// A closing tag on the next line still matches.
		{"<span>a\nb</span>", "<span>a\nb</span>"},

		// No closing tag before a blank line: plain text.
		{"<span>dangling", "<span>dangling"},
	}
	for _, test := range tests {
		if got := renderInline(test.markdown); got != test.want {
			t.Errorf("render(%q) = %q; want %q", test.markdown, got, test.want)
		}
	}
}

func TestFragmentRawNotation(t *testing.T) {
	// Modifiers receive the exact notation the fragment consumed.
	var raw string
	ctx := NewRenderContext(nil)
	ctx.modifiers = make(modifierCollection)
	ctx.modifiers.add(Modifier{
		Target: TargetLinks,
		Rewrite: func(html, markdown string) string {
			raw = markdown
			return html
		},
	})
	ReadFormattedText(NewCursor("see [docs](https://example.com) here")).HTML(ctx)
	if want := "[docs](https://example.com)"; raw != want {
		t.Errorf("modifier received raw notation %q; want %q", raw, want)
	}
}
