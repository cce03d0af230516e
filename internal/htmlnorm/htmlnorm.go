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

// Package htmlnorm normalizes HTML for test comparison,
// ignoring differences in insignificant whitespace,
// attribute order, and entity spelling.
package htmlnorm

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

type attribute struct {
	key   string
	value string
}

// Normalize collapses whitespace outside <pre>, trims around
// block-level tags, sorts attributes, and re-escapes text, so that
// two HTML strings differing only in layout compare equal.
func Normalize(s string) string {
	tok := html.NewTokenizerFragment(strings.NewReader(s), "div")
	out := new(strings.Builder)
	pre := 0
	lastType := html.StartTagToken
	lastTag := ""
	pending := ""

	flush := func() {
		out.WriteString(pending)
		pending = ""
	}
	trimPending := func() {
		pending = strings.TrimRightFunc(pending, unicode.IsSpace)
	}

	for {
		switch tt := tok.Next(); tt {
		case html.ErrorToken:
			trimPending()
			flush()
			return out.String()
		case html.TextToken:
			text := string(tok.Text())
			if pre == 0 {
				text = whitespaceRE.ReplaceAllString(text, " ")
				if lastType == html.StartTagToken && isBlockTag(lastTag) {
					text = strings.TrimLeftFunc(text, unicode.IsSpace)
				}
			}
			pending += string(textEscaper.Replace([]byte(text)))
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, hasAttr := tok.TagName()
			tag := string(name)
			if tag == "pre" {
				if tt == html.EndTagToken {
					pre--
				} else {
					pre++
				}
			}
			if isBlockTag(tag) && pre == 0 {
				trimPending()
			}
			flush()
			if tt == html.EndTagToken {
				out.WriteString("</" + tag + ">")
			} else {
				out.WriteString("<" + tag)
				writeAttributes(out, tok, hasAttr)
				out.WriteString(">")
			}
			lastType = tt
			if tt == html.SelfClosingTagToken {
				lastType = html.EndTagToken
			}
			lastTag = tag
			continue
		}
	}
}

func writeAttributes(out *strings.Builder, tok *html.Tokenizer, hasAttr bool) {
	if !hasAttr {
		return
	}
	var attrs []attribute
	for {
		k, v, more := tok.TagAttr()
		attrs = append(attrs, attribute{key: string(k), value: string(v)})
		if !more {
			break
		}
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].key < attrs[j].key
	})
	for _, attr := range attrs {
		out.WriteString(" " + attr.key)
		if attr.value != "" {
			out.WriteString(`="` + html.EscapeString(attr.value) + `"`)
		}
	}
}

var blockTags = map[atom.Atom]bool{
	atom.Blockquote: true,
	atom.Div:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Td:         true,
	atom.Th:         true,
	atom.Thead:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

func isBlockTag(tag string) bool {
	return blockTags[atom.Lookup([]byte(tag))]
}
