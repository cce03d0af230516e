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

// Package ink converts Markdown text into HTML with a single
// forward-biased scan. Ambiguous notation never fails a parse:
// emphasis that cannot be matched and fragments that cannot be read
// degrade to literal text, so any input produces some HTML.
package ink

import "strings"

// Parser converts Markdown documents to HTML.
// A Parser is safe for concurrent use: each Parse call owns its own
// cursor and intermediate state, and modifiers are only read.
type Parser struct {
	modifiers modifierCollection
}

// NewParser returns a parser applying the given modifiers.
func NewParser(modifiers ...Modifier) *Parser {
	p := &Parser{modifiers: make(modifierCollection)}
	for _, m := range modifiers {
		p.modifiers.add(m)
	}
	return p
}

// AddModifier registers another modifier.
// Modifiers for the same target run in registration order.
func (p *Parser) AddModifier(m Modifier) {
	p.modifiers.add(m)
}

// Document is the result of parsing a Markdown string.
type Document struct {
	// HTML is the rendered document body.
	HTML string
	// Title is the plain text of the first level-1 heading, if any.
	Title string
	// Metadata holds the document's front matter key/value pairs.
	Metadata map[string]string
}

// HTML is shorthand for Parse(markdown).HTML.
func (p *Parser) HTML(markdown string) string {
	return p.Parse(markdown).HTML
}

// Parse converts a whole Markdown document. Parsing is total: it
// cannot fail, and every character of input is consumed.
func (p *Parser) Parse(markdown string) Document {
	c := NewCursor(markdown)
	doc := Document{Metadata: readMetadata(c)}
	urls := make(NamedURLs)

	type parsedBlock struct {
		frag blockFragment
		raw  string
	}
	var blocks []parsedBlock
	for !c.AtEnd() {
		skipBlankLines(c)
		if c.AtEnd() {
			break
		}
		start := c.Pos()
		frag := readBlock(c, urls)
		if frag == nil {
			continue
		}
		if para, ok := frag.(*paragraph); ok && para.text.IsEmpty() {
			continue
		}
		if h, ok := frag.(*heading); ok && h.level == 1 && doc.Title == "" {
			doc.Title = h.text.plainText()
		}
		raw := strings.TrimRight(c.Slice(Span{Start: start, End: c.Pos()}), " \t\n")
		blocks = append(blocks, parsedBlock{frag: frag, raw: raw})
	}

	// Rendering happens after the whole document is parsed so that
	// URL declarations resolve references appearing before them.
	ctx := &RenderContext{URLs: urls, modifiers: p.modifiers}
	sb := new(strings.Builder)
	for _, b := range blocks {
		sb.WriteString(ctx.modify(b.frag.blockTarget(), b.frag.blockHTML(ctx), b.raw))
	}
	doc.HTML = sb.String()
	return doc
}

// readBlock reads one block-level element, dispatching on the first
// character of the block. URL declarations register their pair and
// produce no fragment. Notation that fails its speculative read
// degrades to an ordinary paragraph.
func readBlock(c *Cursor, urls NamedURLs) blockFragment {
	switch ch := c.Current(); {
	case ch == '#':
		if frag, ok := tryBlock(c, readHeadingBlock); ok {
			return frag
		}
	case ch == '`':
		if frag, ok := tryBlock(c, readFencedCodeBlock); ok {
			return frag
		}
	case ch == '<':
		return readHTMLBlock(c)
	case ch == '>':
		return readBlockquote(c)
	case ch == '|':
		if frag, ok := tryBlock(c, readTableBlock); ok {
			return frag
		}
	case ch == '[':
		snapshot := *c
		if label, url, err := readURLDeclaration(c); err == nil {
			urls.Add(label, url)
			return nil
		}
		*c = snapshot
	case ch == '-' || ch == '*' || ch == '_':
		if frag, ok := tryBlock(c, readHorizontalRule); ok {
			return frag
		}
		if ch != '_' {
			if frag, ok := tryBlock(c, readListBlock); ok {
				return frag
			}
		}
	case ch == '+' || ch >= '0' && ch <= '9':
		if frag, ok := tryBlock(c, readListBlock); ok {
			return frag
		}
	}
	return readParagraphBlock(c)
}

func tryBlock(c *Cursor, read func(*Cursor) (blockFragment, error)) (blockFragment, bool) {
	snapshot := *c
	frag, err := read(c)
	if err != nil {
		*c = snapshot
		return nil, false
	}
	return frag, true
}

// skipBlankLines consumes empty and whitespace-only lines.
// Leading indentation of a non-blank line is left in place.
func skipBlankLines(c *Cursor) {
	for !c.AtEnd() {
		if c.Current() == '\n' {
			c.Advance()
			continue
		}
		if !isSameLineWhitespace(c.Current()) {
			break
		}
		snapshot := *c
		skipSameLineSpaces(c)
		if c.AtEnd() {
			break
		}
		if c.Current() == '\n' {
			c.Advance()
			continue
		}
		*c = snapshot
		break
	}
}
