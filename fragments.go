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

package ink

import (
	"errors"
	"strings"

	"golang.org/x/net/html/atom"
)

// errInvalidNotation signals that a speculative read did not find
// valid notation at the cursor. It is purely internal control flow:
// the scanner catches it, restores the cursor, and degrades the
// trigger character to plain text.
var errInvalidNotation = errors.New("ink: invalid inline notation")

// A Fragment is a non-emphasis inline construct with its own notation:
// inline code, a link, an image, or raw inline HTML. The set is closed;
// fragments are selected by their trigger character.
type Fragment interface {
	// HTML renders the fragment, consulting the named-URL table
	// carried by the context.
	HTML(ctx *RenderContext) string

	plain() string
	target() Target
}

type fragmentReader func(c *Cursor) (Fragment, error)

func fragmentReaderFor(ch rune) fragmentReader {
	switch ch {
	case '`':
		return readInlineCode
	case '[':
		return readLink
	case '!':
		return readImage
	case '<':
		return readRawHTML
	default:
		return nil
	}
}

// readFragment speculatively parses a fragment at the cursor. On
// failure the cursor is restored to its entry position and the
// trigger character is left for the default text path.
func (s *inlineScanner) readFragment(ch rune) bool {
	read := fragmentReaderFor(ch)
	c := s.cursor
	snapshot := *c
	start := c.Pos()
	frag, err := read(c)
	if err != nil {
		*c = snapshot
		return false
	}
	s.text.components = append(s.text.components, Component{
		kind: FragmentComponent,
		frag: frag,
		raw:  c.Slice(Span{Start: start, End: c.Pos()}),
	})
	s.resetPending()
	return true
}

// InlineCode is a backtick-delimited code span.
type InlineCode struct {
	Code string
}

func readInlineCode(c *Cursor) (Fragment, error) {
	fence := 0
	for !c.AtEnd() && c.Current() == '`' {
		c.Advance()
		fence++
	}
	start := c.Pos()
	for {
		if c.AtEnd() || c.Current() == '\n' {
			return nil, errInvalidNotation
		}
		if c.Current() != '`' {
			c.Advance()
			continue
		}
		end := c.Pos()
		run := 0
		for !c.AtEnd() && c.Current() == '`' {
			c.Advance()
			run++
		}
		if run == fence {
			return &InlineCode{Code: c.Slice(Span{Start: start, End: end})}, nil
		}
	}
}

// HTML renders the code span with its content entity-escaped.
func (code *InlineCode) HTML(ctx *RenderContext) string {
	return "<code>" + escapeEntities(code.Code) + "</code>"
}

func (code *InlineCode) plain() string  { return code.Code }
func (code *InlineCode) target() Target { return TargetInlineCode }

// Link is an inline construct pointing at a URL,
// either directly or through a named reference.
type Link struct {
	Text      FormattedText
	URL       string // empty for reference-style links
	Reference string // the named-URL label
}

func readLink(c *Cursor) (Fragment, error) {
	if c.AtEnd() || c.Current() != '[' {
		return nil, errInvalidNotation
	}
	c.Advance()
	text := ReadFormattedTextUntil(c, ']')
	if c.AtEnd() || c.Current() != ']' {
		return nil, errInvalidNotation
	}
	c.Advance()

	link := &Link{Text: text}
	if c.AtEnd() {
		return nil, errInvalidNotation
	}
	switch c.Current() {
	case '(':
		url, err := readBracketedLine(c, ')')
		if err != nil {
			return nil, err
		}
		link.URL = url
	case '[':
		label, err := readBracketedLine(c, ']')
		if err != nil {
			return nil, err
		}
		link.Reference = label
	default:
		return nil, errInvalidNotation
	}
	return link, nil
}

// readBracketedLine consumes an opening bracket, the characters up to
// the closing one, and the closing bracket itself. The run may not
// cross a newline.
func readBracketedLine(c *Cursor, closing rune) (string, error) {
	c.Advance()
	start := c.Pos()
	for {
		if c.AtEnd() || c.Current() == '\n' {
			return "", errInvalidNotation
		}
		if c.Current() == closing {
			content := c.Slice(Span{Start: start, End: c.Pos()})
			c.Advance()
			return content, nil
		}
		c.Advance()
	}
}

// resolveURL picks the link's destination, falling back to the
// reference label itself when the table has no entry for it.
func (link *Link) resolveURL(ctx *RenderContext) string {
	if link.URL != "" {
		return link.URL
	}
	if url, ok := ctx.URLs.Lookup(link.Reference); ok {
		return url
	}
	return link.Reference
}

// HTML renders the link, resolving reference-style targets through
// the context's named-URL table.
func (link *Link) HTML(ctx *RenderContext) string {
	return `<a href="` + escapeAttribute(link.resolveURL(ctx)) + `">` + link.Text.HTML(ctx) + "</a>"
}

func (link *Link) plain() string  { return link.Text.plainText() }
func (link *Link) target() Target { return TargetLinks }

// Image is an inline image reference; its destination resolves
// exactly like a link's.
type Image struct {
	Link Link
}

func readImage(c *Cursor) (Fragment, error) {
	if c.AtEnd() || c.Current() != '!' {
		return nil, errInvalidNotation
	}
	c.Advance()
	if c.AtEnd() || c.Current() != '[' {
		return nil, errInvalidNotation
	}
	frag, err := readLink(c)
	if err != nil {
		return nil, err
	}
	return &Image{Link: *frag.(*Link)}, nil
}

// HTML renders the image; the alt attribute is omitted when the
// bracketed text is empty.
func (img *Image) HTML(ctx *RenderContext) string {
	out := `<img src="` + escapeAttribute(img.Link.resolveURL(ctx)) + `"`
	if alt := img.Link.Text.plainText(); alt != "" {
		out += ` alt="` + escapeAttribute(alt) + `"`
	}
	return out + "/>"
}

func (img *Image) plain() string  { return img.Link.Text.plainText() }
func (img *Image) target() Target { return TargetImages }

// InlineHTML is a run of raw HTML passed through to the output
// untouched.
type InlineHTML struct {
	Markup string
}

func readRawHTML(c *Cursor) (Fragment, error) {
	if c.AtEnd() || c.Current() != '<' {
		return nil, errInvalidNotation
	}
	start := c.Pos()
	c.Advance()
	name, selfClosing, err := readTag(c)
	if err != nil {
		return nil, err
	}
	if !selfClosing && !isVoidElement(name) {
		if err := skipToClosingTag(c, name); err != nil {
			return nil, err
		}
	}
	return &InlineHTML{Markup: c.Slice(Span{Start: start, End: c.Pos()})}, nil
}

// readTag consumes a tag from just past its opening angle bracket
// through its closing one, returning the lowercased element name.
func readTag(c *Cursor) (name string, selfClosing bool, err error) {
	start := c.Pos()
	for !c.AtEnd() && isTagNameRune(c.Current()) {
		c.Advance()
	}
	name = strings.ToLower(c.Slice(Span{Start: start, End: c.Pos()}))
	if name == "" {
		return "", false, errInvalidNotation
	}
	prev := rune(0)
	for {
		if c.AtEnd() || c.Current() == '\n' {
			return "", false, errInvalidNotation
		}
		if c.Current() == '>' {
			c.Advance()
			return name, prev == '/', nil
		}
		prev = c.Current()
		c.Advance()
	}
}

// skipToClosingTag advances past the matching close tag for name.
// The search may cross single newlines but gives up at a blank line
// or end of input, keeping the speculative read bounded.
func skipToClosingTag(c *Cursor, name string) error {
	closing := "</" + name + ">"
	for {
		if c.AtEnd() {
			return errInvalidNotation
		}
		switch c.Current() {
		case '\n':
			if next, ok := c.Next(); !ok || next == '\n' {
				return errInvalidNotation
			}
			c.Advance()
		case '<':
			snapshot := *c
			matched := true
			for _, want := range closing {
				if c.AtEnd() || !equalTagRune(c.Current(), want) {
					matched = false
					break
				}
				c.Advance()
			}
			if matched {
				return nil
			}
			*c = snapshot
			c.Advance()
		default:
			c.Advance()
		}
	}
}

func equalTagRune(got, want rune) bool {
	if got >= 'A' && got <= 'Z' {
		got += 'a' - 'A'
	}
	return got == want
}

// HTML renders the raw markup verbatim.
func (h *InlineHTML) HTML(ctx *RenderContext) string {
	return h.Markup
}

func (h *InlineHTML) plain() string  { return "" }
func (h *InlineHTML) target() Target { return TargetHTML }

func isTagNameRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' || r == '-'
}

// isVoidElement reports whether the named element never has a closing
// tag. Names are matched through the shared HTML atom table.
func isVoidElement(name string) bool {
	switch atom.Lookup([]byte(name)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr:
		return true
	default:
		return false
	}
}
