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
	"strings"
	"unicode"
)

// ComponentKind is an enumeration of the segment types
// an inline scan produces.
type ComponentKind uint8

const (
	// TextComponent is a run of plain characters, rendered verbatim.
	TextComponent ComponentKind = 1 + iota
	// MarkerComponent references a style marker in its FormattedText's arena.
	MarkerComponent
	// FragmentComponent carries a parsed inline fragment
	// plus the exact notation it consumed.
	FragmentComponent
)

// Component is one typed segment of scanned inline content.
type Component struct {
	kind   ComponentKind
	text   string   // TextComponent: the literal characters
	marker int      // MarkerComponent: handle into the marker arena
	frag   Fragment // FragmentComponent: the parsed value
	raw    string   // FragmentComponent: the consumed notation
}

// Kind returns the component's segment type.
func (comp Component) Kind() ComponentKind {
	return comp.kind
}

// FormattedText is the ordered component sequence produced by one
// inline scan. Concatenating its components' source text in order
// reproduces the scanned range, modulo collapsed whitespace.
//
// Style markers live in an arena owned by the FormattedText;
// marker components and the scanner's active-style stack hold handles
// into it, so a repair pass rewriting a marker through one view is
// visible through the other.
type FormattedText struct {
	components []Component
	markers    []styleMarker
}

// IsEmpty reports whether the scan produced no components.
func (t FormattedText) IsEmpty() bool {
	return len(t.components) == 0
}

// Append adds other's components after t's, rebasing other's marker
// handles into t's arena. A non-empty separator is inserted as a
// single literal text component between the two sequences, and only
// when both are non-empty.
func (t *FormattedText) Append(other FormattedText, separator string) {
	if len(other.components) == 0 {
		return
	}
	if separator != "" && len(t.components) > 0 {
		t.components = append(t.components, Component{kind: TextComponent, text: separator})
	}
	base := len(t.markers)
	t.markers = append(t.markers, other.markers...)
	for _, comp := range other.components {
		if comp.kind == MarkerComponent {
			comp.marker += base
		}
		t.components = append(t.components, comp)
	}
}

// plainText flattens the sequence to unstyled text:
// literal runs, degraded marker delimiters, and fragment notation.
func (t FormattedText) plainText() string {
	sb := new(strings.Builder)
	for _, comp := range t.components {
		switch comp.kind {
		case TextComponent:
			sb.WriteString(comp.text)
		case MarkerComponent:
			if m := t.markers[comp.marker]; !m.valid {
				sb.WriteString(m.literal())
			}
		case FragmentComponent:
			sb.WriteString(comp.frag.plain())
		}
	}
	return sb.String()
}

// escapedEntities is the fixed escaped-entity table:
// characters whose backslash escape substitutes
// a literal HTML entity.
var escapedEntities = map[rune]string{
	'&': "&amp;",
	'<': "&lt;",
	'>': "&gt;",
}

const noTerminator rune = -1

// ReadFormattedText scans inline content from the cursor until the
// input ends or a block boundary is reached. Scanning never fails:
// notation that cannot be resolved degrades to literal text.
func ReadFormattedText(c *Cursor) FormattedText {
	return readFormattedText(c, noTerminator)
}

// ReadFormattedTextUntil scans inline content up to (not including)
// the terminator character.
func ReadFormattedTextUntil(c *Cursor, terminator rune) FormattedText {
	return readFormattedText(c, terminator)
}

// ReadInlineLine scans one line of inline content
// and consumes the trailing newline if one is present.
func ReadInlineLine(c *Cursor) FormattedText {
	text := readFormattedText(c, '\n')
	if !c.AtEnd() && c.Current() == '\n' {
		c.Advance()
	}
	return text
}

type inlineScanner struct {
	cursor     *Cursor
	terminator rune
	text       FormattedText
	pending    Span
	active     activeStyles
}

func readFormattedText(c *Cursor, terminator rune) FormattedText {
	s := &inlineScanner{
		cursor:     c,
		terminator: terminator,
		pending:    Span{Start: c.Pos(), End: c.Pos()},
	}
	s.scan()
	return s.text
}

func (s *inlineScanner) scan() {
	c := s.cursor
loop:
	for !c.AtEnd() {
		ch := c.Current()
		if s.terminator != noTerminator && ch == s.terminator {
			break
		}
		switch {
		case ch == '\n':
			s.flushPending(false)
			next, ok := c.Next()
			if !ok {
				// A trailing newline never becomes a space.
				break loop
			}
			if isBlockBoundary(next) {
				// The newline stays unconsumed for the block layer.
				break loop
			}
			if !unicode.IsSpace(next) {
				s.appendText(" ")
			}
			c.Advance()
			s.resetPending()
		case isSameLineWhitespace(ch) && s.nextIsWhitespace():
			// Collapse the run: the last whitespace character joins
			// the pending text through the default case instead.
			s.flushPending(false)
			c.Advance()
			s.resetPending()
		case ch == '*' || ch == '_' || ch == '~':
			s.flushPending(false)
			if !s.readStyleMarker() {
				s.readDefault(ch)
			}
		case ch == '<' && s.nextIsParagraphTag():
			// A block-level paragraph tag, not inline raw HTML.
			break loop
		case ch == '`' || ch == '[' || ch == '!' || ch == '<':
			s.flushPending(false)
			if !s.readFragment(ch) {
				s.readDefault(ch)
			}
		default:
			s.readDefault(ch)
		}
	}
	s.flushPending(true)
	s.repairDanglingMarkers()
}

// readDefault handles a character that triggered nothing:
// it joins the pending plain-text run, except that a backslash is
// dropped and may substitute an escaped entity for what follows it.
func (s *inlineScanner) readDefault(ch rune) {
	c := s.cursor
	if ch != '\\' {
		c.Advance()
		return
	}
	s.flushPending(false)
	c.Advance()
	s.resetPending()
	if c.AtEnd() {
		return
	}
	if sub, ok := escapedEntities[c.Current()]; ok {
		s.appendText(sub)
		c.Advance()
		s.resetPending()
		return
	}
	// The escaped character reads as plain text immediately,
	// so it can never trigger a marker or fragment.
	c.Advance()
}

func (s *inlineScanner) appendText(text string) {
	s.text.components = append(s.text.components, Component{kind: TextComponent, text: text})
}

// flushPending appends the pending plain-text run, if any, as a text
// component and re-anchors the run at the cursor. At end of scan the
// run's trailing whitespace is dropped.
func (s *inlineScanner) flushPending(trimTrailing bool) {
	span := Span{Start: s.pending.Start, End: s.cursor.Pos()}
	s.resetPending()
	if span.Len() <= 0 {
		return
	}
	text := s.cursor.Slice(span)
	if trimTrailing {
		text = strings.TrimRightFunc(text, unicode.IsSpace)
		if text == "" {
			return
		}
	}
	s.appendText(text)
}

func (s *inlineScanner) resetPending() {
	pos := s.cursor.Pos()
	s.pending = Span{Start: pos, End: pos}
}

func (s *inlineScanner) nextIsWhitespace() bool {
	next, ok := s.cursor.Next()
	return ok && unicode.IsSpace(next)
}

func (s *inlineScanner) nextIsParagraphTag() bool {
	next, ok := s.cursor.Next()
	return ok && (next == 'p' || next == 'P')
}

// isBlockBoundary reports whether a character directly after a newline
// hands control back to the block layer.
func isBlockBoundary(r rune) bool {
	return r == '\n' || r == '#' || r == '<' || r == '`'
}
