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

type textStyle uint8

const (
	styleItalic textStyle = iota
	styleBold
	styleStrikethrough
)

type markerKind uint8

const (
	markerOpening markerKind = iota
	markerClosing
)

// styleMarker is one recognized emphasis delimiter run.
// Markers are created by the recognizer, mutated only by the
// disambiguator during the same scan, and frozen once the scan ends.
// They live in the FormattedText's arena and are referenced by handle.
type styleMarker struct {
	style textStyle
	kind  markerKind
	raw   string // the literal delimiter text; trimmed during repair
	valid bool   // renders as a tag boundary, or degrades to raw text
	span  Span   // delimiter position, for adjacency checks

	// prefix and suffix hold single delimiter characters peeled off
	// while reinterpreting a bold marker as italic, so that a marker
	// degrading to literal text still reproduces the source exactly.
	prefix byte
	suffix byte
}

// literal returns the text an invalid marker renders as.
func (m *styleMarker) literal() string {
	out := m.raw
	if m.prefix != 0 {
		out = string(m.prefix) + out
	}
	if m.suffix != 0 {
		out += string(m.suffix)
	}
	return out
}

// activeStyles tracks the currently-open markers: an insertion-ordered
// stack of arena handles plus a bitset for O(1) "is this style open".
type activeStyles struct {
	stack []int
	open  uint8
}

func (a *activeStyles) has(style textStyle) bool {
	return a.open&(1<<style) != 0
}

func (a *activeStyles) push(style textStyle, handle int) {
	a.stack = append(a.stack, handle)
	a.open |= 1 << style
}

func (a *activeStyles) remove(style textStyle) {
	a.open &^= 1 << style
}

// readStyleMarker recognizes an emphasis delimiter run at the cursor
// and hands it to the disambiguator. It reports false, with the cursor
// unmoved, if the characters do not form a marker.
func (s *inlineScanner) readStyleMarker() bool {
	c := s.cursor
	snapshot := *c
	start := c.Pos()
	ch := c.Current()
	c.Advance()
	length := 1
	if !c.AtEnd() && c.Current() == ch {
		c.Advance()
		length++
	}

	var style textStyle
	switch {
	case ch == '~' && length == 2:
		style = styleStrikethrough
	case ch == '~':
		// Strikethrough needs a double delimiter.
		*c = snapshot
		return false
	case length == 2:
		style = styleBold
	default:
		style = styleItalic
	}

	span := Span{Start: start, End: c.Pos()}
	handle := len(s.text.markers)
	s.text.markers = append(s.text.markers, styleMarker{
		style: style,
		raw:   c.Slice(span),
		valid: true,
		span:  span,
	})
	s.resolveMarker(handle)
	s.text.components = append(s.text.components, Component{kind: MarkerComponent, marker: handle})
	s.resetPending()
	return true
}

// resolveMarker decides whether a freshly recognized marker opens a new
// emphasis span or closes an existing one, repairing improper nesting
// as it goes.
func (s *inlineScanner) resolveMarker(handle int) {
	m := &s.text.markers[handle]
	if !s.active.has(m.style) {
		m.kind = markerOpening
		s.active.push(m.style, handle)
		return
	}

	c := s.cursor
	if m.style == styleBold && s.active.has(styleItalic) && !c.AtEnd() && isEmphasisDelimiter(c.Current()) {
		// Three delimiters in a row close a combined bold+italic
		// span: hand one delimiter back to the cursor and close the
		// italic span first.
		m.raw = m.raw[:len(m.raw)-1]
		m.span.End--
		m.style = styleItalic
		c.Rewind()
	}
	m.kind = markerClosing

	// Pop up to and including the matching opener. Anything popped on
	// the way is improperly nested and degrades to literal text.
	for len(s.active.stack) > 0 {
		top := s.active.stack[len(s.active.stack)-1]
		s.active.stack = s.active.stack[:len(s.active.stack)-1]
		popped := &s.text.markers[top]
		s.active.remove(popped.style)
		if popped.style == m.style {
			break
		}
		popped.valid = false
	}
}

// repairDanglingMarkers runs once the scan ends, resolving markers that
// never found a close. An unterminated bold marker directly touching
// an unterminated italic marker is re-read as a combined delimiter
// run: the bold marker lends one character to the italic half so the
// pair degrades to the exact source text. Everything still open after
// that renders as literal punctuation. Strikethrough never takes part
// in the reinterpretation.
func (s *inlineScanner) repairDanglingMarkers() {
	if s.active.has(styleBold) && s.active.has(styleItalic) {
		bold, italic := -1, -1
		for _, handle := range s.active.stack {
			switch s.text.markers[handle].style {
			case styleBold:
				bold = handle
			case styleItalic:
				italic = handle
			default:
				continue
			}
			if bold < 0 || italic < 0 {
				continue
			}
			b := &s.text.markers[bold]
			i := &s.text.markers[italic]
			switch {
			case b.span.End == i.span.Start:
				b.style = styleItalic
				b.suffix = b.raw[len(b.raw)-1]
				b.raw = b.raw[:len(b.raw)-1]
				i.kind = markerClosing
				bold, italic = -1, -1
			case i.span.End == b.span.Start:
				b.style = styleItalic
				b.prefix = b.raw[0]
				b.raw = b.raw[1:]
				b.kind = markerClosing
				bold, italic = -1, -1
			}
		}
	}
	for _, handle := range s.active.stack {
		s.text.markers[handle].valid = false
	}
	s.active.stack = s.active.stack[:0]
	s.active.open = 0
}

func isEmphasisDelimiter(r rune) bool {
	return r == '*' || r == '_'
}
