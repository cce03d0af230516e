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
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range into the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// A Cursor is a positional view over source characters
// with single-character lookahead and one-step rewind.
//
// Copying a Cursor snapshots its position;
// assigning the copy back restores it.
// That is the recovery mechanism for speculative reads:
// a failed read restores the snapshot
// and the cursor is exactly where it was before the attempt.
type Cursor struct {
	source string
	pos    int
}

// NewCursor returns a cursor positioned at the start of source.
func NewCursor(source string) *Cursor {
	return &Cursor{source: source}
}

// AtEnd reports whether the cursor has consumed all of its input.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.source)
}

// Current returns the character at the cursor.
// Its result is undefined once AtEnd reports true.
func (c *Cursor) Current() rune {
	r, _ := utf8.DecodeRuneInString(c.source[c.pos:])
	return r
}

// Next returns the character after the current one,
// or false if the current character is the last.
func (c *Cursor) Next() (rune, bool) {
	_, size := utf8.DecodeRuneInString(c.source[c.pos:])
	if c.pos+size >= len(c.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.source[c.pos+size:])
	return r, true
}

// Advance moves the cursor forward by one character.
func (c *Cursor) Advance() {
	_, size := utf8.DecodeRuneInString(c.source[c.pos:])
	c.pos += size
}

// Rewind steps the cursor back by exactly one character.
func (c *Cursor) Rewind() {
	_, size := utf8.DecodeLastRuneInString(c.source[:c.pos])
	c.pos -= size
}

// Pos returns the cursor's offset into the source.
func (c *Cursor) Pos() int {
	return c.pos
}

// End returns the offset just past the final character.
func (c *Cursor) End() int {
	return len(c.source)
}

// Slice returns the literal characters in the given range.
func (c *Cursor) Slice(s Span) string {
	return c.source[s.Start:s.End]
}

func isSameLineWhitespace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}
