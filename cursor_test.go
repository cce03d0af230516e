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

func TestCursorAdvance(t *testing.T) {
	c := NewCursor("aéb")
	if got := c.Current(); got != 'a' {
		t.Errorf("Current() = %q; want %q", got, 'a')
	}
	if next, ok := c.Next(); !ok || next != 'é' {
		t.Errorf("Next() = %q, %t; want %q, true", next, ok, 'é')
	}
	c.Advance()
	if got := c.Current(); got != 'é' {
		t.Errorf("Current() after Advance = %q; want %q", got, 'é')
	}
	c.Advance()
	if got := c.Pos(); got != 3 {
		t.Errorf("Pos() past two-byte rune = %d; want 3", got)
	}
	if got := c.Current(); got != 'b' {
		t.Errorf("Current() = %q; want %q", got, 'b')
	}
	c.Advance()
	if !c.AtEnd() {
		t.Error("AtEnd() = false after consuming all input")
	}
	if _, ok := NewCursor("x").Next(); ok {
		t.Error("Next() on final character reported ok")
	}
}

func TestCursorRewind(t *testing.T) {
	c := NewCursor("aéb")
	c.Advance()
	c.Advance()
	c.Rewind()
	if got := c.Current(); got != 'é' {
		t.Errorf("Current() after Rewind = %q; want %q", got, 'é')
	}
	if got := c.Pos(); got != 1 {
		t.Errorf("Pos() after Rewind = %d; want 1", got)
	}
}

func TestCursorSnapshot(t *testing.T) {
	c := NewCursor("hello")
	c.Advance()
	snapshot := *c
	c.Advance()
	c.Advance()
	*c = snapshot
	if got := c.Pos(); got != 1 {
		t.Errorf("Pos() after restore = %d; want 1", got)
	}
	if got := c.Slice(Span{Start: c.Pos(), End: c.End()}); got != "ello" {
		t.Errorf("Slice to end after restore = %q; want %q", got, "ello")
	}
}

func TestSpanLen(t *testing.T) {
	if got := (Span{Start: 2, End: 7}).Len(); got != 5 {
		t.Errorf("Span{2, 7}.Len() = %d; want 5", got)
	}
}
