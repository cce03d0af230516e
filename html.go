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
	"html"
	"strings"

	"go4.org/bytereplacer"
)

// RenderContext carries the document-level state renderers consult:
// the named-URL table and the registered modifier hooks.
type RenderContext struct {
	URLs      NamedURLs
	modifiers modifierCollection
}

// NewRenderContext returns a context rendering against the given
// named-URL table and no modifiers.
func NewRenderContext(urls NamedURLs) *RenderContext {
	return &RenderContext{URLs: urls}
}

// modify runs the modifiers registered for the target over html,
// handing each the raw markdown notation the element came from.
func (ctx *RenderContext) modify(t Target, html, raw string) string {
	return ctx.modifiers.apply(t, html, raw)
}

var styleTags = [...]struct {
	open  string
	close string
}{
	styleItalic:        {"<em>", "</em>"},
	styleBold:          {"<strong>", "</strong>"},
	styleStrikethrough: {"<del>", "</del>"},
}

// HTML renders the component sequence in order. Rendering never
// mutates the sequence: calling HTML twice yields identical output.
func (t FormattedText) HTML(ctx *RenderContext) string {
	sb := new(strings.Builder)
	for _, comp := range t.components {
		switch comp.kind {
		case TextComponent:
			sb.WriteString(comp.text)
		case MarkerComponent:
			m := t.markers[comp.marker]
			if !m.valid {
				sb.WriteString(m.literal())
				break
			}
			tags := styleTags[m.style]
			if m.kind == markerOpening {
				sb.WriteString(tags.open)
			} else {
				sb.WriteString(tags.close)
			}
		case FragmentComponent:
			out := comp.frag.HTML(ctx)
			sb.WriteString(ctx.modify(comp.frag.target(), out, comp.raw))
		}
	}
	return sb.String()
}

var entityEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// escapeEntities substitutes the characters from the escaped-entity
// table, used for code span and code block content.
func escapeEntities(s string) string {
	return string(entityEscaper.Replace([]byte(s)))
}

// escapeAttribute escapes a string for use inside a quoted HTML
// attribute value.
func escapeAttribute(s string) string {
	return html.EscapeString(s)
}
