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

// Target identifies the kind of element a modifier rewrites.
type Target int

const (
	TargetBlockquotes Target = iota
	TargetCodeBlocks
	TargetHeadings
	TargetHorizontalLines
	TargetHTML
	TargetImages
	TargetInlineCode
	TargetLinks
	TargetLists
	TargetParagraphs
	TargetTables
)

// A Modifier rewrites the HTML produced for one kind of element.
// Rewrite receives the rendered HTML and the raw markdown notation it
// was produced from, and returns the HTML to emit instead. Modifiers
// for the same target run in registration order, each seeing the
// previous one's output.
type Modifier struct {
	Target  Target
	Rewrite func(html, markdown string) string
}

type modifierCollection map[Target][]Modifier

func (mc modifierCollection) add(m Modifier) {
	mc[m.Target] = append(mc[m.Target], m)
}

func (mc modifierCollection) apply(t Target, html, raw string) string {
	for _, m := range mc[t] {
		html = m.Rewrite(html, raw)
	}
	return html
}
