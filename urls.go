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

	"golang.org/x/text/cases"
)

// NamedURLs maps normalized reference labels to destinations,
// populated by `[label]: url` declarations during parsing.
type NamedURLs map[string]string

// NormalizeLabel prepares a reference label for table lookup:
// surrounding whitespace is trimmed and the label is case-folded.
func NormalizeLabel(label string) string {
	return cases.Fold().String(strings.TrimSpace(label))
}

// Add records a destination under the normalized label.
// The first declaration for a label wins.
func (u NamedURLs) Add(label, url string) {
	key := NormalizeLabel(label)
	if _, exists := u[key]; exists {
		return
	}
	u[key] = url
}

// Lookup reports the destination declared for the label, if any.
func (u NamedURLs) Lookup(label string) (string, bool) {
	url, ok := u[NormalizeLabel(label)]
	return url, ok
}
