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

import "strings"

// readMetadata reads a front matter section at the very start of a
// document: a `---` fence, `key: value` lines, and a closing fence.
// It returns nil, leaving the cursor untouched, when no front matter
// is present.
func readMetadata(c *Cursor) map[string]string {
	snapshot := *c
	if !isMetadataFence(readRawLine(c)) {
		*c = snapshot
		return nil
	}
	metadata := make(map[string]string)
	for {
		if c.AtEnd() {
			// The fence never closed: not front matter after all.
			*c = snapshot
			return nil
		}
		line := readRawLine(c)
		if isMetadataFence(line) {
			return metadata
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			*c = snapshot
			return nil
		}
		metadata[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
}

func isMetadataFence(line string) bool {
	line = strings.TrimRight(line, " \t")
	if len(line) < 3 {
		return false
	}
	return strings.Count(line, "-") == len(line)
}
