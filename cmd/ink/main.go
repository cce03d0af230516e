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

package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/doc22940/ink"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "ink [file]",
	Short: "Convert Markdown to HTML",
	Long: `Converts a Markdown file (or standard input) to HTML.

The document body is written to standard output or, with --output,
to a file. Front matter between --- fences is parsed as metadata and
left out of the HTML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.Version = version
	rootCmd.Flags().StringP("output", "o", "", "Write the HTML to a file instead of stdout")
	rootCmd.Flags().Bool("metadata", false, "Print front matter as key: value lines on stderr")
}

func runConvert(cmd *cobra.Command, args []string) error {
	var source []byte
	var err error
	if len(args) == 1 {
		source, err = os.ReadFile(args[0])
	} else {
		source, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}

	doc := ink.NewParser().Parse(string(source))

	if printMeta, _ := cmd.Flags().GetBool("metadata"); printMeta {
		keys := make([]string, 0, len(doc.Metadata))
		for key := range doc.Metadata {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", key, doc.Metadata[key])
		}
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		defer f.Close()
		out = f
	}
	if _, err := io.WriteString(out, doc.HTML+"\n"); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
