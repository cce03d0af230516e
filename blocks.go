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
	"strconv"
	"strings"
)

// blockFragment is one block-level element of a document.
type blockFragment interface {
	blockHTML(ctx *RenderContext) string
	blockTarget() Target
}

// readRawLine consumes the rest of the current line, including its
// newline, and returns the line's characters without it.
func readRawLine(c *Cursor) string {
	start := c.Pos()
	for !c.AtEnd() && c.Current() != '\n' {
		c.Advance()
	}
	line := c.Slice(Span{Start: start, End: c.Pos()})
	if !c.AtEnd() {
		c.Advance()
	}
	return line
}

func skipSameLineSpaces(c *Cursor) int {
	n := 0
	for !c.AtEnd() && isSameLineWhitespace(c.Current()) {
		c.Advance()
		n++
	}
	return n
}

type heading struct {
	level int
	text  FormattedText
}

func readHeadingBlock(c *Cursor) (blockFragment, error) {
	level := 0
	for !c.AtEnd() && c.Current() == '#' {
		c.Advance()
		level++
	}
	if level == 0 || level > 6 {
		return nil, errInvalidNotation
	}
	if !c.AtEnd() && c.Current() != '\n' && !isSameLineWhitespace(c.Current()) {
		return nil, errInvalidNotation
	}
	skipSameLineSpaces(c)
	return &heading{level: level, text: ReadInlineLine(c)}, nil
}

func (h *heading) blockHTML(ctx *RenderContext) string {
	tag := "h" + strconv.Itoa(h.level)
	return "<" + tag + ">" + h.text.HTML(ctx) + "</" + tag + ">"
}

func (h *heading) blockTarget() Target { return TargetHeadings }

type paragraph struct {
	text FormattedText
}

func readParagraphBlock(c *Cursor) blockFragment {
	return &paragraph{text: ReadFormattedText(c)}
}

func (p *paragraph) blockHTML(ctx *RenderContext) string {
	return "<p>" + p.text.HTML(ctx) + "</p>"
}

func (p *paragraph) blockTarget() Target { return TargetParagraphs }

type codeBlock struct {
	language string
	code     string
}

func readFencedCodeBlock(c *Cursor) (blockFragment, error) {
	fence := 0
	for !c.AtEnd() && c.Current() == '`' {
		c.Advance()
		fence++
	}
	if fence < 3 {
		return nil, errInvalidNotation
	}
	info := strings.TrimSpace(readRawLine(c))
	language := ""
	if words := strings.Fields(info); len(words) > 0 {
		language = words[0]
	}

	code := new(strings.Builder)
	for !c.AtEnd() {
		line := readRawLine(c)
		if isClosingFence(line, fence) {
			break
		}
		code.WriteString(line)
		code.WriteByte('\n')
	}
	return &codeBlock{language: language, code: code.String()}, nil
}

// isClosingFence reports whether the line is a backtick run at least
// as long as the opening fence, with nothing else on it.
func isClosingFence(line string, fence int) bool {
	line = strings.TrimRight(line, " \t")
	if len(line) < fence {
		return false
	}
	for _, r := range line {
		if r != '`' {
			return false
		}
	}
	return true
}

func (cb *codeBlock) blockHTML(ctx *RenderContext) string {
	out := "<pre><code"
	if cb.language != "" {
		out += ` class="language-` + escapeAttribute(cb.language) + `"`
	}
	return out + ">" + escapeEntities(cb.code) + "</code></pre>"
}

func (cb *codeBlock) blockTarget() Target { return TargetCodeBlocks }

// htmlBlock is block-level raw HTML: copied through verbatim,
// one blank line ends it.
type htmlBlock struct {
	markup string
}

func readHTMLBlock(c *Cursor) blockFragment {
	sb := new(strings.Builder)
	for !c.AtEnd() && c.Current() != '\n' {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(readRawLine(c))
	}
	return &htmlBlock{markup: sb.String()}
}

func (h *htmlBlock) blockHTML(ctx *RenderContext) string {
	return h.markup
}

func (h *htmlBlock) blockTarget() Target { return TargetHTML }

type blockquote struct {
	text FormattedText
}

func readBlockquote(c *Cursor) blockFragment {
	q := &blockquote{}
	for !c.AtEnd() && c.Current() == '>' {
		c.Advance()
		skipSameLineSpaces(c)
		line := ReadInlineLine(c)
		q.text.Append(line, " ")
	}
	return q
}

func (q *blockquote) blockHTML(ctx *RenderContext) string {
	return "<blockquote><p>" + q.text.HTML(ctx) + "</p></blockquote>"
}

func (q *blockquote) blockTarget() Target { return TargetBlockquotes }

type horizontalRule struct{}

func readHorizontalRule(c *Cursor) (blockFragment, error) {
	marker := c.Current()
	run := 0
	for !c.AtEnd() && c.Current() == marker {
		c.Advance()
		run++
	}
	if run < 3 {
		return nil, errInvalidNotation
	}
	skipSameLineSpaces(c)
	if !c.AtEnd() {
		if c.Current() != '\n' {
			return nil, errInvalidNotation
		}
		c.Advance()
	}
	return horizontalRule{}, nil
}

func (horizontalRule) blockHTML(ctx *RenderContext) string {
	return "<hr>"
}

func (horizontalRule) blockTarget() Target { return TargetHorizontalLines }

type list struct {
	ordered bool
	start   int
	items   []listItem
}

type listItem struct {
	text   FormattedText
	nested *list
}

func readListBlock(c *Cursor) (blockFragment, error) {
	return readList(c, 0)
}

func readList(c *Cursor, indent int) (*list, error) {
	lst := &list{start: 1}
	for !c.AtEnd() {
		snapshot := *c
		spaces := skipSameLineSpaces(c)
		if c.AtEnd() || c.Current() == '\n' {
			// Blank line: the list is over.
			*c = snapshot
			break
		}
		if len(lst.items) > 0 && spaces >= indent+2 {
			*c = snapshot
			nested, err := readList(c, spaces)
			if err != nil {
				break
			}
			last := &lst.items[len(lst.items)-1]
			if last.nested == nil {
				last.nested = nested
			} else {
				last.nested.items = append(last.nested.items, nested.items...)
			}
			continue
		}
		if spaces < indent {
			*c = snapshot
			break
		}

		ordered, start, err := readListMarker(c)
		if err != nil {
			*c = snapshot
			if len(lst.items) == 0 {
				return nil, errInvalidNotation
			}
			break
		}
		if len(lst.items) == 0 {
			lst.ordered = ordered
			lst.start = start
		}
		lst.items = append(lst.items, listItem{text: ReadInlineLine(c)})
	}
	if len(lst.items) == 0 {
		return nil, errInvalidNotation
	}
	return lst, nil
}

// readListMarker consumes a list item marker and its trailing space:
// either a bullet (-, * or +) or an ordinal followed by . or ).
func readListMarker(c *Cursor) (ordered bool, start int, err error) {
	switch ch := c.Current(); {
	case ch == '-' || ch == '*' || ch == '+':
		c.Advance()
	case ch >= '0' && ch <= '9':
		ordered = true
		digits := c.Pos()
		for !c.AtEnd() && c.Current() >= '0' && c.Current() <= '9' {
			c.Advance()
		}
		start, _ = strconv.Atoi(c.Slice(Span{Start: digits, End: c.Pos()}))
		if c.AtEnd() || (c.Current() != '.' && c.Current() != ')') {
			return false, 0, errInvalidNotation
		}
		c.Advance()
	default:
		return false, 0, errInvalidNotation
	}
	if c.AtEnd() || !isSameLineWhitespace(c.Current()) {
		return false, 0, errInvalidNotation
	}
	skipSameLineSpaces(c)
	return ordered, start, nil
}

func (l *list) blockHTML(ctx *RenderContext) string {
	open, close := "<ul>", "</ul>"
	if l.ordered {
		open, close = "<ol>", "</ol>"
		if l.start != 1 {
			open = `<ol start="` + strconv.Itoa(l.start) + `">`
		}
	}
	sb := new(strings.Builder)
	sb.WriteString(open)
	for _, item := range l.items {
		sb.WriteString("<li>")
		sb.WriteString(item.text.HTML(ctx))
		if item.nested != nil {
			sb.WriteString(item.nested.blockHTML(ctx))
		}
		sb.WriteString("</li>")
	}
	sb.WriteString(close)
	return sb.String()
}

func (l *list) blockTarget() Target { return TargetLists }

type columnAlignment uint8

const (
	alignNone columnAlignment = iota
	alignLeft
	alignCenter
	alignRight
)

func (a columnAlignment) attribute() string {
	switch a {
	case alignLeft:
		return ` align="left"`
	case alignCenter:
		return ` align="center"`
	case alignRight:
		return ` align="right"`
	default:
		return ""
	}
}

type tableBlock struct {
	header []FormattedText
	align  []columnAlignment
	rows   [][]FormattedText
}

func readTableBlock(c *Cursor) (blockFragment, error) {
	header, err := readTableRow(c)
	if err != nil {
		return nil, err
	}
	align, err := readTableDivider(c)
	if err != nil {
		return nil, err
	}
	t := &tableBlock{header: header, align: align}
	for !c.AtEnd() && c.Current() == '|' {
		row, err := readTableRow(c)
		if err != nil {
			break
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// readTableRow scans one pipe-delimited line into per-cell inline
// sequences. Cells are scanned on a cursor over the line alone so a
// cell can never leak across the row boundary.
func readTableRow(c *Cursor) ([]FormattedText, error) {
	line := strings.TrimSpace(readRawLine(c))
	if !strings.HasPrefix(line, "|") {
		return nil, errInvalidNotation
	}
	lc := NewCursor(line)
	lc.Advance()
	var cells []FormattedText
	for !lc.AtEnd() {
		skipSameLineSpaces(lc)
		if lc.AtEnd() {
			break
		}
		cells = append(cells, ReadFormattedTextUntil(lc, '|'))
		if !lc.AtEnd() {
			lc.Advance()
		}
	}
	if len(cells) == 0 {
		return nil, errInvalidNotation
	}
	return cells, nil
}

// readTableDivider consumes the |---|:---:| row under a table header
// and returns the per-column alignments.
func readTableDivider(c *Cursor) ([]columnAlignment, error) {
	if c.AtEnd() || c.Current() != '|' {
		return nil, errInvalidNotation
	}
	snapshot := *c
	line := strings.TrimSpace(readRawLine(c))
	segments := strings.Split(strings.Trim(line, "|"), "|")
	align := make([]columnAlignment, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		leading := strings.HasPrefix(segment, ":")
		trailing := strings.HasSuffix(segment, ":")
		dashes := strings.Trim(segment, ":")
		if dashes == "" || strings.Count(dashes, "-") != len(dashes) {
			*c = snapshot
			return nil, errInvalidNotation
		}
		switch {
		case leading && trailing:
			align = append(align, alignCenter)
		case leading:
			align = append(align, alignLeft)
		case trailing:
			align = append(align, alignRight)
		default:
			align = append(align, alignNone)
		}
	}
	return align, nil
}

func (t *tableBlock) alignment(column int) columnAlignment {
	if column >= len(t.align) {
		return alignNone
	}
	return t.align[column]
}

func (t *tableBlock) blockHTML(ctx *RenderContext) string {
	sb := new(strings.Builder)
	sb.WriteString("<table><thead><tr>")
	for i, cell := range t.header {
		sb.WriteString("<th" + t.alignment(i).attribute() + ">")
		sb.WriteString(cell.HTML(ctx))
		sb.WriteString("</th>")
	}
	sb.WriteString("</tr></thead>")
	if len(t.rows) > 0 {
		sb.WriteString("<tbody>")
		for _, row := range t.rows {
			sb.WriteString("<tr>")
			for i, cell := range row {
				sb.WriteString("<td" + t.alignment(i).attribute() + ">")
				sb.WriteString(cell.HTML(ctx))
				sb.WriteString("</td>")
			}
			sb.WriteString("</tr>")
		}
		sb.WriteString("</tbody>")
	}
	sb.WriteString("</table>")
	return sb.String()
}

func (t *tableBlock) blockTarget() Target { return TargetTables }

// readURLDeclaration consumes a `[label]: url` line,
// yielding the pair for the named-URL table. It produces no HTML.
func readURLDeclaration(c *Cursor) (label, url string, err error) {
	label, err = readBracketedLine(c, ']')
	if err != nil {
		return "", "", err
	}
	if c.AtEnd() || c.Current() != ':' {
		return "", "", errInvalidNotation
	}
	c.Advance()
	url = strings.TrimSpace(readRawLine(c))
	if label == "" || url == "" || strings.ContainsAny(url, " \t") {
		return "", "", errInvalidNotation
	}
	return label, url, nil
}
