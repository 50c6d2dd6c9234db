// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package drafting

import (
	"fmt"
	"strings"
)

// Section is one block of a generated article. Each variant renders
// itself as Markdown without surrounding blank lines.
type Section interface {
	markdown() string
}

// Heading is a "##"-style heading. Level 0 is treated as 2.
type Heading struct {
	Level int
	Text  string
}

func (h Heading) markdown() string {
	level := h.Level
	if level <= 0 {
		level = 2
	}
	return strings.Repeat("#", level) + " " + h.Text
}

// Paragraph is free prose.
type Paragraph struct {
	Text string
}

func (p Paragraph) markdown() string { return strings.TrimSpace(p.Text) }

// Bullets is an unordered list.
type Bullets struct {
	Items []string
}

func (l Bullets) markdown() string {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// Numbered is an ordered list.
type Numbered struct {
	Items []string
}

func (l Numbered) markdown() string {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

// Table is a GitHub-flavored Markdown table. Short rows are padded.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) markdown() string {
	var b strings.Builder
	b.WriteString(tableRow(t.Header, len(t.Header)))
	sep := make([]string, len(t.Header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("\n" + tableRow(sep, len(sep)))
	for _, row := range t.Rows {
		b.WriteString("\n" + tableRow(row, len(t.Header)))
	}
	return b.String()
}

func tableRow(cells []string, width int) string {
	padded := make([]string, width)
	for i := range padded {
		if i < len(cells) {
			padded[i] = strings.ReplaceAll(cells[i], "|", `\|`)
		}
	}
	return "| " + strings.Join(padded, " | ") + " |"
}

// Quote is a block quote; each line is prefixed.
type Quote struct {
	Text string
}

func (q Quote) markdown() string {
	lines := strings.Split(strings.TrimSpace(q.Text), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

// Rule is a horizontal rule.
type Rule struct{}

func (Rule) markdown() string { return "---" }

// Definition is a bold term followed by its explanation.
type Definition struct {
	Term string
	Body string
}

// Definitions renders terms as a bullet list: "- **Term**：Body".
type Definitions struct {
	Items []Definition
}

func (d Definitions) markdown() string {
	lines := make([]string, len(d.Items))
	for i, item := range d.Items {
		lines[i] = "- **" + item.Term + "**：" + item.Body
	}
	return strings.Join(lines, "\n")
}

// renderSections joins sections with blank lines and ends with a newline.
// Empty sections are skipped.
func renderSections(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if md := s.markdown(); md != "" {
			parts = append(parts, md)
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}
