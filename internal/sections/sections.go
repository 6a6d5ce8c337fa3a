// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections parses heading-delimited documents into named
// blocks and rebuilds them from a caller-selected subset. The leading
// un-headed block holds the candidate's name and contact details and
// is never filtered out.
package sections

import (
	"regexp"
	"strings"
)

// headingPattern matches a section heading line: a "##" marker
// followed by the section title. Deeper markers ("###") belong to the
// body of the enclosing section.
var headingPattern = regexp.MustCompile(`^##\s+(.+)$`)

// Block is one named section of a parsed document. The identity block
// has an empty Title.
type Block struct {
	// Title is the heading text as authored, without the marker.
	Title string

	// HeadingLine is the raw heading line, preserved verbatim for
	// reconstruction. Empty for the identity block.
	HeadingLine string

	// BodyLines holds the block's content lines in order.
	BodyLines []string
}

// IsIdentity reports whether the block is the leading un-headed block.
func (b Block) IsIdentity() bool { return b.Title == "" }

// Document is a parsed heading-delimited document. Parsing always
// yields a fresh Document; blocks are never mutated in place.
type Document struct {
	// Identity is the leading block before any heading. A document
	// with no headings at all is one big identity block.
	Identity Block

	// Sections holds the headed blocks in original order.
	Sections []Block
}

// Parse splits text into the identity block and headed sections. The
// parser is a two-state machine: it starts in the identity block and
// every heading line opens a new section; any other line appends to
// the current block. End of input closes the current block. Malformed
// input (no headings) never fails: the whole text becomes identity
// content.
func Parse(text string) Document {
	var doc Document
	current := &doc.Identity

	for _, line := range strings.Split(text, "\n") {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			doc.Sections = append(doc.Sections, Block{
				Title:       strings.TrimSpace(m[1]),
				HeadingLine: line,
			})
			current = &doc.Sections[len(doc.Sections)-1]
			continue
		}
		current.BodyLines = append(current.BodyLines, line)
	}

	return doc
}

// Names returns the section titles in document order.
func (d Document) Names() []string {
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.Title
	}
	return names
}

// Filter reconstructs the document keeping the identity block and only
// the sections matching desired. An empty desired set means "all".
// Sections keep their original relative order; excluded sections leave
// no marker behind. Filtering never mutates the receiver.
func (d Document) Filter(desired []string) string {
	var blocks []Block
	if len(d.Identity.BodyLines) > 0 {
		blocks = append(blocks, d.Identity)
	}
	for _, s := range d.Sections {
		if len(desired) == 0 || matchesAny(s.Title, desired) {
			blocks = append(blocks, s)
		}
	}
	return render(blocks)
}

func matchesAny(title string, desired []string) bool {
	for _, want := range desired {
		if MatchSectionName(title, want) {
			return true
		}
	}
	return false
}

// render joins blocks, separating them with a single blank line and
// collapsing internal blank-line runs.
func render(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		var lines []string
		if b.HeadingLine != "" {
			lines = append(lines, b.HeadingLine)
		}
		lines = append(lines, b.BodyLines...)
		part := strings.TrimSpace(strings.Join(lines, "\n"))
		if part != "" {
			parts = append(parts, part)
		}
	}
	out := strings.Join(parts, "\n\n")
	return collapseBlankRuns(out)
}

// collapseBlankRuns normalizes runs of three or more newlines to a
// single blank line.
var blankRunPattern = regexp.MustCompile(`\n{3,}`)

func collapseBlankRuns(s string) string {
	return blankRunPattern.ReplaceAllString(s, "\n\n")
}
