package refdoc

import (
	"fmt"
	"regexp"
	"strings"
)

// Section is one markdown heading and the byte range of its body.
type Section struct {
	Header       string // Full header line "## Task Management"
	Level        int    // Number of leading '#'
	Title        string // Header text "Task Management"
	Anchor       string // HTML id the web renderer assigns to the heading
	HeaderStart  int    // Byte offset of header start
	ContentStart int    // Byte offset where content starts
	ContentEnd   int    // Byte offset where content ends (before next section or EOF)
}

// headerPattern matches ATX headings (h1-h6) at the start of a line.
// Groups: full match, hash symbols, header text.
var headerPattern = regexp.MustCompile(`(?m)^(#{1,6})\s+([^\n]+?)[ \t]*$`)

// fencePattern matches fenced code block delimiters (``` or ~~~) with at most
// three spaces of indentation.
var fencePattern = regexp.MustCompile("(?m)^[ ]{0,3}(`{3,}|~{3,})")

// fencedRanges returns byte ranges [start, end) of fenced code blocks. A
// closing fence must use the same character as the opening one and be at
// least as long.
func fencedRanges(text string) [][2]int {
	matches := fencePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) < 2 {
		return nil
	}

	var ranges [][2]int
	var openChar byte
	var openLen int
	var openStart int
	inFence := false

	for _, match := range matches {
		fenceChars := text[match[2]:match[3]]
		char := fenceChars[0]
		fenceLen := len(fenceChars)

		if !inFence {
			openChar = char
			openLen = fenceLen
			openStart = match[0]
			inFence = true
		} else if char == openChar && fenceLen >= openLen {
			ranges = append(ranges, [2]int{openStart, match[1]})
			inFence = false
		}
	}
	return ranges
}

func insideFence(pos int, ranges [][2]int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}

// ParseSections finds all headings in text and their content ranges.
// Headings inside fenced code blocks are ignored. Returns nil when text has
// no headings.
func ParseSections(text string) []Section {
	allMatches := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(allMatches) == 0 {
		return nil
	}

	fences := fencedRanges(text)
	matches := allMatches
	if len(fences) > 0 {
		matches = make([][]int, 0, len(allMatches))
		for _, m := range allMatches {
			if !insideFence(m[0], fences) {
				matches = append(matches, m)
			}
		}
		if len(matches) == 0 {
			return nil
		}
	}

	anchors := newAnchorSet()
	sections := make([]Section, len(matches))
	for i, match := range matches {
		// match indices: [fullStart, fullEnd, hashStart, hashEnd, nameStart, nameEnd]
		headerEnd := match[1]
		title := text[match[4]:match[5]]

		contentStart := headerEnd
		if contentStart < len(text) && text[contentStart] == '\n' {
			contentStart++
		}

		contentEnd := len(text)
		if i+1 < len(matches) {
			contentEnd = matches[i+1][0]
		}

		sections[i] = Section{
			Header:       text[match[0]:match[1]],
			Level:        match[3] - match[2],
			Title:        title,
			Anchor:       anchors.next(title),
			HeaderStart:  match[0],
			ContentStart: contentStart,
			ContentEnd:   contentEnd,
		}
	}
	return sections
}

// Content returns the body of s within text, trimmed of surrounding blank lines.
func (s Section) Content(text string) string {
	if s.ContentStart >= s.ContentEnd {
		return ""
	}
	return strings.Trim(text[s.ContentStart:s.ContentEnd], "\n")
}

// FindSection returns the first section whose title or anchor matches name,
// ignoring case and surrounding whitespace.
func FindSection(sections []Section, name string) *Section {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil
	}
	for i := range sections {
		if strings.ToLower(sections[i].Title) == want || sections[i].Anchor == want {
			return &sections[i]
		}
	}
	return nil
}

// SectionTitles returns the titles of sections at the given level.
func SectionTitles(sections []Section, level int) []string {
	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.Level == level {
			titles = append(titles, s.Title)
		}
	}
	return titles
}

// Slug converts a heading into an HTML id using the same rules as goldmark's
// automatic heading ids: ASCII letters and digits are kept (lowercased),
// spaces, '-' and '_' become '-', everything else is dropped.
func Slug(title string) string {
	title = strings.TrimSpace(title)
	var b strings.Builder
	for i := 0; i < len(title); i++ {
		c := title[i]
		switch {
		case c >= 0x80:
			// multi-byte rune: skip
		case 'A' <= c && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case c == ' ' || c == '\t' || c == '-' || c == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "heading"
	}
	return b.String()
}

// anchorSet hands out unique anchors, suffixing repeats with -1, -2, ...
type anchorSet map[string]bool

func newAnchorSet() anchorSet { return anchorSet{} }

func (a anchorSet) next(title string) string {
	base := Slug(title)
	if !a[base] {
		a[base] = true
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !a[candidate] {
			a[candidate] = true
			return candidate
		}
	}
}
