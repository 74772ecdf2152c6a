package ops

import (
	"strings"

	"github.com/hpungsan/refdeck/internal/errors"
	"github.com/hpungsan/refdeck/internal/refdoc"
)

// PageOutput contains the result of the ReadPage operation.
type PageOutput struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Section  string   `json:"section,omitempty"`
	Sections []string `json:"sections"`
	Markdown string   `json:"markdown"`
}

// ReadPage returns a reference page by id. With section set, Markdown holds
// only that section (heading, body and any nested subsections); the section
// is matched by title or anchor, ignoring case.
func ReadPage(id, section string) (*PageOutput, error) {
	p, err := refdoc.Lookup(id)
	if err != nil {
		return nil, err
	}
	out := &PageOutput{
		ID:       p.ID,
		Title:    p.Title,
		Sections: p.Headings(),
		Markdown: p.Markdown,
	}
	if strings.TrimSpace(section) == "" {
		return out, nil
	}

	idx := -1
	if s := refdoc.FindSection(p.Sections, section); s != nil {
		for i := range p.Sections {
			if &p.Sections[i] == s {
				idx = i
			}
		}
	}
	if idx < 0 {
		return nil, errors.NewNotFound("section", p.ID+"#"+strings.TrimSpace(section))
	}

	s := p.Sections[idx]
	// Extend the body over nested subsections.
	span := s
	for _, next := range p.Sections[idx+1:] {
		if next.Level <= s.Level {
			break
		}
		span.ContentEnd = next.ContentEnd
	}

	out.Section = s.Title
	out.Markdown = s.Header + "\n\n" + span.Content(p.Markdown) + "\n"
	return out, nil
}

// PageSummary is one row of the page listing.
type PageSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListPages returns every reference page in navigation order. The
// description is the page's lead-in paragraph on one line.
func ListPages() ([]PageSummary, error) {
	pages, err := refdoc.All()
	if err != nil {
		return nil, err
	}
	out := make([]PageSummary, len(pages))
	for i, p := range pages {
		out[i] = PageSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: strings.Join(strings.Fields(p.Intro()), " "),
		}
	}
	return out, nil
}
