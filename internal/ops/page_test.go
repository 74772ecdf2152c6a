package ops

import (
	"strings"
	"testing"

	"github.com/hpungsan/refdeck/internal/errors"
)

func TestReadPage(t *testing.T) {
	out, err := ReadPage("systemprompt", "")
	if err != nil {
		t.Fatalf("ReadPage failed: %v", err)
	}
	if out.ID != "systemprompt" || out.Title != "System Prompt" {
		t.Errorf("page = %s/%s", out.ID, out.Title)
	}
	if out.Section != "" {
		t.Errorf("Section = %q, want empty for a whole page", out.Section)
	}
	if len(out.Sections) == 0 || out.Sections[0] != "Core Identity" {
		t.Errorf("Sections = %v", out.Sections)
	}
	if !strings.HasPrefix(out.Markdown, "# ") {
		t.Errorf("Markdown should start with the page title, got %q", out.Markdown[:20])
	}
}

func TestReadPage_NotFound(t *testing.T) {
	if _, err := ReadPage("tools", ""); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("ReadPage(tools) error = %v, want NOT_FOUND", err)
	}
}

func TestReadPage_Section(t *testing.T) {
	tests := []struct {
		name    string
		section string
	}{
		{name: "by title", section: "Communication"},
		{name: "case-insensitive title", section: "  communication "},
		{name: "by anchor", section: "communication"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ReadPage("behaviors", tt.section)
			if err != nil {
				t.Fatalf("ReadPage failed: %v", err)
			}
			if out.Section != "Communication" {
				t.Errorf("Section = %q, want Communication", out.Section)
			}
			if !strings.HasPrefix(out.Markdown, "## Communication\n\n") {
				t.Errorf("Markdown should start with the section heading, got %q", out.Markdown[:min(len(out.Markdown), 40)])
			}
			if !strings.Contains(out.Markdown, "Brevity") {
				t.Error("Markdown should contain the section body")
			}
			// The next sibling section is not included.
			if strings.Count(out.Markdown, "\n## ") != 0 {
				t.Errorf("Markdown runs into the next section:\n%s", out.Markdown)
			}
			if strings.Contains(out.Markdown, "Behavioral patterns") {
				t.Error("Markdown should not include the page intro")
			}
		})
	}
}

func TestReadPage_SectionNotFound(t *testing.T) {
	_, err := ReadPage("behaviors", "Teleportation")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "behaviors#Teleportation") {
		t.Errorf("error should name page and section, got %v", err)
	}
}

func TestListPages(t *testing.T) {
	pages, err := ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	var ids []string
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	if got := strings.Join(ids, ","); got != "overview,behaviors,systemprompt,environment,limitations" {
		t.Errorf("ids = %s", got)
	}
	for _, p := range pages {
		if p.Description == "" {
			t.Errorf("page %s has no description", p.ID)
		}
		if strings.Contains(p.Description, "\n") || strings.Contains(p.Description, "#") {
			t.Errorf("page %s description should be one plain line, got %q", p.ID, p.Description)
		}
	}
	if pages[1].Description != "Behavioral patterns observed in day-to-day use, with the rule that produces each." {
		t.Errorf("behaviors description = %q", pages[1].Description)
	}
}
