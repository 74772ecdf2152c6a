package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/config"
	"github.com/hpungsan/refdeck/internal/logging"
	"github.com/hpungsan/refdeck/internal/ops"
)

// testEnv returns an environment over the bundled catalog with a plain
// terminal style so rendered output is stable.
func testEnv(t *testing.T) *appEnv {
	t.Helper()
	entries, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.GlamourStyle = "notty"
	cfg.RenderWidth = 200
	return &appEnv{
		entries: entries,
		cfg:     cfg,
		logger:  logging.Discard(),
		now:     func() time.Time { return time.Unix(1700000000, 0) },
	}
}

// runCLI runs the app with args and returns what it wrote to stdout.
func runCLI(t *testing.T, env *appEnv, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newCLIApp(env)
	app.Writer = &buf
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(append([]string{"refdeck"}, args...))
	return buf.String(), err
}

// TestCLISearch tests the search command.
func TestCLISearch(t *testing.T) {
	env := testEnv(t)

	t.Run("json output keeps catalog order", func(t *testing.T) {
		out, err := runCLI(t, env, "search", "--json", "file")
		if err != nil {
			t.Fatalf("search command failed: %v", err)
		}

		var output ops.SearchOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
		}
		if output.Query != "file" {
			t.Errorf("query = %q, want file", output.Query)
		}
		if output.Total != len(env.entries) {
			t.Errorf("total = %d, want %d", output.Total, len(env.entries))
		}
		if output.Showing != len(output.Items) || output.Showing == 0 {
			t.Errorf("showing = %d with %d items", output.Showing, len(output.Items))
		}

		pos := make(map[string]int, len(env.entries))
		for i, e := range env.entries {
			pos[e.Name] = i
		}
		for i := 1; i < len(output.Items); i++ {
			if pos[output.Items[i-1].Name] >= pos[output.Items[i].Name] {
				t.Errorf("items out of catalog order: %s before %s", output.Items[i-1].Name, output.Items[i].Name)
			}
		}
	})

	t.Run("multi-word query is joined", func(t *testing.T) {
		out, err := runCLI(t, env, "search", "--json", "regular", "expression")
		if err != nil {
			t.Fatalf("search command failed: %v", err)
		}
		var output ops.SearchOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Query != "regular expression" {
			t.Errorf("query = %q, want %q", output.Query, "regular expression")
		}
	})

	t.Run("category flag", func(t *testing.T) {
		out, err := runCLI(t, env, "search", "-c", "search", "--json")
		if err != nil {
			t.Fatalf("search command failed: %v", err)
		}
		var output ops.SearchOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Showing != 2 {
			t.Errorf("showing = %d, want 2", output.Showing)
		}
		for _, e := range output.Items {
			if e.Category != catalog.CategorySearch {
				t.Errorf("item %s has category %s", e.Name, e.Category)
			}
		}
	})

	t.Run("text output", func(t *testing.T) {
		out, err := runCLI(t, env, "search", "-c", "development")
		if err != nil {
			t.Fatalf("search command failed: %v", err)
		}
		if !strings.Contains(out, "Showing 3 of 15 tools in Development Tools") {
			t.Errorf("summary missing from output:\n%s", out)
		}
		if !strings.Contains(out, "Bash") {
			t.Errorf("expected Bash in output:\n%s", out)
		}
	})

	t.Run("text output empty state", func(t *testing.T) {
		out, err := runCLI(t, env, "search", "zzz-no-such-tool")
		if err != nil {
			t.Fatalf("search command failed: %v", err)
		}
		if !strings.Contains(out, "No tools found matching your criteria") {
			t.Errorf("empty state missing:\n%s", out)
		}
	})
}

// TestCLIShow tests the show command.
func TestCLIShow(t *testing.T) {
	env := testEnv(t)

	out, err := runCLI(t, env, "show", "--json", "grep")
	if err != nil {
		t.Fatalf("show command failed: %v", err)
	}
	var entry catalog.Entry
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if entry.Name != "Grep" {
		t.Errorf("name = %q, want Grep", entry.Name)
	}

	out, err = runCLI(t, env, "show", "Grep")
	if err != nil {
		t.Fatalf("show command failed: %v", err)
	}
	if !strings.Contains(out, "Grep") || !strings.Contains(out, "Parameters") {
		t.Errorf("rendered card missing content:\n%s", out)
	}
}

// TestCLICategories tests the categories command.
func TestCLICategories(t *testing.T) {
	env := testEnv(t)

	out, err := runCLI(t, env, "categories", "--json")
	if err != nil {
		t.Fatalf("categories command failed: %v", err)
	}
	var output ops.CategoriesOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	sum := 0
	for _, c := range output.Categories {
		sum += c.Count
	}
	if sum != output.Total || output.Total != 15 {
		t.Errorf("counts sum to %d, total %d, want 15", sum, output.Total)
	}

	out, err = runCLI(t, env, "categories")
	if err != nil {
		t.Fatalf("categories command failed: %v", err)
	}
	if !strings.Contains(out, "File Operations") || !strings.Contains(out, "15 tools") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

// TestCLIPage tests the page and pages commands.
func TestCLIPage(t *testing.T) {
	env := testEnv(t)

	t.Run("raw", func(t *testing.T) {
		out, err := runCLI(t, env, "page", "--raw", "overview")
		if err != nil {
			t.Fatalf("page command failed: %v", err)
		}
		if !strings.HasPrefix(out, "#") {
			t.Errorf("raw output should start with a markdown heading, got %q", out[:min(len(out), 40)])
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, env, "page", "--json", "limitations")
		if err != nil {
			t.Fatalf("page command failed: %v", err)
		}
		var page ops.PageOutput
		if err := json.Unmarshal([]byte(out), &page); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if page.ID != "limitations" || page.Markdown == "" {
			t.Errorf("page = %+v", page)
		}
	})

	t.Run("section", func(t *testing.T) {
		out, err := runCLI(t, env, "page", "--section", "communication", "--raw", "behaviors")
		if err != nil {
			t.Fatalf("page command failed: %v", err)
		}
		if !strings.HasPrefix(out, "## Communication\n") {
			t.Errorf("section output should start at its heading, got %q", out[:min(len(out), 40)])
		}
		if strings.Contains(out, "Behavioral patterns observed") {
			t.Error("section output should not include the page intro")
		}
	})

	t.Run("rendered", func(t *testing.T) {
		out, err := runCLI(t, env, "page", "behaviors")
		if err != nil {
			t.Fatalf("page command failed: %v", err)
		}
		if strings.TrimSpace(out) == "" {
			t.Error("expected rendered output")
		}
	})

	t.Run("pages", func(t *testing.T) {
		out, err := runCLI(t, env, "pages", "--json")
		if err != nil {
			t.Fatalf("pages command failed: %v", err)
		}
		var pages []ops.PageSummary
		if err := json.Unmarshal([]byte(out), &pages); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if len(pages) != 5 || pages[0].ID != "overview" {
			t.Errorf("pages = %+v", pages)
		}
		for _, p := range pages {
			if p.Description == "" {
				t.Errorf("page %s has no description", p.ID)
			}
		}
	})

	t.Run("pages rendered", func(t *testing.T) {
		out, err := runCLI(t, env, "pages")
		if err != nil {
			t.Fatalf("pages command failed: %v", err)
		}
		if !strings.Contains(out, "Behavioral patterns observed in day-to-day use") {
			t.Errorf("pages output should include page descriptions, got %q", out)
		}
	})
}

// TestCLIExport tests the export command.
func TestCLIExport(t *testing.T) {
	env := testEnv(t)

	t.Run("stdout", func(t *testing.T) {
		out, err := runCLI(t, env, "export")
		if err != nil {
			t.Fatalf("export command failed: %v", err)
		}

		scanner := bufio.NewScanner(strings.NewReader(out))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lines := 0
		for scanner.Scan() {
			lines++
			if lines == 1 {
				var header ops.ExportHeader
				if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
					t.Fatalf("failed to parse header: %v", err)
				}
				if !header.RefdeckExport || header.Count != 15 || header.ExportedAt != 1700000000 {
					t.Errorf("header = %+v", header)
				}
			}
		}
		if lines != 16 {
			t.Errorf("lines = %d, want 16 (header + 15 entries)", lines)
		}
	})

	t.Run("file in allowed path", func(t *testing.T) {
		dir := t.TempDir()
		fileEnv := testEnv(t)
		fileEnv.cfg.AllowedPaths = []string{dir}
		path := filepath.Join(dir, "catalog.jsonl")

		out, err := runCLI(t, fileEnv, "export", "--path", path)
		if err != nil {
			t.Fatalf("export command failed: %v", err)
		}
		var output ops.ExportOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output.Path != path || output.Count != 15 {
			t.Errorf("output = %+v", output)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("export file missing: %v", err)
		}
	})

	t.Run("path outside allowed dirs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.jsonl")
		if _, err := runCLI(t, env, "export", "--path", path); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

// TestCLIErrorHandling tests error exits.
func TestCLIErrorHandling(t *testing.T) {
	env := testEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown category", args: []string{"search", "-c", "network"}, want: "[INVALID_CATEGORY]"},
		{name: "unknown tool", args: []string{"show", "Teleport"}, want: "[NOT_FOUND]"},
		{name: "missing tool name", args: []string{"show"}, want: "[INVALID_REQUEST]"},
		{name: "unknown page", args: []string{"page", "changelog"}, want: "[NOT_FOUND]"},
		{name: "unknown section", args: []string{"page", "--section", "Teleportation", "behaviors"}, want: "[NOT_FOUND]"},
		{name: "bad export extension", args: []string{"export", "--path", "/tmp/out.json"}, want: "[INVALID_REQUEST]"},
		{name: "port out of range", args: []string{"serve", "--port", "70000"}, want: "[INVALID_REQUEST]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, env, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.HasPrefix(err.Error(), tt.want) {
				t.Errorf("error = %q, want prefix %q", err.Error(), tt.want)
			}
		})
	}
}

// TestIsCLIMode tests the isCLIMode function.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "no args", args: []string{"refdeck"}, expected: false},
		{name: "search command", args: []string{"refdeck", "search"}, expected: true},
		{name: "serve command", args: []string{"refdeck", "serve"}, expected: true},
		{name: "mcp command", args: []string{"refdeck", "mcp"}, expected: true},
		{name: "help flag", args: []string{"refdeck", "--help"}, expected: true},
		{name: "version flag", args: []string{"refdeck", "--version"}, expected: true},
		{name: "short help flag", args: []string{"refdeck", "-h"}, expected: true},
		{name: "short version flag", args: []string{"refdeck", "-v"}, expected: true},
		{name: "unknown arg defaults to MCP", args: []string{"refdeck", "--unknown"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isCLIMode(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestIsHelpOrVersion tests the isHelpOrVersion function.
func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "no args", args: []string{"refdeck"}, expected: false},
		{name: "help flag", args: []string{"refdeck", "--help"}, expected: true},
		{name: "short help flag", args: []string{"refdeck", "-h"}, expected: true},
		{name: "version flag", args: []string{"refdeck", "--version"}, expected: true},
		{name: "short version flag", args: []string{"refdeck", "-v"}, expected: true},
		{name: "help subcommand", args: []string{"refdeck", "help"}, expected: true},
		{name: "search command is not help", args: []string{"refdeck", "search"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isHelpOrVersion(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}
