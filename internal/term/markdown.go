package term

import (
	"fmt"
	"strings"

	"github.com/hpungsan/refdeck/internal/catalog"
)

// EntryMarkdown formats an entry as a markdown tool card.
func EntryMarkdown(e catalog.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", e.Name)
	fmt.Fprintf(&b, "*%s*\n\n", e.Category.Label())
	if e.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", e.Description)
	}

	if len(e.Parameters) > 0 {
		b.WriteString("## Parameters\n\n")
		for _, p := range e.Parameters {
			req := "optional"
			if p.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "- **%s** (`%s`, %s): %s", p.Name, p.Type, req, p.Description)
			if p.Example != "" {
				fmt.Fprintf(&b, " Example: %s", inlineCode(p.Example))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.ReturnValue != "" {
		fmt.Fprintf(&b, "## Returns\n\n%s\n\n", e.ReturnValue)
	}
	if e.Usage != "" {
		fmt.Fprintf(&b, "## Usage\n\n%s\n\n", e.Usage)
	}

	if len(e.Limitations) > 0 {
		b.WriteString("## Limitations\n\n")
		for _, l := range e.Limitations {
			fmt.Fprintf(&b, "- %s\n", l)
		}
		b.WriteString("\n")
	}

	if len(e.Examples) > 0 {
		b.WriteString("## Examples\n\n")
		for _, ex := range e.Examples {
			fence := codeFence(ex)
			fmt.Fprintf(&b, "%s\n%s\n%s\n\n", fence, ex, fence)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// inlineCode wraps s in enough backticks that embedded ones survive.
func inlineCode(s string) string {
	ticks := "`"
	for strings.Contains(s, ticks) {
		ticks += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return ticks + " " + s + " " + ticks
	}
	return ticks + s + ticks
}

// codeFence returns a backtick fence longer than any run inside s.
func codeFence(s string) string {
	fence := "```"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	return fence
}
