package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/refdeck/internal/catalog"
	"github.com/hpungsan/refdeck/internal/config"
	"github.com/hpungsan/refdeck/internal/errors"
	"github.com/hpungsan/refdeck/internal/mcp"
	"github.com/hpungsan/refdeck/internal/ops"
	"github.com/hpungsan/refdeck/internal/term"
	"github.com/hpungsan/refdeck/internal/web"
)

// appEnv is what every command runs against.
type appEnv struct {
	entries []catalog.Entry
	cfg     *config.Config
	logger  *log.Logger
	now     func() time.Time
}

func (e *appEnv) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

// renderer builds a terminal renderer from config.
func (e *appEnv) renderer() (*term.Renderer, error) {
	r, err := term.NewRenderer(e.cfg.GlamourStyle, e.cfg.RenderWidth)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return r, nil
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:    "refdeck",
		Usage:   "Tool reference viewer",
		Version: Version,
		Commands: []*cli.Command{
			searchCmd(env),
			showCmd(env),
			categoriesCmd(env),
			pageCmd(env),
			pagesCmd(env),
			exportCmd(env),
			serveCmd(env),
			mcpCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Print JSON instead of formatted text"}
}

// searchCmd creates the search command.
func searchCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search tools by name, description, parameters and examples",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Value: "all", Usage: "Category: all|core|file|development|search"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Search(env.entries, ops.SearchInput{
				Query:    strings.Join(c.Args().Slice(), " "),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, output)
			}
			r, err := env.renderer()
			if err != nil {
				return outputError(err)
			}
			_, err = fmt.Fprint(c.App.Writer, r.Results(output))
			return err
		},
	}
}

// showCmd creates the show command.
func showCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the full card for one tool",
		ArgsUsage: "<tool>",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			entry, err := ops.Find(env.entries, c.Args().First())
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(c.App.Writer, entry)
			}
			r, err := env.renderer()
			if err != nil {
				return outputError(err)
			}
			out, err := r.Tool(*entry)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			_, err = fmt.Fprint(c.App.Writer, out)
			return err
		},
	}
}

// categoriesCmd creates the categories command.
func categoriesCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List categories with tool counts",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			output := ops.CountByCategory(env.entries)
			if c.Bool("json") {
				return outputJSON(c.App.Writer, output)
			}
			r, err := env.renderer()
			if err != nil {
				return outputError(err)
			}
			_, err = fmt.Fprint(c.App.Writer, r.Categories(output))
			return err
		},
	}
}

// pageCmd creates the page command.
func pageCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "page",
		Usage:     "Show a reference page (overview, behaviors, systemprompt, environment, limitations)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "section", Aliases: []string{"s"}, Usage: "Show only the section with this title or anchor"},
			&cli.BoolFlag{Name: "raw", Usage: "Print the page markdown unrendered"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			page, err := ops.ReadPage(c.Args().First(), c.String("section"))
			if err != nil {
				return outputError(err)
			}

			switch {
			case c.Bool("json"):
				return outputJSON(c.App.Writer, page)
			case c.Bool("raw"):
				_, err = io.WriteString(c.App.Writer, page.Markdown)
				return err
			}

			r, err := env.renderer()
			if err != nil {
				return outputError(err)
			}
			out, err := r.Markdown(page.Markdown)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			_, err = fmt.Fprint(c.App.Writer, out)
			return err
		},
	}
}

// pagesCmd creates the pages command.
func pagesCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "pages",
		Usage: "List reference pages",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			pages, err := ops.ListPages()
			if err != nil {
				return outputError(err)
			}
			if c.Bool("json") {
				return outputJSON(c.App.Writer, pages)
			}
			r, err := env.renderer()
			if err != nil {
				return outputError(err)
			}
			_, err = fmt.Fprint(c.App.Writer, r.Pages(pages))
			return err
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog as JSONL (stdout unless --path is given)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (must be a .jsonl file in ~/.refdeck/exports or an allowed path)"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("path")
			output, err := ops.Export(env.entries, env.cfg, c.App.Writer, ops.ExportInput{Path: path}, env.clock())
			if err != nil {
				return outputError(err)
			}
			if path != "" {
				return outputJSON(c.App.Writer, output)
			}
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Address to bind (default from config, 127.0.0.1)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config, 8787)"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Merge(env.cfg, &config.Config{
				Bind: c.String("bind"),
				Port: c.Int("port"),
			})
			if cfg.Port < 0 || cfg.Port > 65535 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("port out of range: %d", cfg.Port)))
			}

			srv, err := web.NewServer(env.entries, cfg, env.logger, Version)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(c.Context, srv, env.logger); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server over stdio",
		Action: func(c *cli.Context) error {
			if err := mcp.Run(env.entries, env.cfg, Version, env.logger); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var dErr *errors.DocsError
	if stderrors.As(err, &dErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", dErr.Code, dErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
