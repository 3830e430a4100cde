// Package initcmd provides the init command, which scaffolds a new site.
package initcmd

import (
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/vwww/internal/site"
	"github.com/open-cli-collective/vwww/internal/view"
	"github.com/open-cli-collective/vwww/pkg/macro"
)

type initOptions struct {
	dir     string
	title   string
	author  string
	yes     bool
	noColor bool
	out     io.Writer
	// prompt fills in missing fields interactively.
	prompt func(opts *initOptions) error
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{prompt: promptSite}

	cmd := &cobra.Command{
		Use:   "init <dir>",
		Short: "Scaffold a new site directory",
		Long: `Create a new input directory containing header.html, footer.html,
index.md and an empty res/ directory for static assets.

The directory must not already exist. Unless --yes is given, missing values
are asked for interactively.`,
		Example: `  # Interactive setup
  vwww init mysite

  # Non-interactive
  vwww init mysite --title "My Site" --author "Jane" --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dir = args[0]
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "Site title")
	cmd.Flags().StringVar(&opts.author, "author", "", "Author shown in the footer")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Do not prompt; use defaults for missing values")

	return cmd
}

func runInit(opts *initOptions) error {
	if _, err := os.Lstat(opts.dir); err == nil {
		return fmt.Errorf("%s already exists", opts.dir)
	}

	if !opts.yes && (opts.title == "" || opts.author == "") && opts.prompt != nil {
		if err := opts.prompt(opts); err != nil {
			return err
		}
	}
	if opts.title == "" {
		opts.title = filepath.Base(opts.dir)
	}

	if err := validateField("title", opts.title); err != nil {
		return err
	}
	if err := validateField("author", opts.author); err != nil {
		return err
	}

	if err := scaffold(opts.dir, opts.title, opts.author); err != nil {
		return err
	}

	printer := view.NewPrinter(opts.noColor, false)
	if opts.out != nil {
		printer.SetWriter(opts.out)
	}
	printer.Success(fmt.Sprintf("Created site in %s", opts.dir))
	printer.Text("\nBuild it with:")
	printer.Text(fmt.Sprintf("  vwww %s public", opts.dir))

	return nil
}

// validateField rejects values that would be read back as a macro invocation.
func validateField(name, value string) error {
	if strings.Contains(value, macro.Delimiter) {
		return fmt.Errorf("%s must not contain %q", name, macro.Delimiter)
	}
	return nil
}

func promptSite(opts *initOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Site title").
				Description("Shown in the page title and heading").
				Placeholder(filepath.Base(opts.dir)).
				Value(&opts.title).
				Validate(func(s string) error { return validateField("title", s) }),

			huh.NewInput().
				Title("Author (optional)").
				Description("Shown in the footer").
				Value(&opts.author).
				Validate(func(s string) error { return validateField("author", s) }),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("initialization cancelled")
		}
		return err
	}
	return nil
}

func scaffold(dir, title, author string) error {
	if err := os.MkdirAll(filepath.Join(dir, site.ResourcesDir), 0755); err != nil {
		return fmt.Errorf("failed to create site directory: %w", err)
	}

	files := map[string]string{
		site.HeaderFile: headerTemplate(title),
		site.FooterFile: footerTemplate(author),
		"index.md":      indexTemplate(title),
		filepath.Join(site.ResourcesDir, "style.css"): styleSheet,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func headerTemplate(title string) string {
	t := html.EscapeString(title)
	return `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8" />
<title>` + t + `</title>
<link rel="stylesheet" type="text/css" href="res/style.css" />
</head>
<body>
<div id="header"><a href="index.html">` + t + `</a></div>
<div id="content">
`
}

func footerTemplate(author string) string {
	credit := ""
	if author != "" {
		credit = "&copy; " + html.EscapeString(author) + ". "
	}
	return `</div>
<div id="footer">
<p>` + credit + `Last built %%date%%.</p>
</div>
</body>
</html>
`
}

func indexTemplate(title string) string {
	return "# " + title + `

Welcome. Edit index.md or add more *.md files next to it; each one becomes
an .html page. Files placed in res/ are copied as they are.
`
}

const styleSheet = `body { font-family: sans-serif; max-width: 42em; margin: 2em auto; }
#header a { font-size: 1.4em; text-decoration: none; }
#footer { color: #666; font-size: 0.9em; }
`
