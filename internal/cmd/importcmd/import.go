// Package importcmd provides the import command, which converts existing
// HTML pages into Markdown page sources.
package importcmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/vwww/internal/site"
	"github.com/open-cli-collective/vwww/internal/view"
	"github.com/open-cli-collective/vwww/pkg/macro"
	"github.com/open-cli-collective/vwww/pkg/md"
)

type importOptions struct {
	src     string
	dst     string
	noColor bool
	out     io.Writer
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.html> [<file.md>]",
		Short: "Convert an HTML page to a Markdown page source",
		Long: `Convert an existing HTML page into Markdown so it can be added to a site.

Only the <body> of a full document is converted; the shared page chrome
belongs in header.html and footer.html. The output defaults to the input
path with a .md extension. Existing files are never overwritten.`,
		Example: `  # Writes about.md next to about.html
  vwww import old/about.html

  # Choose the destination
  vwww import old/about.html site/about.md`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.src = args[0]
			if len(args) > 1 {
				opts.dst = args[1]
			}
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runImport(opts)
		},
	}

	return cmd
}

func runImport(opts *importOptions) error {
	dst := opts.dst
	if dst == "" {
		dst = strings.TrimSuffix(opts.src, filepath.Ext(opts.src)) + site.PageExt
	}
	if !strings.HasSuffix(dst, site.PageExt) {
		return fmt.Errorf("destination %s must end in %s to be picked up as a page", dst, site.PageExt)
	}

	data, err := os.ReadFile(opts.src)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	markdown, err := md.FromHTML(string(data))
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", opts.src, err)
	}

	if err := writeNew(dst, []byte(markdown)); err != nil {
		return err
	}

	printer := view.NewPrinter(opts.noColor, false)
	if opts.out != nil {
		printer.SetWriter(opts.out)
	}
	printer.Success(fmt.Sprintf("Imported %s to %s", opts.src, dst))
	if strings.Contains(markdown, macro.Delimiter) {
		printer.Warning(fmt.Sprintf("%s contains %q, which will be read as a macro delimiter", dst, macro.Delimiter))
	}

	return nil
}

// writeNew writes data to path, failing if path already exists.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("refusing to overwrite %s", path)
		}
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	return f.Close()
}
