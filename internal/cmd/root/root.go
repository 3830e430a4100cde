// Package root provides the root command for the vwww CLI.
package root

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/vwww/internal/cmd/completion"
	"github.com/open-cli-collective/vwww/internal/cmd/configcmd"
	"github.com/open-cli-collective/vwww/internal/cmd/importcmd"
	"github.com/open-cli-collective/vwww/internal/cmd/initcmd"
	"github.com/open-cli-collective/vwww/internal/config"
	"github.com/open-cli-collective/vwww/internal/logging"
	"github.com/open-cli-collective/vwww/internal/site"
	"github.com/open-cli-collective/vwww/internal/version"
	"github.com/open-cli-collective/vwww/internal/view"
	"github.com/open-cli-collective/vwww/pkg/md"
)

// ErrUsage is returned when the build is not given exactly two directories.
var ErrUsage = errors.New("usage: vwww indir outdir")

type buildOptions struct {
	inputDir   string
	outputDir  string
	configPath string
	noColor    bool
	quiet      bool
	out        io.Writer
}

// NewCmdRoot creates the root command for vwww.
func NewCmdRoot() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "vwww <indir> <outdir>",
		Short: "A minimal static site generator",
		Long: `vwww builds a static site from a directory of Markdown files.

The input directory must contain header.html, footer.html and at least one
*.md file. Every page is macro-expanded, rendered to XHTML and wrapped in the
header and footer. A res/ subdirectory, if present, is copied verbatim.

Macros are written %%name[:arg...]%% and may appear in pages and templates:

  %%date%%             current date and time
  %%include:path%%     contents of path, relative to the working directory

The output directory must not exist; it is created by the build.

An input directory named like a subcommand (config, init, import, completion,
help) is read as that subcommand; write it as ./config to build it instead.`,
		Example: `  # Build a site
  vwww site public

  # Scaffold a new site, then build it
  vwww init mysite --title "My Site" --yes
  vwww mysite public`,
		Args:          exactDirs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.Setup(cmd.ErrOrStderr(), verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.inputDir = args[0]
			opts.outputDir = args[1]
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runBuild(opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/vwww/config.yml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

func exactDirs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return nil
}

func runBuild(opts *buildOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	renderer, err := md.NewRenderer(cfg.RenderOptions())
	if err != nil {
		return err
	}

	printer := view.NewPrinter(opts.noColor || cfg.NoColor, opts.quiet)
	if opts.out != nil {
		printer.SetWriter(opts.out)
	}

	builder := site.NewBuilder(site.Options{
		InputDir:  opts.inputDir,
		OutputDir: opts.outputDir,
		Renderer:  renderer,
		Reporter:  printer,
		Logger:    slog.Default(),
	})

	result, err := builder.Run()
	if err != nil {
		return err
	}

	if !opts.quiet {
		printer.Success(fmt.Sprintf("Built %d page(s) into %s", len(result.Pages), opts.outputDir))
	}
	return nil
}
