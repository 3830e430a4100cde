package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/vwww/internal/config"
	"github.com/open-cli-collective/vwww/internal/view"
	"github.com/open-cli-collective/vwww/pkg/md"
)

type showOptions struct {
	path    string
	noColor bool
	out     io.Writer
}

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective vwww configuration with source indicators.`,
		Example: `  # Show current config
  vwww config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(&showOptions{
				path:    configPath(cmd),
				noColor: noColor,
				out:     cmd.OutOrStdout(),
			})
		},
	}

	return cmd
}

func runShow(opts *showOptions) error {
	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(opts.path)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(opts.path)
	if err != nil {
		return err
	}

	printer := view.NewPrinter(opts.noColor, false)
	if opts.out != nil {
		printer.SetWriter(opts.out)
	}

	source := func(changed bool, envVars ...string) string {
		for _, v := range envVars {
			if os.Getenv(v) != "" {
				return v
			}
		}
		if fileErr == nil && changed {
			return "config"
		}
		return "default"
	}

	extensions := cfg.Markdown.Extensions
	if len(extensions) == 0 {
		extensions = md.DefaultExtensions
	}

	printer.KeyValue("Extensions", fmt.Sprintf("%s  (source: %s)", strings.Join(extensions, ", "),
		source(len(fileCfg.Markdown.Extensions) > 0, "VWWW_EXTENSIONS")))
	printer.KeyValue("Escape HTML", fmt.Sprintf("%t  (source: %s)", cfg.Markdown.EscapeHTML,
		source(fileCfg.Markdown.EscapeHTML, "VWWW_ESCAPE_HTML")))
	printer.KeyValue("Hard wraps", fmt.Sprintf("%t  (source: %s)", cfg.Markdown.HardWraps,
		source(fileCfg.Markdown.HardWraps, "VWWW_HARD_WRAPS")))
	printer.KeyValue("Heading IDs", fmt.Sprintf("%t  (source: %s)", cfg.Markdown.HeadingIDs,
		source(fileCfg.Markdown.HeadingIDs, "VWWW_HEADING_IDS")))
	printer.KeyValue("No color", fmt.Sprintf("%t  (source: %s)", cfg.NoColor,
		source(fileCfg.NoColor, "VWWW_NO_COLOR", "NO_COLOR")))

	printer.Text("")
	printer.Dim("Config file: %s", opts.path)
	if fileErr != nil {
		printer.Dim("(file not found)")
	}

	return nil
}
