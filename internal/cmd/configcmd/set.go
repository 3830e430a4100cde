package configcmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/vwww/internal/config"
	"github.com/open-cli-collective/vwww/internal/view"
)

type setOptions struct {
	path    string
	key     string
	value   string
	noColor bool
	out     io.Writer
}

// setters apply a string value to one config key.
var setters = map[string]func(cfg *config.Config, value string) error{
	"markdown.extensions": func(cfg *config.Config, value string) error {
		cfg.Markdown.Extensions = config.SplitList(value)
		return nil
	},
	"markdown.escape_html": boolSetter(func(cfg *config.Config) *bool { return &cfg.Markdown.EscapeHTML }),
	"markdown.hard_wraps":  boolSetter(func(cfg *config.Config) *bool { return &cfg.Markdown.HardWraps }),
	"markdown.heading_ids": boolSetter(func(cfg *config.Config) *bool { return &cfg.Markdown.HeadingIDs }),
	"no_color":             boolSetter(func(cfg *config.Config) *bool { return &cfg.NoColor }),
}

func boolSetter(field func(cfg *config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		*field(cfg) = b
		return nil
	}
}

func settableKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewCmdSet creates the config set command.
func NewCmdSet() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set one value in the vwww configuration file, creating the file if needed.

Keys: ` + strings.Join(settableKeys(), ", "),
		Example: `  # Enable GitHub flavored markdown and footnotes
  vwww config set markdown.extensions gfm,footnote

  # Turn on heading ids
  vwww config set markdown.heading_ids true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runSet(&setOptions{
				path:    configPath(cmd),
				key:     args[0],
				value:   args[1],
				noColor: noColor,
				out:     cmd.OutOrStdout(),
			})
		},
	}

	return cmd
}

func runSet(opts *setOptions) error {
	set, ok := setters[opts.key]
	if !ok {
		return fmt.Errorf("unknown config key %q (supported: %s)", opts.key, strings.Join(settableKeys(), ", "))
	}

	cfg, err := config.Load(opts.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		cfg = &config.Config{}
	}

	if err := set(cfg, opts.value); err != nil {
		return fmt.Errorf("%s: %w", opts.key, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(opts.path); err != nil {
		return err
	}

	printer := view.NewPrinter(opts.noColor, false)
	if opts.out != nil {
		printer.SetWriter(opts.out)
	}
	printer.Success(fmt.Sprintf("Set %s in %s", opts.key, opts.path))

	return nil
}
