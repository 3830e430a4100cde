package configcmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/vwww/internal/config"
	"github.com/open-cli-collective/vwww/internal/view"
)

type clearOptions struct {
	path    string
	noColor bool
	out     io.Writer
}

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the vwww configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  vwww config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runClear(&clearOptions{
				path:    configPath(cmd),
				noColor: noColor,
				out:     cmd.OutOrStdout(),
			})
		},
	}

	return cmd
}

func runClear(opts *clearOptions) error {
	err := os.Remove(opts.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	printer := view.NewPrinter(opts.noColor, false)
	if opts.out != nil {
		printer.SetWriter(opts.out)
	}

	if err != nil {
		printer.Success("No config file to remove")
	} else {
		printer.Success(fmt.Sprintf("Configuration cleared from %s", opts.path))
	}

	var activeVars []string
	for _, v := range config.EnvVars {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		printer.Dim("\nNote: Environment variables will still be used: %s", strings.Join(activeVars, ", "))
	}

	return nil
}
