package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waldiez/wid/internal/config"
	"github.com/waldiez/wid/pkg/log"
	"github.com/waldiez/wid/pkg/wid"
)

// NewRoot constructs the root command with all subcommands registered.
func NewRoot(logger log.Logger, cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "wid",
		Short:         "Sortable identifier and manifest toolkit",
		Long:          "wid generates sortable, human-readable identifiers (plain and HLC) and packs payloads into manifest containers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newNewCommand(logger, cfg))
	root.AddCommand(newHLCCommand(logger, cfg))
	root.AddCommand(newValidateCommand(cfg))
	root.AddCommand(newInspectCommand(cfg))
	root.AddCommand(newStreamCommand(cfg))
	root.AddCommand(newManifestCommand(logger, cfg))
	return root
}

// genFlags are the grammar parameters shared by every identifier command.
type genFlags struct {
	digits   int
	padding  int
	timeUnit string
}

func addGenFlags(cmd *cobra.Command, cfg config.Config, f *genFlags) {
	cmd.Flags().IntVarP(&f.digits, "digits", "W", cfg.Digits, "sequence/counter digit width")
	cmd.Flags().IntVarP(&f.padding, "padding", "Z", cfg.Padding, "random hex padding width")
	cmd.Flags().StringVarP(&f.timeUnit, "time-unit", "T", cfg.TimeUnit, "timestamp granularity: sec or ms")
}

func (f *genFlags) unit() (wid.TimeUnit, error) {
	u, ok := wid.ParseTimeUnit(f.timeUnit)
	if !ok {
		return wid.Sec, fmt.Errorf("time-unit must be sec or ms, got %q", f.timeUnit)
	}
	return u, nil
}
