package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/waldiez/wid/internal/config"
	"github.com/waldiez/wid/pkg/wid"
)

func newStreamCommand(cfg config.Config) *cobra.Command {
	var (
		flags genFlags
		hlc   bool
		node  string
		count int
	)
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Emit a stream of identifiers (count 0 streams until interrupted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := flags.unit()
			if err != nil {
				return err
			}

			var seq func(yield func(string) bool)
			if hlc {
				g, err := wid.NewHLCWithTimeUnit(node, flags.digits, flags.padding, unit)
				if err != nil {
					return err
				}
				seq = g.All()
			} else {
				g, err := wid.NewWithTimeUnit(flags.digits, flags.padding, unit)
				if err != nil {
					return err
				}
				seq = g.All()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			n := 0
			// Cancellation is cooperative: the context is checked between
			// elements, never mid-generation.
			for id := range seq {
				fmt.Fprintln(w, id)
				n++
				if count > 0 && n >= count {
					break
				}
				if ctx.Err() != nil {
					break
				}
			}
			return nil
		},
	}
	addGenFlags(cmd, cfg, &flags)
	cmd.Flags().BoolVar(&hlc, "hlc", false, "stream HLC-WIDs")
	cmd.Flags().StringVarP(&node, "node", "N", cfg.Node, "node name (HLC only)")
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of identifiers; 0 means infinite")
	return cmd
}
