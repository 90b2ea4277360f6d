package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/waldiez/wid/internal/config"
	"github.com/waldiez/wid/internal/statestore"
	"github.com/waldiez/wid/pkg/log"
	"github.com/waldiez/wid/pkg/wid"
)

func newNewCommand(logger log.Logger, cfg config.Config) *cobra.Command {
	var (
		flags   genFlags
		count   int
		persist string
		dataDir string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate plain WIDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := flags.unit()
			if err != nil {
				return err
			}
			g, err := wid.NewWithTimeUnit(flags.digits, flags.padding, unit)
			if err != nil {
				return err
			}
			if persist != "" {
				return generatePersistent(cmd, logger, dataDir, count, func(s *statestore.Store) (string, error) {
					return s.Next(g, persist)
				})
			}
			for _, id := range g.NextN(count) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	addGenFlags(cmd, cfg, &flags)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers to generate")
	cmd.Flags().StringVar(&persist, "persist", "", "persist clock state under this name in the data dir")
	cmd.Flags().StringVar(&dataDir, "data-dir", cfg.DataDir, "data directory for persistent state")
	return cmd
}

func newHLCCommand(logger log.Logger, cfg config.Config) *cobra.Command {
	hlc := &cobra.Command{Use: "hlc", Short: "HLC-WID commands"}

	var (
		flags   genFlags
		node    string
		count   int
		persist string
		dataDir string
	)
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Generate node-aware HLC-WIDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := flags.unit()
			if err != nil {
				return err
			}
			g, err := wid.NewHLCWithTimeUnit(node, flags.digits, flags.padding, unit)
			if err != nil {
				return err
			}
			if persist != "" {
				return generatePersistent(cmd, logger, dataDir, count, func(s *statestore.Store) (string, error) {
					return s.NextHLC(g, persist)
				})
			}
			for _, id := range g.NextN(count) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	addGenFlags(newCmd, cfg, &flags)
	newCmd.Flags().StringVarP(&node, "node", "N", cfg.Node, "node name")
	newCmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers to generate")
	newCmd.Flags().StringVar(&persist, "persist", "", "persist clock state under this name in the data dir")
	newCmd.Flags().StringVar(&dataDir, "data-dir", cfg.DataDir, "data directory for persistent state")

	hlc.AddCommand(newCmd)
	return hlc
}

// generatePersistent runs next() against a freshly opened state store,
// once per requested identifier.
func generatePersistent(cmd *cobra.Command, logger log.Logger, dataDir string, count int, next func(*statestore.Store) (string, error)) error {
	store, err := statestore.Open(statestore.Options{
		DataDir: filepath.Join(dataDir, "state"),
		Sync:    true,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	for i := 0; i < count; i++ {
		id, err := next(store)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
