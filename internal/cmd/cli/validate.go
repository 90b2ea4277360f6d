package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/waldiez/wid/internal/config"
	"github.com/waldiez/wid/pkg/wid"
)

func newValidateCommand(cfg config.Config) *cobra.Command {
	var (
		flags genFlags
		hlc   bool
	)
	cmd := &cobra.Command{
		Use:   "validate <wid>",
		Short: "Check a WID or HLC-WID against the grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := flags.unit()
			if err != nil {
				return err
			}
			ok := wid.ValidateWID(args[0], flags.digits, flags.padding, unit)
			if hlc {
				ok = wid.ValidateHLCWID(args[0], flags.digits, flags.padding, unit)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return fmt.Errorf("%q is not a valid identifier for W=%d Z=%d %s", args[0], flags.digits, flags.padding, unit)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	addGenFlags(cmd, cfg, &flags)
	cmd.Flags().BoolVar(&hlc, "hlc", false, "validate against the HLC-WID grammar")
	return cmd
}

// inspectResult is the JSON shape emitted by `wid inspect --json`.
type inspectResult struct {
	Raw       string `json:"raw"`
	Timestamp string `json:"timestamp"`
	Sequence  int    `json:"sequence"`
	Node      string `json:"node,omitempty"`
	Padding   string `json:"padding,omitempty"`
}

func newInspectCommand(cfg config.Config) *cobra.Command {
	var (
		flags  genFlags
		hlc    bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <wid>",
		Short: "Decode a WID or HLC-WID into its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := flags.unit()
			if err != nil {
				return err
			}

			var res inspectResult
			if hlc {
				p, err := wid.ParseHLCWID(args[0], flags.digits, flags.padding, unit)
				if err != nil {
					return err
				}
				res = inspectResult{Raw: p.Raw, Timestamp: p.Timestamp.Format(time.RFC3339Nano), Sequence: p.LogicalCounter, Node: p.Node, Padding: p.Padding}
			} else {
				p, err := wid.ParseWID(args[0], flags.digits, flags.padding, unit)
				if err != nil {
					return err
				}
				res = inspectResult{Raw: p.Raw, Timestamp: p.Timestamp.Format(time.RFC3339Nano), Sequence: p.Sequence, Padding: p.Padding}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				b, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(b))
				return nil
			}
			fmt.Fprintf(w, "timestamp: %s\n", res.Timestamp)
			fmt.Fprintf(w, "sequence:  %d\n", res.Sequence)
			if res.Node != "" {
				fmt.Fprintf(w, "node:      %s\n", res.Node)
			}
			if res.Padding != "" {
				fmt.Fprintf(w, "padding:   %s\n", res.Padding)
			}
			return nil
		},
	}
	addGenFlags(cmd, cfg, &flags)
	cmd.Flags().BoolVar(&hlc, "hlc", false, "decode as an HLC-WID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}
