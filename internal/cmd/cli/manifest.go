package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waldiez/wid/internal/config"
	"github.com/waldiez/wid/pkg/log"
	"github.com/waldiez/wid/pkg/manifest"
	"github.com/waldiez/wid/pkg/wid"
)

func newManifestCommand(logger log.Logger, cfg config.Config) *cobra.Command {
	root := &cobra.Command{Use: "manifest", Short: "Manifest container commands"}
	root.AddCommand(newManifestPackCommand(logger, cfg))
	root.AddCommand(newManifestUnpackCommand(logger))
	root.AddCommand(newManifestVerifyCommand())
	root.AddCommand(newManifestInspectCommand())
	return root
}

func newManifestPackCommand(logger log.Logger, cfg config.Config) *cobra.Command {
	var (
		out      string
		id       string
		node     string
		dataType string
		meta     []string
		sidecar  bool
	)
	cmd := &cobra.Command{
		Use:   "pack <payload-file>",
		Short: "Wrap a payload file in a manifest container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if id == "" {
				// Conventional usage: a freshly generated WID as the
				// manifest id.
				id = wid.Default().Next()
			}
			m := manifest.New(id)
			m.Node = node
			if dataType != "" {
				m.DataType = dataType
			}
			for _, kv := range meta {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--meta wants key=value, got %q", kv)
				}
				if m.Metadata == nil {
					m.Metadata = map[string]any{}
				}
				m.Metadata[k] = v
			}

			f := manifest.NewFile(m, payload)
			mode := manifest.ModeEmbedded
			if sidecar {
				mode = manifest.ModeSidecar
				if out == "" {
					out = args[0]
				}
			} else if out == "" {
				out = args[0] + ".syn"
			}
			if err := f.Save(out, mode); err != nil {
				return err
			}
			logger.Info("packed manifest",
				log.String("id", m.ID),
				log.String("out", out),
				log.Int("payload_bytes", len(payload)))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: <payload>.syn, or the payload path in sidecar mode)")
	cmd.Flags().StringVar(&id, "id", "", "manifest id (default: a freshly generated WID)")
	cmd.Flags().StringVarP(&node, "node", "N", cfg.Node, "originating node")
	cmd.Flags().StringVar(&dataType, "type", "", "payload data type")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "metadata entry as key=value (repeatable)")
	cmd.Flags().BoolVar(&sidecar, "sidecar", false, "write payload + .manifest.json sidecar instead of one embedded file")
	return cmd
}

func newManifestUnpackCommand(logger log.Logger) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "unpack <file>",
		Short: "Extract the payload from a manifest container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			if !f.Verify() {
				return fmt.Errorf("payload hash mismatch for %s", args[0])
			}
			if out == "" {
				out = f.Manifest.ID
			}
			if err := os.WriteFile(out, f.Payload, 0o644); err != nil {
				return err
			}
			logger.Info("unpacked payload",
				log.String("id", f.Manifest.ID),
				log.String("out", out),
				log.Int("payload_bytes", len(f.Payload)))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "payload output path (default: the manifest id)")
	return cmd
}

func newManifestVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Recompute the payload hash and compare it with the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			if !f.Verify() {
				return fmt.Errorf("payload hash mismatch for %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newManifestInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the manifest of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(f.Manifest, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
