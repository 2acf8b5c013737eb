package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rebelice/uuidview/internal/uuidfmt"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <hex>",
		Short: "Format a 32-digit hex value as a hyphenated UUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(args[0]), "0x"))
			if err != nil {
				return fmt.Errorf("invalid hex value: %w", err)
			}
			codec := uuidfmt.NewCodec(a.cfg.UUID.Lowercase)
			fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeBytes(raw))
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <uuid>",
		Short: "Print the query literal for a hyphenated UUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := uuidfmt.NewCodec(a.cfg.UUID.Lowercase)
			fmt.Fprintln(cmd.OutOrStdout(), codec.Decode(args[0]))
			return nil
		},
	}
}
