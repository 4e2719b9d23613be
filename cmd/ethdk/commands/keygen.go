package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func keygenCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a fresh BLS private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := st.wire.Accounts.GeneratePrivateKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), k.Hex())
			return nil
		},
	}
}
