package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addressCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address for the configured key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := st.account(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), acct.Address().Hex())
			return nil
		},
	}
}
