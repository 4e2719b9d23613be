package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func balanceCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the wallet balance in ether",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := st.account(cmd.Context())
			if err != nil {
				return err
			}
			bal, err := acct.GetBalance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ETH\n", bal)
			return nil
		},
	}
}
