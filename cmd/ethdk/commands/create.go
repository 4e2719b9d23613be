package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// create: connect an account, generating a key when none is configured.
func createCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create an account and print its key and address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acct, err := st.wire.Accounts.CreateAccount(cmd.Context(), st.wire.Config.PrivateKey)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if st.wire.Config.PrivateKey == "" {
				fmt.Fprintf(out, "Private key: %s\n", acct.PrivateKey().Hex())
			}
			fmt.Fprintf(out, "Network:     %s (%d)\n", acct.Network().Name, acct.Network().ChainID)
			fmt.Fprintf(out, "Address:     %s\n", acct.Address().Hex())
			pk := acct.PublicKey()
			fmt.Fprintf(out, "Public key:  [%s, %s, %s, %s]\n", pk[0], pk[1], pk[2], pk[3])
			return nil
		},
	}
}
