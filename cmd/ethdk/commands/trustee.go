package commands

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func trusteeCmd(st *state) *cobra.Command {
	var phrase string
	cmd := &cobra.Command{
		Use:   "trustee <address>",
		Short: "Let <address> recover this wallet with a recovery phrase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if phrase == "" {
				return errors.New("recovery phrase required (--phrase)")
			}
			acct, err := st.account(cmd.Context())
			if err != nil {
				return err
			}
			res, err := acct.SetTrustedAccount(cmd.Context(), phrase, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bundle hash: %s\n", res.Hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&phrase, "phrase", "", "recovery phrase")
	return cmd
}
