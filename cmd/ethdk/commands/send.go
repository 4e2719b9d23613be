package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ethdk/internal/domain"
)

// send <to>: sign one call, or every call in --batch, and submit them as a
// single operation.
func sendCmd(st *state) *cobra.Command {
	var (
		value string
		data  string
		batch string
	)
	cmd := &cobra.Command{
		Use:   "send [to]",
		Short: "Sign and submit a transaction bundle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := sendParams(args, value, data, batch)
			if err != nil {
				return err
			}
			acct, err := st.account(cmd.Context())
			if err != nil {
				return err
			}
			res, err := acct.SendTransaction(cmd.Context(), txs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bundle hash: %s\n", res.Hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "wei to send (default 0)")
	cmd.Flags().StringVar(&data, "data", "", "hex calldata (default 0x)")
	cmd.Flags().StringVar(&batch, "batch", "", `JSON file with [{"to","value","data"}, ...]`)
	return cmd
}

func sendParams(args []string, value, data, batch string) ([]domain.SendTransactionParams, error) {
	if batch == "" {
		if len(args) != 1 {
			return nil, errors.New("recipient required (or --batch)")
		}
		return []domain.SendTransactionParams{{To: args[0], Value: value, Data: data}}, nil
	}
	if len(args) != 0 || value != "" || data != "" {
		return nil, errors.New("--batch cannot be combined with a recipient, --value or --data")
	}
	raw, err := os.ReadFile(batch)
	if err != nil {
		return nil, errors.Wrap(err, "reading batch")
	}
	var txs []domain.SendTransactionParams
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, errors.Wrap(err, "parsing batch")
	}
	return txs, nil
}
