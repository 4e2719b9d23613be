package commands

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ethdk/internal/app"
	"ethdk/internal/services/account"
)

type state struct {
	overrides app.Overrides
	wire      *app.Wire
}

func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:          "ethdk",
		Short:        "BLS smart-contract wallet CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(st.overrides)
			if err != nil {
				return err
			}
			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			st.wire = w
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.wire != nil {
				st.wire.Log.Sync()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&st.overrides.Network, "network", "", "network name (default localhost)")
	f.StringVar(&st.overrides.NetworksFile, "networks-file", "", "YAML network catalogue")
	f.StringVar(&st.overrides.RPCURL, "rpc", "", "JSON-RPC URL override")
	f.StringVar(&st.overrides.AggregatorURL, "aggregator", "", "aggregator base URL override")
	f.StringVar(&st.overrides.PrivateKey, "key", "", "BLS private key (or ETHDK_PRIVATE_KEY)")

	root.AddCommand(
		keygenCmd(st),
		createCmd(st),
		addressCmd(st),
		sendCmd(st),
		trusteeCmd(st),
		balanceCmd(st),
	)
	return root
}

// account opens the account for the configured key, which is required.
func (st *state) account(ctx context.Context) (*account.Account, error) {
	key := st.wire.Config.PrivateKey
	if key == "" {
		return nil, errors.New("private key required (--key or ETHDK_PRIVATE_KEY)")
	}
	return st.wire.Accounts.CreateAccount(ctx, key)
}
