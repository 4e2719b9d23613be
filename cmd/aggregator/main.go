package main

import (
	"os"

	"github.com/spf13/cobra"

	"ethdk/internal/app"
	"ethdk/internal/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr      string
		overrides app.Overrides
		chainID   int64
	)
	cmd := &cobra.Command{
		Use:          "aggregator",
		Short:        "In-memory BLS bundle aggregator for development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(overrides)
			if err != nil {
				return err
			}
			if chainID == 0 {
				chainID = cfg.Network.ChainID
			}
			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return err
			}
			defer log.Sync()

			srv := NewServer(chainID, log)
			log.Info("aggregator listening", "addr", addr, "chain_id", chainID, "network", cfg.Network.Name)
			return srv.Engine.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().Int64Var(&chainID, "chain-id", 0, "chain id bundles are signed for (default: the network's)")
	cmd.Flags().StringVar(&overrides.Network, "network", "", "network name (default localhost)")
	cmd.Flags().StringVar(&overrides.NetworksFile, "networks-file", "", "YAML network catalogue")
	return cmd
}
