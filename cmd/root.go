package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "strategy-backtest",
	Short: "Aggregate strategy backtest results into one combined report",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./config.yaml)")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(aggregateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
