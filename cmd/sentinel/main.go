package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TrendSentinel/internal/config"
	"TrendSentinel/internal/logger"
)

const version = "v0.3.0"

func main() {
	var (
		cfgPath string
		cfg     *config.Config
	)

	rootCmd := &cobra.Command{
		Use:     "sentinel",
		Short:   "TrendSentinel - crash and roulette sequence predictors",
		Version: version,
		Long:    "TrendSentinel fits small statistical models to crash multipliers and roulette results and reports ranges, market forecasts, patterns and strategy replays.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfgPath == "" {
				cfgPath = config.PathFromEnv()
			}
			c, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return err
			}
			if err := logger.Setup(logger.Config{Level: c.Log.Level, Format: c.Log.Format}, nil); err != nil {
				return err
			}
			cfg = c
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default $CONFIG_PATH or configs/config.yaml)")

	getCfg := func() *config.Config { return cfg }
	rootCmd.AddCommand(
		newServeCmd(getCfg),
		newCrashCmd(getCfg),
		newRouletteCmd(getCfg),
		newSimulateCmd(getCfg),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
