package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"carpet-estimator/internal/common/config"
	"carpet-estimator/internal/estimator/engine"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "estimator",
	Short:        "Measure rooms from floor plans and produce carpet quotes",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func engineSettings() engine.Settings {
	return engine.Settings{
		Scale:        cfg.PixelsToMetres,
		RollWidth:    cfg.RollWidth,
		HistoryDepth: cfg.HistoryDepth,
	}
}
