package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dressing-calculator/app"
	"dressing-calculator/db"
	"dressing-calculator/pricing"
	"dressing-calculator/repository"
)

var (
	tariffPath string
	engine     *pricing.Engine
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dressing",
		Short:        "Dressing price calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Variables already set in the shell win over .env
			_ = godotenv.Load()

			cfg := app.LoadConfig()
			if tariffPath != "" {
				cfg.PricingConfig = tariffPath
				cfg.DatabaseURL = ""
			}

			tariff, err := app.LoadTariff(cmd.Context(), cfg, repository.NewTariffRepository())
			if err != nil {
				return err
			}
			engine, err = pricing.NewEngine(tariff)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return db.CloseDB()
		},
	}

	root.PersistentFlags().StringVar(&tariffPath, "tariff", "", "tariff JSON file (overrides PRICING_CONFIG and the database)")

	root.AddCommand(priceCmd(), zonesCmd(), quoteCmd())
	return root
}
