package cmd

import (
	"github.com/dcode-github/real_estate_portal/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "estate",
		Short:         "Real estate listing portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
		SeedCmd(),
		AdminCmd(),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// openDB connects with the .env and environment configuration.
func openDB() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
