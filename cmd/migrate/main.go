package main

import (
	"errors"
	"os"

	"github.com/deouf-dev/talemy-api/database"
	"github.com/deouf-dev/talemy-api/internal/config"
	"github.com/deouf-dev/talemy-api/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the Talemy database schema",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(database.AutoMigrate)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Insert the default subjects and the first admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			if err := database.SeedSubjects(db); err != nil {
				return err
			}
			return database.SeedFirstAdmin(db, cfg.FirstAdminEmail, cfg.FirstAdminPassword)
		},
	})

	var confirmed bool
	drop := &cobra.Command{
		Use:   "drop",
		Short: "Drop every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("refusing to drop tables without --yes")
			}
			return withDB(database.DropAll)
		},
	}
	drop.Flags().BoolVar(&confirmed, "yes", false, "confirm dropping all tables")
	root.AddCommand(drop)

	return root
}

func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Server.Env)
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func withDB(fn func(*gorm.DB) error) error {
	_, db, err := connect()
	if err != nil {
		return err
	}
	return fn(db)
}
