package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/Astemirdum/lending-service/lending/migrations"
	"github.com/Astemirdum/lending-service/pkg/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down|status",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.StorageDriver != config.StoragePostgres {
		return errors.Errorf("migrations need the postgres driver, got %q", cfg.StorageDriver)
	}
	db, err := postgres.NewPostgresDB(cmd.Context(), &cfg.Database, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	return postgres.Migrate(db, migrations.MigrationFiles, args[0])
}
