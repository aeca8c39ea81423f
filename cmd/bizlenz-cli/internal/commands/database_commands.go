package commands

import (
	"fmt"

	"github.com/BizLenz/api/internal/infrastructure/persistence"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DatabaseCommandHandler encapsulates logic for schema administration via CLI.
type DatabaseCommandHandler struct {
	logger logger.Logger
}

// NewDatabaseCommandHandler initializes and returns a DatabaseCommandHandler
// instance with a configured logger.
func NewDatabaseCommandHandler() (*DatabaseCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &DatabaseCommandHandler{
		logger: loggerInstance,
	}, nil
}

// MigrateCmd creates or updates the schema for all application tables
func (commandHandler *DatabaseCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) {
	settings, err := commandHandler.databaseSettings(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	db, err := persistence.NewDBConnection(*settings)
	if err != nil {
		commandHandler.logger.Error("failed to connect: ", err)
		return
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.logger.Warn("failed to close connection: ", err)
		}
	}()

	if err := persistence.Migrate(db); err != nil {
		commandHandler.logger.Error("migration failed: ", err)
		return
	}

	commandHandler.logger.Info("Schema migrated successfully")
}

// ResetDBCmd drops the configured database. Development utility only.
func (commandHandler *DatabaseCommandHandler) ResetDBCmd(cmd *cobra.Command, _ []string) {
	settings, err := commandHandler.databaseSettings(cmd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if settings.Type != config.PostgresDbType {
		commandHandler.logger.Error("reset-db only supports postgres databases")
		return
	}
	if settings.Name == "" {
		commandHandler.logger.Error("database name is not configured")
		return
	}

	confirmed, err := cmd.Flags().GetBool("yes")
	if err != nil || !confirmed {
		commandHandler.logger.Error("refusing to drop database without --yes")
		return
	}

	adminDSN := settings.DSN + " dbname=postgres"
	if err := persistence.DropDatabase(adminDSN, settings.Name); err != nil {
		commandHandler.logger.Error("reset failed: ", err)
		return
	}

	commandHandler.logger.Info("Dropped database ", settings.Name)
}

func (commandHandler *DatabaseCommandHandler) databaseSettings(cmd *cobra.Command) (*config.DatabaseSettings, error) {
	flagValue, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	cfg, err := config.InitializeRestConfig(resolveConfigPath(flagValue))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg.Database, nil
}

// InitDatabaseCommands registers the database administration commands.
func InitDatabaseCommands(rootCmd *cobra.Command) error {
	handler, err := NewDatabaseCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create database command handler: %w", err)
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run:   handler.MigrateCmd,
	}
	migrateCmd.Flags().String("config", "", "Path to the configuration file")
	rootCmd.AddCommand(migrateCmd)

	resetCmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop the configured database (development only)",
		Run:   handler.ResetDBCmd,
	}
	resetCmd.Flags().String("config", "", "Path to the configuration file")
	resetCmd.Flags().Bool("yes", false, "Confirm the drop")
	rootCmd.AddCommand(resetCmd)

	return nil
}
