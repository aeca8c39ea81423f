// Package main is the entry point for the bizlenz-cli application.
// It registers the database administration sub-commands and executes the
// command-line interface.
package main

import (
	"fmt"
	"log"

	commands "github.com/BizLenz/api/cmd/bizlenz-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "bizlenz-cli",
		Short: "BizLenz administration CLI",
		Long: `bizlenz-cli is a command-line tool for administering the BizLenz
database. It migrates the schema and resets development databases.

Configuration is read from the file named by --config (or the CONFIG_PATH
environment variable) with BIZLENZ_* environment overrides.`,
	}

	if err := commands.InitDatabaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}
