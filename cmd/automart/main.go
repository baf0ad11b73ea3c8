// Command automart runs the marketplace API and its maintenance tasks.
//
//	automart serve             # HTTP + gRPC health + scheduler
//	automart migrate           # apply pending migrations
//	automart migrate:rollback  # revert the last batch
//	automart migrate:status
//	automart seed              # demo catalog
//	automart route:list
//	automart tokens:purge      # delete expired revoked refresh tokens
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations and seeders so their init() funcs register them.
	_ "github.com/shashiranjanraj/automart/database/migrations"
	_ "github.com/shashiranjanraj/automart/database/seeders"
	"github.com/shashiranjanraj/automart/pkg/logger"
)

func main() {
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "automart",
	Short:         "automart: vehicle marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(tokensPurgeCmd)
}
