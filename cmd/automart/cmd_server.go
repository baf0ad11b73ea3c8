package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/internal/kernel"
	"github.com/shashiranjanraj/automart/internal/server"
)

// automart serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server, the gRPC health server and the scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(cmd.Context()); err != nil {
			return err
		}
		return server.Start(cmd.Context())
	},
}

// automart route:list needs no database.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		routes := kernel.NewHTTPKernel().Routes()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range routes {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// automart tokens:purge runs the scheduled purge once.
var tokensPurgeCmd = &cobra.Command{
	Use:   "tokens:purge",
	Short: "Delete revoked refresh tokens that have expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(cmd.Context()); err != nil {
			return err
		}
		n, err := services.NewAuthService().PurgeExpiredTokens(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Purged %d expired revoked token(s).\n", n)
		return nil
	},
}
