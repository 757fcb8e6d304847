package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Linkshelf API
// @version 1.0
// @description A small bookmark manager: save links with a description and a favorite flag.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	rootCmd := &cobra.Command{
		Use:   "linkshelf-server",
		Short: "A bookmark manager REST API",
		// serve is the default so the bare binary starts the server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
