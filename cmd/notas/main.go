// Package main is the entry point for the notas server binary.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/notasapp/notas/internal/config"
	"github.com/notasapp/notas/internal/server"
)

const version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "notas",
		Short: "Personal notes with per-user status vocabularies",
		Long: `Notas is a small notes server. Each note carries a status drawn from its
owner's personal vocabulary of status names, which the owner can extend and
prune. The server refuses to remove a status while notes still reference it.

Configuration comes from an optional YAML file plus the PORT, NOTAS_DB and
NOTAS_LOG_LEVEL environment variables.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("notas version %s\n", version)
		},
	})

	return cmd
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	srv, err := server.New(cfg.Server, logger)
	if err != nil {
		return err
	}

	return srv.Start()
}
