package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/edh-power/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down|version",
	Short:     "Manage the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	mgr, err := storage.NewMigrationManager(path)
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()

	out := cmd.OutOrStdout()
	switch args[0] {
	case "up":
		if err := mgr.Up(); err != nil {
			return err
		}
	case "down":
		if err := mgr.Down(); err != nil {
			return err
		}
	}

	v, dirty, err := mgr.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "schema version %d", v)
	if dirty {
		fmt.Fprint(out, " (dirty)")
	}
	fmt.Fprintln(out)
	return nil
}
