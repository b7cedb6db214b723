package main

import (
	"fmt"

	"github.com/franz/enginelib/internal/library"
	"github.com/franz/enginelib/internal/schema"
	"github.com/franz/enginelib/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a fresh library",
	Long: `Create a new, empty library in the target directory.

Both stores (m.db and p.db) are built from scratch at the requested
schema version, verified, and stamped with a fresh library identifier.
The directory is created if it does not exist; it must not already
contain a library.`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("schema-version", schema.VersionLatest.String(),
		"schema version to create the stores at")
}

func runCreate(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("library")

	raw, _ := cmd.Flags().GetString("schema-version")
	version, err := schema.ParseVersion(raw)
	if err != nil {
		return err
	}

	if library.Exists(dir) {
		return fmt.Errorf("directory %s already contains a library", dir)
	}

	lib, err := library.Create(dir, version)
	if err != nil {
		return fmt.Errorf("failed to create library: %w", err)
	}
	defer lib.Close()

	util.SuccessLog("Created library %s at %s (schema %s)", lib.UUID(), dir, lib.Version())
	return nil
}
