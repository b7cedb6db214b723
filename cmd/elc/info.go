package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/franz/enginelib/internal/library"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show library identity, schema version and contents",
	Long: `Open a library, verify both stores against their recorded schema
version, and print the library identifier, version, store paths and
track count. A non-zero exit means the library failed verification.`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("library")

	lib, err := library.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	count, err := lib.TrackCount()
	if err != nil {
		return err
	}

	fmt.Printf("Library:        %s\n", lib.DirectoryPath())
	fmt.Printf("UUID:           %s\n", lib.UUID())
	fmt.Printf("Schema version: %s\n", lib.Version())
	fmt.Printf("Music store:    %s (%s)\n", lib.MusicDBPath(), storeSize(lib.MusicDBPath()))
	fmt.Printf("Perf store:     %s (%s)\n", lib.PerformanceDBPath(), storeSize(lib.PerformanceDBPath()))
	fmt.Printf("Tracks:         %s\n", humanize.Comma(int64(count)))

	return nil
}

func storeSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return humanize.Bytes(uint64(info.Size()))
}
