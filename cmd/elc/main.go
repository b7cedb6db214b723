package main

import (
	"fmt"
	"os"

	"github.com/franz/enginelib/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "elc",
		Short: "Engine Library Console - inspect and manage DJ hardware libraries",
		Long: `elc (Engine Library Console) works with the paired SQLite stores that
DJ hardware keeps on its media: a music store (m.db) with track and crate
metadata and a performance store (p.db) with per-track analysis results.

It can create fresh libraries at a chosen schema version, verify and
inspect existing ones, import tracks from audio files, and show the
analysis (BPM, key, beat grids, cues, loops) stored for a track.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./elc.yaml)")
	rootCmd.PersistentFlags().StringP("library", "l", ".", "library directory (holds m.db and p.db)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath(".")
		viper.SetConfigName("elc")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("ELC")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.DebugLog("Using config file: %s", viper.ConfigFileUsed())
	}

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
	util.SetColors(util.IsTerminal(os.Stderr.Fd()))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
