package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
	"github.com/dustin/go-humanize"
	"github.com/franz/enginelib/internal/library"
	"github.com/franz/enginelib/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Import audio files as tracks",
	Long: `Read the metadata tags of the given audio files and insert one track
per file into the music store. Files whose tags cannot be read are
imported with path and filename only.

Importing records track metadata; it does not analyze audio, so the
tracks have no performance data until the hardware (or another tool)
analyzes them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("library")

	lib, err := library.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var imported int
	var totalBytes int64
	for _, path := range args {
		bar.Add(1)

		track, size, err := trackFromFile(path)
		if err != nil {
			util.WarnLog("Skipping %s: %v", path, err)
			continue
		}
		if err := lib.AddTrack(track); err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}

		util.DebugLog("Imported %s as track %d", path, track.ID)
		imported++
		totalBytes += size
	}
	bar.Finish()

	util.SuccessLog("Imported %d of %d files (%s)",
		imported, len(args), humanize.Bytes(uint64(totalBytes)))
	return nil
}

// trackFromFile builds a Track row from an audio file, falling back to
// path-derived fields when the file carries no readable tags.
func trackFromFile(path string) (*library.Track, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, err
	}

	track := &library.Track{
		Path:     path,
		Filename: filepath.Base(path),
	}

	meta, err := tag.ReadFrom(f)
	if err != nil {
		// Untagged files are still importable.
		util.DebugLog("No readable tags in %s: %v", path, err)
		return track, info.Size(), nil
	}

	track.Title = meta.Title()
	track.Artist = meta.Artist()
	track.Album = meta.Album()
	track.Genre = meta.Genre()
	track.Year = meta.Year()

	return track, info.Size(), nil
}
