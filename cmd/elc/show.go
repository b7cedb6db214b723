package main

import (
	"errors"
	"fmt"

	"github.com/franz/enginelib/internal/library"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show tracks and their analysis results",
	Long: `Without flags, list all tracks in the library. With --track, show the
full analysis stored for one track: BPM, duration, musical key,
loudness, beat grids, main cue points, and the set hot cues and loops.

Tracks that have not been analyzed yet are reported as such; analysis
rows that violate the store format are reported as corrupt.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Int64("track", 0, "show analysis for this track id")
}

func runShow(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("library")
	trackID, _ := cmd.Flags().GetInt64("track")

	lib, err := library.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer lib.Close()

	// An explicit --track 0 asks for track 0 (and fails as unknown);
	// only an absent flag means "list everything".
	if !cmd.Flags().Changed("track") {
		return listAllTracks(lib)
	}
	return showTrack(lib, trackID)
}

func listAllTracks(lib *library.Library) error {
	tracks, err := lib.ListTracks()
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	for _, t := range tracks {
		title := t.Title
		if title == "" {
			title = t.Filename
		}
		if t.Artist != "" {
			fmt.Printf("%6d  %s - %s\n", t.ID, t.Artist, title)
		} else {
			fmt.Printf("%6d  %s\n", t.ID, title)
		}
	}
	return nil
}

func showTrack(lib *library.Library, trackID int64) error {
	track, err := lib.GetTrack(trackID)
	if err != nil {
		return err
	}

	fmt.Printf("Track %d: %s - %s\n", track.ID, track.Artist, track.Title)
	fmt.Printf("Path: %s\n", track.Path)

	d, err := lib.LoadPerformanceData(trackID)
	if errors.Is(err, library.ErrNoPerformanceData) {
		fmt.Println("Not analyzed yet.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nBPM:       %.2f\n", d.BPM())
	fmt.Printf("Duration:  %s\n", d.Duration())
	fmt.Printf("Key:       %s\n", d.Key)
	fmt.Printf("Loudness:  %.3f\n", d.AverageLoudness)
	fmt.Printf("Samples:   %d @ %.0f Hz\n", d.TotalSamples, d.SampleRate)
	fmt.Printf("Main cue:  %.0f (default %.0f)\n", d.AdjustedMainCue, d.DefaultMainCue)
	fmt.Printf("Beat grid: beat %d @ %.0f .. beat %d @ %.0f\n",
		d.AdjustedBeatGrid.FirstBeatIndex, d.AdjustedBeatGrid.FirstBeatSampleOffset,
		d.AdjustedBeatGrid.LastBeatIndex, d.AdjustedBeatGrid.LastBeatSampleOffset)

	for i, cue := range d.HotCues {
		if !cue.IsSet {
			continue
		}
		fmt.Printf("Hot cue %d: %q @ %.0f\n", i+1, cue.Label, cue.SampleOffset)
	}
	for i, loop := range d.Loops {
		if !loop.IsSet() {
			continue
		}
		fmt.Printf("Loop %d:    %q @ %.0f .. %.0f\n", i+1, loop.Label, loop.StartOffset, loop.EndOffset)
	}

	return nil
}
