package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/franz/enginelib/internal/library"
	"github.com/franz/enginelib/internal/schema"
	"github.com/spf13/viper"
)

func createShowTestLibrary(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "Engine Library")
	lib, err := library.Create(dir, schema.VersionLatest)
	if err != nil {
		t.Fatalf("failed to create library: %v", err)
	}
	defer lib.Close()

	track := &library.Track{Filename: "track.mp3", Title: "Test Track"}
	if err := lib.AddTrack(track); err != nil {
		t.Fatalf("failed to add track: %v", err)
	}

	return dir
}

func TestRunShowTrackFlagDispatch(t *testing.T) {
	dir := createShowTestLibrary(t)
	viper.Set("library", dir)
	defer viper.Set("library", ".")

	// Without --track the command lists the library.
	if err := runShow(showCmd, nil); err != nil {
		t.Errorf("expected listing to succeed, got %v", err)
	}

	// An explicit --track 0 must be reported as an unknown track, not
	// silently fall back to listing.
	if err := showCmd.Flags().Set("track", "0"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	err := runShow(showCmd, nil)
	if !errors.Is(err, library.ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound for explicit track 0, got %v", err)
	}
}

func TestShowTrackUnknownID(t *testing.T) {
	dir := createShowTestLibrary(t)

	lib, err := library.Open(dir)
	if err != nil {
		t.Fatalf("failed to open library: %v", err)
	}
	defer lib.Close()

	if err := showTrack(lib, 0); !errors.Is(err, library.ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound for track 0, got %v", err)
	}
}
