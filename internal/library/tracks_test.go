package library

import (
	"errors"
	"testing"
)

func TestTrackInsertAndRetrieve(t *testing.T) {
	lib := createTestLibrary(t)

	track := &Track{
		Path:            "/music/artist/album/01 track.flac",
		Filename:        "01 track.flac",
		Title:           "Test Title",
		Artist:          "Test Artist",
		Album:           "Test Album",
		Genre:           "Techno",
		Year:            2019,
		DurationSeconds: 421,
		Bitrate:         1411,
	}

	if err := lib.AddTrack(track); err != nil {
		t.Fatalf("failed to add track: %v", err)
	}
	if track.ID == 0 {
		t.Error("expected track ID to be set after insert")
	}

	got, err := lib.GetTrack(track.ID)
	if err != nil {
		t.Fatalf("failed to get track: %v", err)
	}
	if *got != *track {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, track)
	}

	exists, err := lib.TrackExists(track.ID)
	if err != nil {
		t.Fatalf("failed to check track existence: %v", err)
	}
	if !exists {
		t.Error("expected track to exist")
	}

	exists, err = lib.TrackExists(track.ID + 100)
	if err != nil {
		t.Fatalf("failed to check track existence: %v", err)
	}
	if exists {
		t.Error("expected unknown id to not exist")
	}
}

func TestGetTrackNotFound(t *testing.T) {
	lib := createTestLibrary(t)

	if _, err := lib.GetTrack(7); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound, got %v", err)
	}
}

func TestListTracksAndCount(t *testing.T) {
	lib := createTestLibrary(t)

	count, err := lib.TrackCount()
	if err != nil {
		t.Fatalf("failed to count tracks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty library, got %d tracks", count)
	}

	for i := 0; i < 3; i++ {
		addTestTrack(t, lib)
	}

	tracks, err := lib.ListTracks()
	if err != nil {
		t.Fatalf("failed to list tracks: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	for i := 1; i < len(tracks); i++ {
		if tracks[i-1].ID >= tracks[i].ID {
			t.Error("expected tracks ordered by id")
		}
	}

	count, err = lib.TrackCount()
	if err != nil {
		t.Fatalf("failed to count tracks: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 tracks, got %d", count)
	}
}
