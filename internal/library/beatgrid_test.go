package library

import (
	"errors"
	"testing"
)

func TestNormalizeBeatGrid(t *testing.T) {
	// 1000 samples per beat, first beat at index 1.
	grid := BeatGrid{
		FirstBeatIndex:        1,
		FirstBeatSampleOffset: 0,
		LastBeatIndex:         5,
		LastBeatSampleOffset:  4000,
	}

	norm, err := NormalizeBeatGrid(grid, 44100)
	if err != nil {
		t.Fatalf("failed to normalize grid: %v", err)
	}

	if norm.FirstBeatIndex != -4 {
		t.Errorf("expected first beat index -4, got %d", norm.FirstBeatIndex)
	}
	if norm.FirstBeatSampleOffset != -5000 {
		t.Errorf("expected first beat offset -5000, got %f", norm.FirstBeatSampleOffset)
	}

	// 44100 - (-5000) = 49100 samples to cover, at 1000 per beat the
	// first beat at or past the end is beat 50 counted from -4.
	if norm.LastBeatIndex != 46 {
		t.Errorf("expected last beat index 46, got %d", norm.LastBeatIndex)
	}
	if norm.LastBeatSampleOffset != 45000 {
		t.Errorf("expected last beat offset 45000, got %f", norm.LastBeatSampleOffset)
	}
	if norm.LastBeatSampleOffset < 44100 {
		t.Error("expected last beat at or beyond track end")
	}
}

func TestNormalizeBeatGridIdempotent(t *testing.T) {
	grid := BeatGrid{
		FirstBeatIndex:        7,
		FirstBeatSampleOffset: 3500,
		LastBeatIndex:         11,
		LastBeatSampleOffset:  7500,
	}

	once, err := NormalizeBeatGrid(grid, 100000)
	if err != nil {
		t.Fatalf("failed to normalize grid: %v", err)
	}
	twice, err := NormalizeBeatGrid(once, 100000)
	if err != nil {
		t.Fatalf("failed to normalize grid a second time: %v", err)
	}

	if once != twice {
		t.Errorf("normalize is not idempotent: %+v != %+v", once, twice)
	}
}

func TestNormalizeBeatGridDegenerate(t *testing.T) {
	sameIndex := BeatGrid{
		FirstBeatIndex:        4,
		FirstBeatSampleOffset: 1000,
		LastBeatIndex:         4,
		LastBeatSampleOffset:  2000,
	}
	if _, err := NormalizeBeatGrid(sameIndex, 44100); !errors.Is(err, ErrDegenerateBeatGrid) {
		t.Errorf("expected ErrDegenerateBeatGrid for equal indices, got %v", err)
	}

	sameOffset := BeatGrid{
		FirstBeatIndex:        0,
		FirstBeatSampleOffset: 1000,
		LastBeatIndex:         8,
		LastBeatSampleOffset:  1000,
	}
	if _, err := NormalizeBeatGrid(sameOffset, 44100); !errors.Is(err, ErrDegenerateBeatGrid) {
		t.Errorf("expected ErrDegenerateBeatGrid for equal offsets, got %v", err)
	}
}
