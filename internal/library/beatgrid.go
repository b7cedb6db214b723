package library

import (
	"fmt"
	"math"
)

// BeatGrid describes a track's tempo map with two beats, each given as a
// beat index and a sample offset. The offsets may lie outside the actual
// track.
//
// Analysis by the hardware places the first beat at index -4 and the last
// beat at the first beat index at or past the usable end of the track.
// Grids loaded from a store need not follow that convention; use
// NormalizeBeatGrid to convert.
type BeatGrid struct {
	FirstBeatIndex        int
	FirstBeatSampleOffset float64
	LastBeatIndex         int
	LastBeatSampleOffset  float64
}

// NormalizeBeatGrid shifts g so that its first beat lands exactly on
// index -4, preserving the samples-per-beat spacing implied by the two
// input points, and recomputes the last beat as the first one at or
// beyond trackLength samples.
//
// Normalizing an already-normalized grid against the same trackLength
// returns the same grid. A grid whose two points coincide has no usable
// spacing and fails with ErrDegenerateBeatGrid.
func NormalizeBeatGrid(g BeatGrid, trackLength float64) (BeatGrid, error) {
	if g.LastBeatIndex == g.FirstBeatIndex || g.LastBeatSampleOffset == g.FirstBeatSampleOffset {
		return BeatGrid{}, fmt.Errorf("%w: beats at (%d, %f) and (%d, %f)",
			ErrDegenerateBeatGrid,
			g.FirstBeatIndex, g.FirstBeatSampleOffset,
			g.LastBeatIndex, g.LastBeatSampleOffset)
	}

	samplesPerBeat := (g.LastBeatSampleOffset - g.FirstBeatSampleOffset) /
		float64(g.LastBeatIndex-g.FirstBeatIndex)

	norm := BeatGrid{FirstBeatIndex: -4}
	norm.FirstBeatSampleOffset = g.FirstBeatSampleOffset -
		float64(g.FirstBeatIndex+4)*samplesPerBeat

	beatsUntilEnd := int(math.Ceil((trackLength - norm.FirstBeatSampleOffset) / samplesPerBeat))
	norm.LastBeatIndex = -4 + beatsUntilEnd
	norm.LastBeatSampleOffset = norm.FirstBeatSampleOffset +
		float64(beatsUntilEnd)*samplesPerBeat

	return norm, nil
}
