package library

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// Number of hot cue and loop slots per track. The hardware exposes
// exactly 8 pads of each kind; the stores record all 8 slots whether set
// or not.
const (
	NumHotCues = 8
	NumLoops   = 8
)

// PadColor is the ARGB colour assigned to a hot cue or loop pad.
type PadColor struct {
	A uint8
	R uint8
	G uint8
	B uint8
}

// HotCue is one of the 8 hot cue slots of a track. An unset slot carries
// a sample offset of -1 and an empty label.
type HotCue struct {
	IsSet        bool
	Label        string
	SampleOffset float64
	Color        PadColor
}

// Loop is one of the 8 loop slots of a track. Start and end are set
// independently; the loop counts as set only when both are.
type Loop struct {
	IsStartSet  bool
	IsEndSet    bool
	Label       string
	StartOffset float64
	EndOffset   float64
	Color       PadColor
}

// IsSet reports whether both ends of the loop are set.
func (l Loop) IsSet() bool {
	return l.IsStartSet && l.IsEndSet
}

// PerformanceData holds the analysis results for one track: beat grids,
// musical key, loudness, cue points and loops. It is keyed by the id of a
// track in the music store; the relation is checked when saving, not held
// as a live reference.
type PerformanceData struct {
	TrackID int64

	SampleRate   float64
	TotalSamples int64
	Key          Key

	// AverageLoudness ranges from zero to one, typically close to 0.5
	// for a well-mastered track. Out-of-range values are passed through
	// unmodified.
	AverageLoudness float64

	// DefaultBeatGrid is the grid produced by automated analysis;
	// AdjustedBeatGrid is the one the user may have tweaked. They are
	// equal until the user adjusts the grid.
	DefaultBeatGrid  BeatGrid
	AdjustedBeatGrid BeatGrid

	DefaultMainCue  float64
	AdjustedMainCue float64

	HotCues [NumHotCues]HotCue
	Loops   [NumLoops]Loop
}

// NewPerformanceData returns an empty record for the given track, not yet
// backed by any stored row. All hot cue and loop slots follow the unset
// convention (offsets -1, empty labels).
func NewPerformanceData(trackID int64) *PerformanceData {
	d := &PerformanceData{TrackID: trackID}
	for i := range d.HotCues {
		d.HotCues[i] = HotCue{SampleOffset: -1}
	}
	for i := range d.Loops {
		d.Loops[i] = Loop{StartOffset: -1, EndOffset: -1}
	}
	return d
}

// SetHotCues fills the hot cue slots from cues. The hardware has exactly
// 8 pads, so anything beyond the first 8 is dropped; remaining slots are
// reset to unset.
func (d *PerformanceData) SetHotCues(cues []HotCue) {
	for i := range d.HotCues {
		if i < len(cues) {
			d.HotCues[i] = cues[i]
		} else {
			d.HotCues[i] = HotCue{SampleOffset: -1}
		}
	}
}

// SetLoops fills the loop slots from loops, truncating to the first 8.
func (d *PerformanceData) SetLoops(loops []Loop) {
	for i := range d.Loops {
		if i < len(loops) {
			d.Loops[i] = loops[i]
		} else {
			d.Loops[i] = Loop{StartOffset: -1, EndOffset: -1}
		}
	}
}

// BPM calculates the tempo of the track from the adjusted beat grid and
// the sample rate. It returns 0 when the grid's beat indices coincide.
// A degenerate denominator (equal offsets with differing indices) yields
// Inf or NaN, which is passed through for the caller to inspect.
func (d *PerformanceData) BPM() float64 {
	beats := d.AdjustedBeatGrid.LastBeatIndex - d.AdjustedBeatGrid.FirstBeatIndex
	if beats == 0 {
		return 0
	}
	return d.SampleRate * 60 * float64(beats) /
		(d.AdjustedBeatGrid.LastBeatSampleOffset - d.AdjustedBeatGrid.FirstBeatSampleOffset)
}

// Duration calculates the length of the track from its sample count,
// truncated to whole milliseconds. A zero sample rate yields zero rather
// than a division fault.
func (d *PerformanceData) Duration() time.Duration {
	if d.SampleRate == 0 {
		return 0
	}
	ms := math.Trunc(1000 * float64(d.TotalSamples) / d.SampleRate)
	return time.Duration(ms) * time.Millisecond
}

// LoadPerformanceData reads the analysis record for the given track id
// from the performance store. It fails with ErrNoPerformanceData when the
// track has not been analyzed, and with ErrCorruptPerformanceData when
// the stored rows violate the format invariants (wrong slot count, key
// code out of range).
func (l *Library) LoadPerformanceData(trackID int64) (*PerformanceData, error) {
	if l.closed {
		return nil, ErrHandleClosed
	}

	d := NewPerformanceData(trackID)

	var keyCode int
	err := l.perf.QueryRow(`
		SELECT sampleRate, totalSamples, keyCode, averageLoudness,
		       defaultFirstBeatIndex, defaultFirstBeatOffset,
		       defaultLastBeatIndex, defaultLastBeatOffset,
		       adjustedFirstBeatIndex, adjustedFirstBeatOffset,
		       adjustedLastBeatIndex, adjustedLastBeatOffset,
		       defaultMainCue, adjustedMainCue
		FROM PerformanceData WHERE id = ?
	`, trackID).Scan(
		&d.SampleRate, &d.TotalSamples, &keyCode, &d.AverageLoudness,
		&d.DefaultBeatGrid.FirstBeatIndex, &d.DefaultBeatGrid.FirstBeatSampleOffset,
		&d.DefaultBeatGrid.LastBeatIndex, &d.DefaultBeatGrid.LastBeatSampleOffset,
		&d.AdjustedBeatGrid.FirstBeatIndex, &d.AdjustedBeatGrid.FirstBeatSampleOffset,
		&d.AdjustedBeatGrid.LastBeatIndex, &d.AdjustedBeatGrid.LastBeatSampleOffset,
		&d.DefaultMainCue, &d.AdjustedMainCue,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: track %d", ErrNoPerformanceData, trackID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load performance data for track %d: %w", trackID, err)
	}

	d.Key = Key(keyCode)
	if !d.Key.Valid() {
		return nil, fmt.Errorf("%w: track %d has unknown key code %d",
			ErrCorruptPerformanceData, trackID, keyCode)
	}

	if err := l.loadHotCues(d); err != nil {
		return nil, err
	}
	if err := l.loadLoops(d); err != nil {
		return nil, err
	}

	return d, nil
}

func (l *Library) loadHotCues(d *PerformanceData) error {
	rows, err := l.perf.Query(`
		SELECT slot, isSet, COALESCE(label, ''), sampleOffset,
		       colorA, colorR, colorG, colorB
		FROM PerformanceHotCue WHERE trackId = ? ORDER BY slot
	`, d.TrackID)
	if err != nil {
		return fmt.Errorf("failed to load hot cues for track %d: %w", d.TrackID, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var slot int
		var cue HotCue
		if err := rows.Scan(&slot, &cue.IsSet, &cue.Label, &cue.SampleOffset,
			&cue.Color.A, &cue.Color.R, &cue.Color.G, &cue.Color.B); err != nil {
			return fmt.Errorf("failed to scan hot cue for track %d: %w", d.TrackID, err)
		}
		if slot != count || slot >= NumHotCues {
			return fmt.Errorf("%w: track %d has hot cue in slot %d, expected slot %d",
				ErrCorruptPerformanceData, d.TrackID, slot, count)
		}
		d.HotCues[slot] = cue
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load hot cues for track %d: %w", d.TrackID, err)
	}
	if count != NumHotCues {
		return fmt.Errorf("%w: track %d has %d hot cue slots, expected %d",
			ErrCorruptPerformanceData, d.TrackID, count, NumHotCues)
	}
	return nil
}

func (l *Library) loadLoops(d *PerformanceData) error {
	rows, err := l.perf.Query(`
		SELECT slot, isStartSet, isEndSet, COALESCE(label, ''),
		       startOffset, endOffset, colorA, colorR, colorG, colorB
		FROM PerformanceLoop WHERE trackId = ? ORDER BY slot
	`, d.TrackID)
	if err != nil {
		return fmt.Errorf("failed to load loops for track %d: %w", d.TrackID, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var slot int
		var loop Loop
		if err := rows.Scan(&slot, &loop.IsStartSet, &loop.IsEndSet, &loop.Label,
			&loop.StartOffset, &loop.EndOffset,
			&loop.Color.A, &loop.Color.R, &loop.Color.G, &loop.Color.B); err != nil {
			return fmt.Errorf("failed to scan loop for track %d: %w", d.TrackID, err)
		}
		if slot != count || slot >= NumLoops {
			return fmt.Errorf("%w: track %d has loop in slot %d, expected slot %d",
				ErrCorruptPerformanceData, d.TrackID, slot, count)
		}
		d.Loops[slot] = loop
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load loops for track %d: %w", d.TrackID, err)
	}
	if count != NumLoops {
		return fmt.Errorf("%w: track %d has %d loop slots, expected %d",
			ErrCorruptPerformanceData, d.TrackID, count, NumLoops)
	}
	return nil
}

// SavePerformanceData creates or overwrites the stored analysis for the
// record's track inside a single transaction. The track must exist in the
// music store. On any failure the transaction rolls back and the prior
// stored state, if any, is left intact.
func (l *Library) SavePerformanceData(d *PerformanceData) error {
	if l.closed {
		return ErrHandleClosed
	}

	exists, err := l.TrackExists(d.TrackID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: cannot save performance data for track %d",
			ErrTrackNotFound, d.TrackID)
	}

	tx, err := l.perf.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO PerformanceData (
			id, sampleRate, totalSamples, keyCode, averageLoudness,
			defaultFirstBeatIndex, defaultFirstBeatOffset,
			defaultLastBeatIndex, defaultLastBeatOffset,
			adjustedFirstBeatIndex, adjustedFirstBeatOffset,
			adjustedLastBeatIndex, adjustedLastBeatOffset,
			defaultMainCue, adjustedMainCue
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sampleRate = excluded.sampleRate,
			totalSamples = excluded.totalSamples,
			keyCode = excluded.keyCode,
			averageLoudness = excluded.averageLoudness,
			defaultFirstBeatIndex = excluded.defaultFirstBeatIndex,
			defaultFirstBeatOffset = excluded.defaultFirstBeatOffset,
			defaultLastBeatIndex = excluded.defaultLastBeatIndex,
			defaultLastBeatOffset = excluded.defaultLastBeatOffset,
			adjustedFirstBeatIndex = excluded.adjustedFirstBeatIndex,
			adjustedFirstBeatOffset = excluded.adjustedFirstBeatOffset,
			adjustedLastBeatIndex = excluded.adjustedLastBeatIndex,
			adjustedLastBeatOffset = excluded.adjustedLastBeatOffset,
			defaultMainCue = excluded.defaultMainCue,
			adjustedMainCue = excluded.adjustedMainCue
	`,
		d.TrackID, d.SampleRate, d.TotalSamples, int(d.Key), d.AverageLoudness,
		d.DefaultBeatGrid.FirstBeatIndex, d.DefaultBeatGrid.FirstBeatSampleOffset,
		d.DefaultBeatGrid.LastBeatIndex, d.DefaultBeatGrid.LastBeatSampleOffset,
		d.AdjustedBeatGrid.FirstBeatIndex, d.AdjustedBeatGrid.FirstBeatSampleOffset,
		d.AdjustedBeatGrid.LastBeatIndex, d.AdjustedBeatGrid.LastBeatSampleOffset,
		d.DefaultMainCue, d.AdjustedMainCue,
	)
	if err != nil {
		return fmt.Errorf("failed to save performance data for track %d: %w", d.TrackID, err)
	}

	if _, err := tx.Exec(`DELETE FROM PerformanceHotCue WHERE trackId = ?`, d.TrackID); err != nil {
		return fmt.Errorf("failed to clear hot cues for track %d: %w", d.TrackID, err)
	}
	for slot, cue := range d.HotCues {
		_, err := tx.Exec(`
			INSERT INTO PerformanceHotCue (
				trackId, slot, isSet, label, sampleOffset,
				colorA, colorR, colorG, colorB
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, d.TrackID, slot, cue.IsSet, cue.Label, cue.SampleOffset,
			cue.Color.A, cue.Color.R, cue.Color.G, cue.Color.B)
		if err != nil {
			return fmt.Errorf("failed to save hot cue %d for track %d: %w", slot, d.TrackID, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM PerformanceLoop WHERE trackId = ?`, d.TrackID); err != nil {
		return fmt.Errorf("failed to clear loops for track %d: %w", d.TrackID, err)
	}
	for slot, loop := range d.Loops {
		_, err := tx.Exec(`
			INSERT INTO PerformanceLoop (
				trackId, slot, isStartSet, isEndSet, label,
				startOffset, endOffset, colorA, colorR, colorG, colorB
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, d.TrackID, slot, loop.IsStartSet, loop.IsEndSet, loop.Label,
			loop.StartOffset, loop.EndOffset,
			loop.Color.A, loop.Color.R, loop.Color.G, loop.Color.B)
		if err != nil {
			return fmt.Errorf("failed to save loop %d for track %d: %w", slot, d.TrackID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit performance data for track %d: %w", d.TrackID, err)
	}

	return nil
}
