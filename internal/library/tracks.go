package library

import (
	"database/sql"
	"fmt"
)

// Track is a row of the music store's track table. Performance data is
// keyed by Track.ID; beyond that the track side carries no derived
// semantics and is exposed as plain create/read operations.
type Track struct {
	ID              int64
	Path            string
	Filename        string
	Title           string
	Artist          string
	Album           string
	Genre           string
	Year            int
	DurationSeconds int
	Bitrate         int
}

// AddTrack inserts a track into the music store and sets t.ID.
func (l *Library) AddTrack(t *Track) error {
	if l.closed {
		return ErrHandleClosed
	}

	res, err := l.music.Exec(`
		INSERT INTO Track (
			path, filename, title, artist, album, genre,
			year, durationSeconds, bitrate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.Path, t.Filename, t.Title, t.Artist, t.Album, t.Genre,
		t.Year, t.DurationSeconds, t.Bitrate)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get track id: %w", err)
	}

	return nil
}

// GetTrack retrieves a track by id. Fails with ErrTrackNotFound when no
// such row exists.
func (l *Library) GetTrack(id int64) (*Track, error) {
	if l.closed {
		return nil, ErrHandleClosed
	}

	t := &Track{}
	err := l.music.QueryRow(`
		SELECT id, COALESCE(path, ''), COALESCE(filename, ''),
		       COALESCE(title, ''), COALESCE(artist, ''), COALESCE(album, ''),
		       COALESCE(genre, ''), COALESCE(year, 0),
		       COALESCE(durationSeconds, 0), COALESCE(bitrate, 0)
		FROM Track WHERE id = ?
	`, id).Scan(
		&t.ID, &t.Path, &t.Filename,
		&t.Title, &t.Artist, &t.Album,
		&t.Genre, &t.Year,
		&t.DurationSeconds, &t.Bitrate,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrTrackNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track %d: %w", id, err)
	}

	return t, nil
}

// TrackExists reports whether the music store holds a track with the
// given id. SavePerformanceData uses this as its save-time referential
// check; the two stores are separate files, so SQLite cannot enforce the
// relation itself.
func (l *Library) TrackExists(id int64) (bool, error) {
	if l.closed {
		return false, ErrHandleClosed
	}

	var count int
	err := l.music.QueryRow(`SELECT COUNT(*) FROM Track WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check track %d: %w", id, err)
	}
	return count > 0, nil
}

// ListTracks returns all tracks ordered by id.
func (l *Library) ListTracks() ([]*Track, error) {
	if l.closed {
		return nil, ErrHandleClosed
	}

	rows, err := l.music.Query(`
		SELECT id, COALESCE(path, ''), COALESCE(filename, ''),
		       COALESCE(title, ''), COALESCE(artist, ''), COALESCE(album, ''),
		       COALESCE(genre, ''), COALESCE(year, 0),
		       COALESCE(durationSeconds, 0), COALESCE(bitrate, 0)
		FROM Track ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t := &Track{}
		if err := rows.Scan(
			&t.ID, &t.Path, &t.Filename,
			&t.Title, &t.Artist, &t.Album,
			&t.Genre, &t.Year,
			&t.DurationSeconds, &t.Bitrate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	return tracks, nil
}

// TrackCount returns the number of tracks in the music store.
func (l *Library) TrackCount() (int, error) {
	if l.closed {
		return 0, ErrHandleClosed
	}

	var count int
	if err := l.music.QueryRow(`SELECT COUNT(*) FROM Track`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}
