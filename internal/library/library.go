package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/franz/enginelib/internal/schema"
)

// Store file names inside a library directory. The music store holds
// track and crate metadata plus the library identity; the performance
// store holds per-track analysis results.
const (
	MusicDBName       = "m.db"
	PerformanceDBName = "p.db"
)

// Library is the handle to a paired set of music and performance stores
// sharing one identifier and schema version. It owns both connections
// exclusively; callers must serialize access or use one handle per
// goroutine.
type Library struct {
	dir     string
	musicDB string
	perfDB  string
	uuid    string
	version schema.Version
	music   *sql.DB
	perf    *sql.DB
	closed  bool
}

// Exists reports whether dir holds both store files of a library.
func Exists(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, MusicDBName)); err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, PerformanceDBName)); err != nil {
		return false
	}
	return true
}

// Open opens an existing library directory. Both store files must
// already exist (ErrLibraryNotFound otherwise). The identifier and schema
// version are read from the music store, both stores are verified against
// that version, and the performance store must report the same identifier
// and version (ErrSchemaInconsistency otherwise).
func Open(dir string) (*Library, error) {
	l := &Library{
		dir:     dir,
		musicDB: filepath.Join(dir, MusicDBName),
		perfDB:  filepath.Join(dir, PerformanceDBName),
	}

	// Check before opening: the driver would happily create missing files.
	if _, err := os.Stat(l.musicDB); err != nil {
		return nil, fmt.Errorf("%w: missing music store %s", ErrLibraryNotFound, l.musicDB)
	}
	if _, err := os.Stat(l.perfDB); err != nil {
		return nil, fmt.Errorf("%w: missing performance store %s", ErrLibraryNotFound, l.perfDB)
	}

	if err := l.openStores(); err != nil {
		return nil, err
	}

	var err error
	l.uuid, err = schema.StoredUUID(l.music)
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("%w: music store has no readable Information row: %v",
			ErrSchemaInconsistency, err)
	}
	l.version, err = schema.StoredVersion(l.music)
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("%w: music store has no readable version marker: %v",
			ErrSchemaInconsistency, err)
	}
	if !schema.IsSupported(l.version) {
		l.Close()
		return nil, fmt.Errorf("%w: library at %s records schema version %s",
			ErrUnsupportedVersion, dir, l.version)
	}

	if err := l.verify(); err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

// Create builds a fresh library at dir with the given schema version,
// creating the directory if absent. The version check happens before any
// filesystem mutation. If a step after directory creation fails, partial
// store files are left in place; the directory must not be reused.
func Create(dir string, v schema.Version) (*Library, error) {
	if !schema.IsSupported(v) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	l := &Library{
		dir:     dir,
		musicDB: filepath.Join(dir, MusicDBName),
		perfDB:  filepath.Join(dir, PerformanceDBName),
		uuid:    uuid.NewString(),
		version: v,
	}

	if err := l.openStores(); err != nil {
		return nil, err
	}

	if err := schema.CreateMusic(l.music, v, l.uuid); err != nil {
		l.Close()
		return nil, err
	}
	if err := schema.CreatePerformance(l.perf, v, l.uuid); err != nil {
		l.Close()
		return nil, err
	}

	// Self-check right after creation.
	if err := l.verify(); err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

func (l *Library) openStores() error {
	music, err := sql.Open("sqlite", "file:"+l.musicDB)
	if err != nil {
		return fmt.Errorf("failed to open music store: %w", err)
	}
	perf, err := sql.Open("sqlite", "file:"+l.perfDB)
	if err != nil {
		music.Close()
		return fmt.Errorf("failed to open performance store: %w", err)
	}

	// SQLite works best with a single writer.
	music.SetMaxOpenConns(1)
	perf.SetMaxOpenConns(1)

	l.music = music
	l.perf = perf
	return nil
}

// verify runs the structural checks on both stores and the
// cross-consistency checks that tie them together.
func (l *Library) verify() error {
	if err := schema.VerifyMusic(l.music, l.version); err != nil {
		return err
	}
	if err := schema.VerifyPerformance(l.perf, l.version); err != nil {
		return err
	}

	perfVersion, err := schema.StoredVersion(l.perf)
	if err != nil {
		return err
	}
	if perfVersion != l.version {
		return fmt.Errorf("%w: performance store records schema version %s, music store %s",
			ErrSchemaInconsistency, perfVersion, l.version)
	}

	perfUUID, err := schema.StoredUUID(l.perf)
	if err != nil {
		return err
	}
	if perfUUID != l.uuid {
		return fmt.Errorf("%w: performance store uuid %s does not match music store uuid %s",
			ErrSchemaInconsistency, perfUUID, l.uuid)
	}

	return nil
}

// DirectoryPath returns the library directory.
func (l *Library) DirectoryPath() string { return l.dir }

// MusicDBPath returns the path of the music store file.
func (l *Library) MusicDBPath() string { return l.musicDB }

// PerformanceDBPath returns the path of the performance store file.
func (l *Library) PerformanceDBPath() string { return l.perfDB }

// UUID returns the library's globally unique identifier.
func (l *Library) UUID() string { return l.uuid }

// Version returns the negotiated schema version shared by both stores.
func (l *Library) Version() schema.Version { return l.version }

// Close releases both store connections. It is idempotent; any other use
// of the handle after Close fails with ErrHandleClosed.
func (l *Library) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	var firstErr error
	if l.music != nil {
		if err := l.music.Close(); err != nil {
			firstErr = err
		}
	}
	if l.perf != nil {
		if err := l.perf.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
