package schema

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for version negotiation and structural checks
var (
	// ErrUnsupportedVersion indicates a schema version outside the known set
	ErrUnsupportedVersion = errors.New("unsupported schema version")

	// ErrSchemaInconsistency indicates a store whose structure does not
	// match the schema version it claims
	ErrSchemaInconsistency = errors.New("schema inconsistency")
)

// MusicDDL returns the complete DDL snapshot for the music store at
// version v. Fails before any side effect when v is not a known version.
func MusicDDL(v Version) (string, error) {
	switch v {
	case Version1_6_0:
		return musicDDL160, nil
	case Version1_7_1:
		return musicDDL171, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
}

// PerformanceDDL returns the complete DDL snapshot for the performance
// store at version v.
func PerformanceDDL(v Version) (string, error) {
	switch v {
	case Version1_6_0:
		return performanceDDL160, nil
	case Version1_7_1:
		return performanceDDL171, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
}

// CreateMusic builds the music store schema at version v on an open,
// empty database and seeds the Information row with the library uuid.
func CreateMusic(db *sql.DB, v Version, uuid string) error {
	ddl, err := MusicDDL(v)
	if err != nil {
		return err
	}
	return createStore(db, ddl, v, uuid)
}

// CreatePerformance builds the performance store schema at version v and
// seeds the Information row. The uuid must be the one recorded in the
// paired music store.
func CreatePerformance(db *sql.DB, v Version, uuid string) error {
	ddl, err := PerformanceDDL(v)
	if err != nil {
		return err
	}
	return createStore(db, ddl, v, uuid)
}

func createStore(db *sql.DB, ddl string, v Version, uuid string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(ddl); err != nil {
		return fmt.Errorf("failed to apply schema %s: %w", v, err)
	}

	_, err = tx.Exec(`
		INSERT INTO Information (uuid, schemaVersionMajor, schemaVersionMinor, schemaVersionPatch)
		VALUES (?, ?, ?, ?)
	`, uuid, v.Major, v.Minor, v.Patch)
	if err != nil {
		return fmt.Errorf("failed to seed Information row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	return nil
}

// VerifyMusic checks that the live structure of an opened music store
// matches what CreateMusic would have produced for version v.
func VerifyMusic(db *sql.DB, v Version) error {
	expected, err := musicShape(v)
	if err != nil {
		return err
	}
	return verifyStore(db, "music", v, expected)
}

// VerifyPerformance checks that the live structure of an opened
// performance store matches version v.
func VerifyPerformance(db *sql.DB, v Version) error {
	expected, err := performanceShape(v)
	if err != nil {
		return err
	}
	return verifyStore(db, "performance", v, expected)
}

// informationColumns is shared by both stores.
var informationColumns = []string{
	"id", "uuid", "schemaVersionMajor", "schemaVersionMinor", "schemaVersionPatch",
}

func musicShape(v Version) (map[string][]string, error) {
	if !IsSupported(v) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
	shape := map[string][]string{
		"Information": informationColumns,
		"Track": {
			"id", "path", "filename", "title", "artist", "album",
			"genre", "year", "durationSeconds", "bitrate",
		},
		"Crate":          {"id", "title", "path"},
		"CrateTrackList": {"crateId", "trackId"},
	}
	if !v.Less(Version1_7_1) {
		shape["CopiedTrack"] = []string{
			"trackId", "uuidOfSourceDatabase", "idOfTrackInSourceDatabase",
		}
	}
	return shape, nil
}

func performanceShape(v Version) (map[string][]string, error) {
	if !IsSupported(v) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
	perfData := []string{
		"id", "sampleRate", "totalSamples", "keyCode", "averageLoudness",
		"defaultFirstBeatIndex", "defaultFirstBeatOffset",
		"defaultLastBeatIndex", "defaultLastBeatOffset",
		"adjustedFirstBeatIndex", "adjustedFirstBeatOffset",
		"adjustedLastBeatIndex", "adjustedLastBeatOffset",
		"defaultMainCue", "adjustedMainCue",
	}
	if !v.Less(Version1_7_1) {
		perfData = append(perfData, "hasSeratoValues")
	}
	return map[string][]string{
		"Information":     informationColumns,
		"PerformanceData": perfData,
		"PerformanceHotCue": {
			"trackId", "slot", "isSet", "label", "sampleOffset",
			"colorA", "colorR", "colorG", "colorB",
		},
		"PerformanceLoop": {
			"trackId", "slot", "isStartSet", "isEndSet", "label",
			"startOffset", "endOffset",
			"colorA", "colorR", "colorG", "colorB",
		},
	}, nil
}

// verifyStore compares the store's actual tables and columns against the
// expected shape and checks the stored version marker. It reports the
// first mismatch found.
func verifyStore(db *sql.DB, store string, v Version, expected map[string][]string) error {
	actual, err := listTables(db)
	if err != nil {
		return fmt.Errorf("failed to list tables of %s store: %w", store, err)
	}

	for _, name := range sortedKeys(expected) {
		if _, ok := actual[name]; !ok {
			return fmt.Errorf("%w: %s store is missing table %s required by schema %s",
				ErrSchemaInconsistency, store, name, v)
		}
	}
	for _, name := range sortedKeys(actual) {
		if _, ok := expected[name]; !ok {
			return fmt.Errorf("%w: %s store has unexpected table %s not part of schema %s",
				ErrSchemaInconsistency, store, name, v)
		}
	}

	for _, name := range sortedKeys(expected) {
		cols, err := tableColumns(db, name)
		if err != nil {
			return fmt.Errorf("failed to inspect table %s of %s store: %w", name, store, err)
		}
		want := columnSet(expected[name])
		got := columnSet(cols)
		if want != got {
			return fmt.Errorf("%w: %s store table %s has columns (%s), schema %s requires (%s)",
				ErrSchemaInconsistency, store, name, got, v, want)
		}
	}

	return verifyInformation(db, store, v)
}

// verifyInformation checks the explicit version marker: exactly one
// Information row whose version triple equals v.
func verifyInformation(db *sql.DB, store string, v Version) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM Information`).Scan(&count); err != nil {
		return fmt.Errorf("failed to read Information of %s store: %w", store, err)
	}
	if count != 1 {
		return fmt.Errorf("%w: %s store has %d Information rows, expected exactly 1",
			ErrSchemaInconsistency, store, count)
	}

	var stored Version
	err := db.QueryRow(`
		SELECT schemaVersionMajor, schemaVersionMinor, schemaVersionPatch FROM Information
	`).Scan(&stored.Major, &stored.Minor, &stored.Patch)
	if err != nil {
		return fmt.Errorf("failed to read version marker of %s store: %w", store, err)
	}
	if stored != v {
		return fmt.Errorf("%w: %s store records schema version %s, expected %s",
			ErrSchemaInconsistency, store, stored, v)
	}

	return nil
}

// StoredVersion reads the schema version marker from an opened store.
func StoredVersion(db *sql.DB) (Version, error) {
	var v Version
	err := db.QueryRow(`
		SELECT schemaVersionMajor, schemaVersionMinor, schemaVersionPatch FROM Information
	`).Scan(&v.Major, &v.Minor, &v.Patch)
	if err != nil {
		return Version{}, fmt.Errorf("failed to read schema version marker: %w", err)
	}
	return v, nil
}

// StoredUUID reads the library identifier from an opened store.
func StoredUUID(db *sql.DB) (string, error) {
	var uuid string
	err := db.QueryRow(`SELECT uuid FROM Information`).Scan(&uuid)
	if err != nil {
		return "", fmt.Errorf("failed to read library uuid: %w", err)
	}
	return uuid, nil
}

func listTables(db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables[name] = struct{}{}
	}
	return tables, rows.Err()
}

func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid        int
			name       string
			typ        string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func columnSet(cols []string) string {
	sorted := make([]string, len(cols))
	copy(sorted, cols)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
