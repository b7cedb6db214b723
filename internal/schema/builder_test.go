package schema

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // SQLite driver
)

func openTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndVerifyMusic(t *testing.T) {
	for _, v := range KnownVersions() {
		db := openTestDB(t, "m.db")

		if err := CreateMusic(db, v, "test-uuid"); err != nil {
			t.Fatalf("failed to create music schema %s: %v", v, err)
		}
		if err := VerifyMusic(db, v); err != nil {
			t.Errorf("verify failed right after create at %s: %v", v, err)
		}

		uuid, err := StoredUUID(db)
		if err != nil {
			t.Fatalf("failed to read uuid: %v", err)
		}
		if uuid != "test-uuid" {
			t.Errorf("expected uuid test-uuid, got %s", uuid)
		}

		stored, err := StoredVersion(db)
		if err != nil {
			t.Fatalf("failed to read stored version: %v", err)
		}
		if stored != v {
			t.Errorf("expected stored version %s, got %s", v, stored)
		}
	}
}

func TestCreateAndVerifyPerformance(t *testing.T) {
	for _, v := range KnownVersions() {
		db := openTestDB(t, "p.db")

		if err := CreatePerformance(db, v, "test-uuid"); err != nil {
			t.Fatalf("failed to create performance schema %s: %v", v, err)
		}
		if err := VerifyPerformance(db, v); err != nil {
			t.Errorf("verify failed right after create at %s: %v", v, err)
		}
	}
}

func TestDDLUnsupportedVersion(t *testing.T) {
	bogus := Version{9, 9, 9}

	if _, err := MusicDDL(bogus); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
	if _, err := PerformanceDDL(bogus); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}

	db := openTestDB(t, "m.db")
	if err := CreateMusic(db, bogus, "test-uuid"); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion from create, got %v", err)
	}
}

func TestVerifyDetectsVersionMismatch(t *testing.T) {
	// A 1.6.0 music store lacks the CopiedTrack table required by 1.7.1.
	db := openTestDB(t, "m.db")
	if err := CreateMusic(db, Version1_6_0, "test-uuid"); err != nil {
		t.Fatalf("failed to create music schema: %v", err)
	}

	err := VerifyMusic(db, Version1_7_1)
	if !errors.Is(err, ErrSchemaInconsistency) {
		t.Errorf("expected ErrSchemaInconsistency, got %v", err)
	}
}

func TestVerifyDetectsMissingColumn(t *testing.T) {
	db := openTestDB(t, "p.db")
	if err := CreatePerformance(db, Version1_7_1, "test-uuid"); err != nil {
		t.Fatalf("failed to create performance schema: %v", err)
	}

	if _, err := db.Exec(`ALTER TABLE PerformanceData DROP COLUMN averageLoudness`); err != nil {
		t.Fatalf("failed to drop column: %v", err)
	}

	err := VerifyPerformance(db, Version1_7_1)
	if !errors.Is(err, ErrSchemaInconsistency) {
		t.Errorf("expected ErrSchemaInconsistency, got %v", err)
	}
}

func TestVerifyDetectsUnexpectedTable(t *testing.T) {
	db := openTestDB(t, "m.db")
	if err := CreateMusic(db, Version1_6_0, "test-uuid"); err != nil {
		t.Fatalf("failed to create music schema: %v", err)
	}

	if _, err := db.Exec(`CREATE TABLE Extra (id INTEGER PRIMARY KEY)`); err != nil {
		t.Fatalf("failed to create extra table: %v", err)
	}

	err := VerifyMusic(db, Version1_6_0)
	if !errors.Is(err, ErrSchemaInconsistency) {
		t.Errorf("expected ErrSchemaInconsistency, got %v", err)
	}
}

func TestVerifyDetectsForgedVersionMarker(t *testing.T) {
	db := openTestDB(t, "m.db")
	if err := CreateMusic(db, Version1_6_0, "test-uuid"); err != nil {
		t.Fatalf("failed to create music schema: %v", err)
	}

	_, err := db.Exec(`UPDATE Information SET schemaVersionMinor = 5`)
	if err != nil {
		t.Fatalf("failed to forge version marker: %v", err)
	}

	if err := VerifyMusic(db, Version1_6_0); !errors.Is(err, ErrSchemaInconsistency) {
		t.Errorf("expected ErrSchemaInconsistency, got %v", err)
	}
}
