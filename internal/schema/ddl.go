package schema

// Each known schema version owns a complete DDL snapshot for both stores.
// There is no migration path between versions: a library is created at one
// version and stays there, so snapshots are duplicated wholesale rather
// than expressed as diffs.

// Music store, schema 1.6.0 (firmware 1.0.0)
const musicDDL160 = `
-- Library identity and schema version marker (exactly one row)
CREATE TABLE IF NOT EXISTS Information (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  uuid TEXT,
  schemaVersionMajor INTEGER,
  schemaVersionMinor INTEGER,
  schemaVersionPatch INTEGER
);

-- Track metadata
CREATE TABLE IF NOT EXISTS Track (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  path TEXT,
  filename TEXT,
  title TEXT,
  artist TEXT,
  album TEXT,
  genre TEXT,
  year INTEGER,
  durationSeconds INTEGER,
  bitrate INTEGER
);

CREATE INDEX IF NOT EXISTS index_Track_path ON Track (path);
CREATE INDEX IF NOT EXISTS index_Track_filename ON Track (filename);

-- Crate hierarchy
CREATE TABLE IF NOT EXISTS Crate (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT,
  path TEXT
);

CREATE TABLE IF NOT EXISTS CrateTrackList (
  crateId INTEGER REFERENCES Crate (id) ON DELETE CASCADE,
  trackId INTEGER REFERENCES Track (id) ON DELETE CASCADE,
  PRIMARY KEY (crateId, trackId)
);

CREATE INDEX IF NOT EXISTS index_CrateTrackList_trackId ON CrateTrackList (trackId);
`

// Music store, schema 1.7.1 (firmware 1.0.3): adds CopiedTrack, which
// records the provenance of tracks copied in from another library.
const musicDDL171 = musicDDL160 + `
CREATE TABLE IF NOT EXISTS CopiedTrack (
  trackId INTEGER PRIMARY KEY REFERENCES Track (id) ON DELETE CASCADE,
  uuidOfSourceDatabase TEXT,
  idOfTrackInSourceDatabase INTEGER
);
`

// Performance store, schema 1.6.0
const performanceDDL160 = `
-- Library identity and schema version marker (exactly one row, uuid must
-- match the music store)
CREATE TABLE IF NOT EXISTS Information (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  uuid TEXT,
  schemaVersionMajor INTEGER,
  schemaVersionMinor INTEGER,
  schemaVersionPatch INTEGER
);

-- One row of analysis results per track; id is the track id in the
-- music store
CREATE TABLE IF NOT EXISTS PerformanceData (
  id INTEGER PRIMARY KEY,
  sampleRate REAL,
  totalSamples INTEGER,
  keyCode INTEGER,
  averageLoudness REAL,
  defaultFirstBeatIndex INTEGER,
  defaultFirstBeatOffset REAL,
  defaultLastBeatIndex INTEGER,
  defaultLastBeatOffset REAL,
  adjustedFirstBeatIndex INTEGER,
  adjustedFirstBeatOffset REAL,
  adjustedLastBeatIndex INTEGER,
  adjustedLastBeatOffset REAL,
  defaultMainCue REAL,
  adjustedMainCue REAL
);

-- Exactly 8 hot cue slots per analyzed track, slot 0-7
CREATE TABLE IF NOT EXISTS PerformanceHotCue (
  trackId INTEGER REFERENCES PerformanceData (id) ON DELETE CASCADE,
  slot INTEGER,
  isSet INTEGER,
  label TEXT,
  sampleOffset REAL,
  colorA INTEGER,
  colorR INTEGER,
  colorG INTEGER,
  colorB INTEGER,
  PRIMARY KEY (trackId, slot)
);

-- Exactly 8 loop slots per analyzed track, slot 0-7
CREATE TABLE IF NOT EXISTS PerformanceLoop (
  trackId INTEGER REFERENCES PerformanceData (id) ON DELETE CASCADE,
  slot INTEGER,
  isStartSet INTEGER,
  isEndSet INTEGER,
  label TEXT,
  startOffset REAL,
  endOffset REAL,
  colorA INTEGER,
  colorR INTEGER,
  colorG INTEGER,
  colorB INTEGER,
  PRIMARY KEY (trackId, slot)
);
`

// Performance store, schema 1.7.1: PerformanceData carries a Serato
// compatibility marker from firmware 1.0.3 onwards.
const performanceDDL171 = `
CREATE TABLE IF NOT EXISTS Information (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  uuid TEXT,
  schemaVersionMajor INTEGER,
  schemaVersionMinor INTEGER,
  schemaVersionPatch INTEGER
);

CREATE TABLE IF NOT EXISTS PerformanceData (
  id INTEGER PRIMARY KEY,
  sampleRate REAL,
  totalSamples INTEGER,
  keyCode INTEGER,
  averageLoudness REAL,
  defaultFirstBeatIndex INTEGER,
  defaultFirstBeatOffset REAL,
  defaultLastBeatIndex INTEGER,
  defaultLastBeatOffset REAL,
  adjustedFirstBeatIndex INTEGER,
  adjustedFirstBeatOffset REAL,
  adjustedLastBeatIndex INTEGER,
  adjustedLastBeatOffset REAL,
  defaultMainCue REAL,
  adjustedMainCue REAL,
  hasSeratoValues INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS PerformanceHotCue (
  trackId INTEGER REFERENCES PerformanceData (id) ON DELETE CASCADE,
  slot INTEGER,
  isSet INTEGER,
  label TEXT,
  sampleOffset REAL,
  colorA INTEGER,
  colorR INTEGER,
  colorG INTEGER,
  colorB INTEGER,
  PRIMARY KEY (trackId, slot)
);

CREATE TABLE IF NOT EXISTS PerformanceLoop (
  trackId INTEGER REFERENCES PerformanceData (id) ON DELETE CASCADE,
  slot INTEGER,
  isStartSet INTEGER,
  isEndSet INTEGER,
  label TEXT,
  startOffset REAL,
  endOffset REAL,
  colorA INTEGER,
  colorR INTEGER,
  colorG INTEGER,
  colorB INTEGER,
  PRIMARY KEY (trackId, slot)
);
`
