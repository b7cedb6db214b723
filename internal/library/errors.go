package library

import (
	"errors"

	"github.com/franz/enginelib/internal/schema"
)

// Sentinel errors for common failure modes. Match with errors.Is.
var (
	// ErrLibraryNotFound indicates a required store file is absent on open
	ErrLibraryNotFound = errors.New("library not found")

	// ErrNoPerformanceData indicates a track has not been analyzed yet.
	// This is a normal state, not a corruption signal.
	ErrNoPerformanceData = errors.New("no performance data")

	// ErrCorruptPerformanceData indicates stored analysis that violates
	// the format invariants; not recoverable without external repair
	ErrCorruptPerformanceData = errors.New("corrupt performance data")

	// ErrDegenerateBeatGrid indicates a beat grid whose two points
	// coincide, leaving no beat spacing to work with
	ErrDegenerateBeatGrid = errors.New("degenerate beat grid")

	// ErrHandleClosed indicates use of a library handle after Close
	ErrHandleClosed = errors.New("library handle is closed")

	// ErrTrackNotFound indicates a track id with no row in the music store
	ErrTrackNotFound = errors.New("track not found")

	// Version negotiation and structural checks surface the schema
	// package's sentinels unchanged.
	ErrUnsupportedVersion  = schema.ErrUnsupportedVersion
	ErrSchemaInconsistency = schema.ErrSchemaInconsistency
)
