package schema

import (
	"math"
	"testing"
)

func TestVersionOrdering(t *testing.T) {
	// Any three integers form a valid version, so ordering must hold at
	// the extremes too.
	versions := []Version{
		{math.MinInt, 0, 0},
		{-1, 0, 0},
		{0, math.MinInt, math.MaxInt},
		{0, 0, 0},
		{0, 0, 1},
		{0, 1, 0},
		{0, 9, 9},
		{1, 0, 0},
		{1, 6, 0},
		{1, 7, 1},
		{2, 0, 0},
		{math.MaxInt, 0, 0},
	}

	for i, a := range versions {
		if a.Compare(a) != 0 {
			t.Errorf("expected %s == %s", a, a)
		}
		if a.Less(a) {
			t.Errorf("expected !(%s < %s)", a, a)
		}
		for _, b := range versions[i+1:] {
			if !a.Less(b) {
				t.Errorf("expected %s < %s", a, b)
			}
			if b.Less(a) {
				t.Errorf("expected !(%s < %s)", b, a)
			}
			if a.Compare(b) != -1 || b.Compare(a) != 1 {
				t.Errorf("inconsistent Compare for %s and %s", a, b)
			}
		}
	}
}

func TestVersionString(t *testing.T) {
	v := Version{Major: 1, Minor: 7, Patch: 1}
	if got := v.String(); got != "1.7.1" {
		t.Errorf("expected 1.7.1, got %s", got)
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.6.0")
	if err != nil {
		t.Fatalf("failed to parse version: %v", err)
	}
	if v != Version1_6_0 {
		t.Errorf("expected %s, got %s", Version1_6_0, v)
	}

	bad := []string{
		"not-a-version",
		"1.7",
		"1.7.1.0",
		"1.7.1junk",
		"1.7.",
		"",
	}
	for _, s := range bad {
		if v, err := ParseVersion(s); err == nil {
			t.Errorf("expected error parsing %q, got %s", s, v)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported(Version1_6_0) {
		t.Error("expected 1.6.0 to be supported")
	}
	if !IsSupported(Version1_7_1) {
		t.Error("expected 1.7.1 to be supported")
	}
	if IsSupported(Version{9, 9, 9}) {
		t.Error("expected 9.9.9 to be unsupported")
	}

	if VersionLatest != Version1_7_1 {
		t.Errorf("expected latest version to be 1.7.1, got %s", VersionLatest)
	}
}
