package library

// Key is the musical key a track is detected to be in. The zero value is
// KeyUnset; the remaining 24 values cover the 12 major and 12 minor keys.
type Key int

const (
	KeyUnset Key = iota
	KeyCMajor
	KeyCSharpMajor
	KeyDMajor
	KeyEFlatMajor
	KeyEMajor
	KeyFMajor
	KeyFSharpMajor
	KeyGMajor
	KeyAFlatMajor
	KeyAMajor
	KeyBFlatMajor
	KeyBMajor
	KeyCMinor
	KeyCSharpMinor
	KeyDMinor
	KeyEFlatMinor
	KeyEMinor
	KeyFMinor
	KeyFSharpMinor
	KeyGMinor
	KeyAFlatMinor
	KeyAMinor
	KeyBFlatMinor
	KeyBMinor
)

var keyNames = map[Key]string{
	KeyUnset:       "unset",
	KeyCMajor:      "C major",
	KeyCSharpMajor: "C# major",
	KeyDMajor:      "D major",
	KeyEFlatMajor:  "Eb major",
	KeyEMajor:      "E major",
	KeyFMajor:      "F major",
	KeyFSharpMajor: "F# major",
	KeyGMajor:      "G major",
	KeyAFlatMajor:  "Ab major",
	KeyAMajor:      "A major",
	KeyBFlatMajor:  "Bb major",
	KeyBMajor:      "B major",
	KeyCMinor:      "C minor",
	KeyCSharpMinor: "C# minor",
	KeyDMinor:      "D minor",
	KeyEFlatMinor:  "Eb minor",
	KeyEMinor:      "E minor",
	KeyFMinor:      "F minor",
	KeyFSharpMinor: "F# minor",
	KeyGMinor:      "G minor",
	KeyAFlatMinor:  "Ab minor",
	KeyAMinor:      "A minor",
	KeyBFlatMinor:  "Bb minor",
	KeyBMinor:      "B minor",
}

// Valid reports whether k is KeyUnset or one of the 24 musical keys.
// Key codes read from a store that fall outside this range mark the
// performance data as corrupt.
func (k Key) Valid() bool {
	return k >= KeyUnset && k <= KeyBMinor
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}
