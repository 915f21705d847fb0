package remap

// RangeDefaults holds the two configurable fallback ranges used by the
// capability synthesizer and the translator: the default absolute range
// for a synthesized output axis whose metadata isn't otherwise inherited,
// and the relative clamp/scale range used by RA/AR/KR.
type RangeDefaults struct {
	AbsMin, AbsMax int32
	RelMin, RelMax int32
}

// DefaultRangeDefaults mirrors the original daemon's built-in defaults.
func DefaultRangeDefaults() RangeDefaults {
	return RangeDefaults{
		AbsMin: -32767,
		AbsMax: 32767,
		RelMin: -128,
		RelMax: 128,
	}
}

// NormalizerConfig is the five-integer knob set controlling C4's
// warm-up, coverage, rescan, and spike-rejection gates. It applies
// uniformly to every axis in the normalization set.
type NormalizerConfig struct {
	// IGN is the number of initial events ignored before seeding begins.
	IGN int

	// RNG is the coverage-gate divisor: rescaling requires observed
	// span * RNG >= declared span. Zero disables the gate (always pass).
	RNG int

	// RST is the rescan period in accepted events; zero disables
	// periodic rescan.
	RST int

	// SPK is the spike-gate divisor: a sample is rejected if its delta
	// from the reference value, times SPK, exceeds the declared span.
	// Zero disables the gate.
	SPK int

	// SPKMIN is the minimum declared span below which the spike gate is
	// disabled regardless of SPK.
	SPKMIN int
}
