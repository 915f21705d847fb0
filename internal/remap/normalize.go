package remap

// axisState holds the streaming auto-calibration state for one
// normalized absolute axis. RMIN/RMAX track the persistent learned
// range; AMIN/AMAX/ACNT track the auxiliary rescan window when
// periodic rescan is enabled. Fields use explicit "seeded" flags
// rather than treating zero as a sentinel, so a legitimate sample of
// zero is never mistaken for "not yet seen".
type axisState struct {
	ignRemaining int

	rminSeeded bool
	ready      bool
	rmin, rmax int32

	lastSeeded bool
	last       int32

	acnt       int
	aminSeeded bool
	amaxSeeded bool
	amin, amax int32
}

// Normalizer runs the per-axis auto-calibration state machine for every
// axis in the normalization set, sharing one [NormalizerConfig] across
// all of them.
type Normalizer struct {
	cfg  NormalizerConfig
	axes map[uint16]*axisState
}

// NewNormalizer creates a normalizer for the given axis codes, each
// starting its warm-up counter at cfg.IGN.
func NewNormalizer(cfg NormalizerConfig, axisCodes []uint16) *Normalizer {
	var (
		norm *Normalizer
		code uint16
	)

	norm = &Normalizer{
		cfg:  cfg,
		axes: make(map[uint16]*axisState, len(axisCodes)),
	}

	for _, code = range axisCodes {
		norm.axes[code] = &axisState{ignRemaining: cfg.IGN}
	}

	return norm
}

// Has reports whether axis is in the normalization set.
func (n *Normalizer) Has(axis uint16) bool {
	var ok bool

	_, ok = n.axes[axis]

	return ok
}

// spikeGate reports whether value should be rejected relative to
// reference, given the declared span.
func (n *Normalizer) spikeGate(value, reference, span int32) bool {
	var delta int64

	if n.cfg.SPK <= 0 || int(span) <= n.cfg.SPKMIN {
		return false
	}

	delta = int64(value) - int64(reference)
	if delta < 0 {
		delta = -delta
	}

	return delta*int64(n.cfg.SPK) > int64(span)
}

func widen(value, min, max int32) (int32, int32) {
	if value > max {
		max = value
	}

	if value < min {
		min = value
	}

	return min, max
}

// Normalize runs one sample through axis's state machine. ok reports
// whether the sample survived (false means the caller must discard the
// triggering event entirely: warm-up skip or spike rejection). When ok
// is true, out is either the unchanged sample (not yet calibrated, or
// the coverage gate hasn't opened) or the rescaled value.
func (n *Normalizer) Normalize(axis uint16, value, sourceMin, sourceMax int32) (out int32, ok bool) {
	var (
		state *axisState
		span  int32
		have  bool
	)

	state, have = n.axes[axis]
	if !have {
		return value, true
	}

	span = sourceMax - sourceMin

	if state.ignRemaining > 0 {
		state.ignRemaining--

		return 0, false
	}

	if !state.ready {
		return n.normalizeNotReady(state, value, span)
	}

	return n.normalizeReady(state, value, sourceMin, span)
}

// normalizeNotReady implements the NOT-READY branch: seed RMIN on the
// first post-warm-up sample, then on subsequent samples apply the
// spike gate and widen [RMIN, RMAX], flipping to READY once two
// distinct samples have been seen.
func (n *Normalizer) normalizeNotReady(state *axisState, value, span int32) (int32, bool) {
	if !state.rminSeeded {
		state.rmin = value
		state.rminSeeded = true

		return value, true
	}

	if n.spikeGate(value, state.rmin, span) {
		return 0, false
	}

	state.last = value
	state.lastSeeded = true

	switch {
	case value > state.rmin:
		state.rmax = value
		state.ready = true
	case value < state.rmin:
		state.rmax = state.rmin
		state.rmin = value
		state.ready = true
	}

	return value, true
}

// normalizeReady implements the READY branch: spike-gate against the
// last accepted sample, maintain the auxiliary rescan window, widen
// the persistent range, then rescale if the coverage gate passes.
func (n *Normalizer) normalizeReady(state *axisState, value, sourceMin, span int32) (int32, bool) {
	if state.lastSeeded && n.spikeGate(value, state.last, span) {
		return 0, false
	}

	state.last = value
	state.lastSeeded = true

	if n.cfg.RST > 0 {
		n.rescan(state, value, span)
	}

	state.rmin, state.rmax = widen(value, state.rmin, state.rmax)

	if n.cfg.RNG != 0 && int64(state.rmax-state.rmin)*int64(n.cfg.RNG) < int64(span) {
		return value, true
	}

	return span*(value-state.rmin)/(state.rmax-state.rmin) + sourceMin, true
}

// rescan maintains the auxiliary [AMIN, AMAX] window and, once it has
// accumulated RST samples, swaps it into (RMIN, RMAX) provided the
// coverage gate passes against span. If the gate fails, ACNT is held
// one short of RST so the check reoccurs on the next sample.
func (n *Normalizer) rescan(state *axisState, value, span int32) {
	if !state.aminSeeded {
		state.amin = value
		state.aminSeeded = true

		return
	}

	if !state.amaxSeeded {
		switch {
		case value > state.amin:
			state.amax = value
			state.amaxSeeded = true
			state.acnt = 1
		case value < state.amin:
			state.amax = state.amin
			state.amin = value
			state.amaxSeeded = true
			state.acnt = 1
		}

		return
	}

	state.acnt++
	state.amin, state.amax = widen(value, state.amin, state.amax)

	if state.acnt < n.cfg.RST {
		return
	}

	if n.cfg.RNG == 0 || int64(state.amax-state.amin)*int64(n.cfg.RNG) >= int64(span) {
		state.rmin = state.amin
		state.rmax = state.amax
		state.aminSeeded = false
		state.amaxSeeded = false
		state.acnt = 0

		return
	}

	state.acnt = n.cfg.RST - 1
}
