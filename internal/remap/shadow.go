package remap

// Shadow tracks which output KEY codes the translator currently
// believes are held down on the virtual device, so that direction
// reversals (RK, AK) can synthesize a release before the opposing
// press. Zero value is ready to use: every key starts clear.
type Shadow struct {
	held map[uint16]bool
}

// NewShadow returns a Shadow with every key clear.
func NewShadow() Shadow {
	return Shadow{held: make(map[uint16]bool)}
}

// Held reports whether code is currently believed pressed.
func (s Shadow) Held(code uint16) bool {
	return s.held[code]
}

// Update records the effect of an emitted KEY event: value > 0 marks
// code held, value == 0 clears it. Call only after a successful
// emission, never speculatively.
func (s Shadow) Update(code uint16, value int32) {
	s.held[code] = value > 0
}
