package remap

// AbsAxis carries an absolute axis's declared range, noise threshold,
// and dead zone. Resolution is omitted: neither the remapping core nor
// the virtual-device descriptor the transport writes carries it.
type AbsAxis struct {
	Min, Max int32
	Fuzz     int32
	Flat     int32
}

// Capabilities is a semantic set-of-small-integers per family, plus
// per-axis absolute metadata. It stands in for the kernel's packed bit
// arrays so the core never does bit-level arithmetic itself.
type Capabilities struct {
	Families map[uint16]struct{}
	Codes    map[uint16]map[uint16]struct{}
	Abs      map[uint16]AbsAxis
}

// NewCapabilities returns an empty capability set ready for population.
func NewCapabilities() Capabilities {
	return Capabilities{
		Families: make(map[uint16]struct{}),
		Codes:    make(map[uint16]map[uint16]struct{}),
		Abs:      make(map[uint16]AbsAxis),
	}
}

// HasCode reports whether family/code is present.
func (c Capabilities) HasCode(family, code uint16) bool {
	var (
		codes map[uint16]struct{}
		ok    bool
	)

	codes, ok = c.Codes[family]
	if !ok {
		return false
	}

	_, ok = codes[code]

	return ok
}

// EnableCode marks family/code present and enables the family itself.
func (c Capabilities) EnableCode(family, code uint16) {
	c.Families[family] = struct{}{}

	if c.Codes[family] == nil {
		c.Codes[family] = make(map[uint16]struct{})
	}

	c.Codes[family][code] = struct{}{}
}

// SortedCodes returns the codes enabled in family, in ascending order,
// for deterministic capability publication and verbose inventory
// printing.
func (c Capabilities) SortedCodes(family uint16) []uint16 {
	var (
		codes  map[uint16]struct{}
		result []uint16
		code   uint16
		i, j   int
	)

	codes = c.Codes[family]
	result = make([]uint16, 0, len(codes))

	for code = range codes {
		result = append(result, code)
	}

	for i = 1; i < len(result); i++ {
		for j = i; j > 0 && result[j-1] > result[j]; j-- {
			result[j-1], result[j] = result[j], result[j-1]
		}
	}

	return result
}

// SortedFamilies returns the enabled families in ascending order.
func (c Capabilities) SortedFamilies() []uint16 {
	var (
		result []uint16
		family uint16
		i, j   int
	)

	result = make([]uint16, 0, len(c.Families))

	for family = range c.Families {
		result = append(result, family)
	}

	for i = 1; i < len(result); i++ {
		for j = i; j > 0 && result[j-1] > result[j]; j-- {
			result[j-1], result[j] = result[j], result[j-1]
		}
	}

	return result
}

// Synthesize computes the output device's capabilities and the
// "consumed" set of source codes that must not be passed through raw.
// source carries the opened device's declared capabilities and
// absolute-axis metadata; rules carries all nine relation tables;
// defaults supplies the fallback abs/rel ranges for newly synthesized
// axes.
func Synthesize(source Capabilities, rules RuleSet, defaults RangeDefaults) (output, consumed Capabilities) {
	var (
		kk       KeyKeyRule
		kr       KeyRelRule
		ka       KeyAbsRule
		rk       RelKeyRule
		rr       RelRelRule
		ra       RelAbsRule
		ak       AbsKeyRule
		ar       AbsRelRule
		aa       AbsAbsRule
		family   uint16
		code     uint16
		axis     AbsAxis
		ok, seen bool
	)

	output = NewCapabilities()
	consumed = NewCapabilities()

	for _, kk = range rules.KeyKey {
		if !source.HasCode(FamilyKey, kk.Src) {
			continue
		}

		output.EnableCode(FamilyKey, kk.Dst)
		consumed.EnableCode(FamilyKey, kk.Src)
	}

	for _, kr = range rules.KeyRel {
		if !source.HasCode(FamilyKey, kr.Neg) && !source.HasCode(FamilyKey, kr.Pos) {
			continue
		}

		output.EnableCode(FamilyRel, kr.Axis)
		consumed.EnableCode(FamilyKey, kr.Neg)
		consumed.EnableCode(FamilyKey, kr.Pos)
	}

	for _, ka = range rules.KeyAbs {
		if !source.HasCode(FamilyKey, ka.Neg) && !source.HasCode(FamilyKey, ka.Pos) {
			continue
		}

		output.EnableCode(FamilyAbs, ka.Axis)
		consumed.EnableCode(FamilyKey, ka.Neg)
		consumed.EnableCode(FamilyKey, ka.Pos)
		setAxisDefault(output, ka.Axis, defaults)
	}

	for _, rk = range rules.RelKey {
		if !source.HasCode(FamilyRel, rk.Axis) {
			continue
		}

		output.EnableCode(FamilyKey, rk.Neg)
		output.EnableCode(FamilyKey, rk.Pos)
		consumed.EnableCode(FamilyRel, rk.Axis)
	}

	for _, rr = range rules.RelRel {
		if !source.HasCode(FamilyRel, rr.Src) {
			continue
		}

		output.EnableCode(FamilyRel, rr.Dst)
		consumed.EnableCode(FamilyRel, rr.Src)
	}

	for _, ra = range rules.RelAbs {
		if !source.HasCode(FamilyRel, ra.Src) {
			continue
		}

		output.EnableCode(FamilyAbs, ra.Dst)
		consumed.EnableCode(FamilyRel, ra.Src)
		setAxisDefault(output, ra.Dst, defaults)
	}

	for _, ak = range rules.AbsKey {
		if !source.HasCode(FamilyAbs, ak.Axis) {
			continue
		}

		output.EnableCode(FamilyKey, ak.Neg)
		output.EnableCode(FamilyKey, ak.Pos)
		consumed.EnableCode(FamilyAbs, ak.Axis)
	}

	for _, ar = range rules.AbsRel {
		if !source.HasCode(FamilyAbs, ar.Src) {
			continue
		}

		output.EnableCode(FamilyRel, ar.Dst)

		// The source code is consumed on the ABS bitmap, not the KEY one.
		consumed.EnableCode(FamilyAbs, ar.Src)
	}

	for _, aa = range rules.AbsAbs {
		if !source.HasCode(FamilyAbs, aa.Src) {
			continue
		}

		output.EnableCode(FamilyAbs, aa.Dst)
		consumed.EnableCode(FamilyAbs, aa.Src)

		axis, ok = source.Abs[aa.Src]
		if ok {
			output.Abs[aa.Dst] = axis
		}
	}

	// Pass-through merge: out |= source & ~consumed, family by family.
	for _, family = range source.SortedFamilies() {
		for _, code = range source.SortedCodes(family) {
			if consumed.HasCode(family, code) {
				continue
			}

			output.EnableCode(family, code)

			if family != FamilyAbs {
				continue
			}

			axis, ok = source.Abs[code]
			if !ok {
				continue
			}

			_, seen = output.Abs[code]
			if !seen {
				output.Abs[code] = axis
			}
		}
	}

	return output, consumed
}

// setAxisDefault populates output.Abs[axis] with defaults unless it was
// already set to something other than the zero value, matching the
// original's "absmin == 0 && absmax == 0" already-set proxy check.
func setAxisDefault(output Capabilities, axis uint16, defaults RangeDefaults) {
	var (
		existing AbsAxis
		ok       bool
	)

	existing, ok = output.Abs[axis]
	if ok && (existing.Min != 0 || existing.Max != 0) {
		return
	}

	output.Abs[axis] = AbsAxis{Min: defaults.AbsMin, Max: defaults.AbsMax}
}
