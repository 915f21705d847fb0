package remap

// Translator drives one inbound event through the rule tables,
// consulting the normalizer and key-shadow tracker, and produces the
// outbound event sequence.
type Translator struct {
	rules      RuleSet
	defaults   RangeDefaults
	sourceAbs  map[uint16]AbsAxis
	destAbs    map[uint16]AbsAxis
	norm       *Normalizer
	shadow     Shadow
}

// NewTranslator builds a translator. sourceAbs is the opened source
// device's declared per-axis metadata (used by AK/AR/AA and the
// normalizer); destAbs is the output device's synthesized per-axis
// metadata (used by KA/RA/AA to know the destination's declared
// range); norm may be nil if no axis is normalized.
func NewTranslator(rules RuleSet, defaults RangeDefaults, sourceAbs, destAbs map[uint16]AbsAxis, norm *Normalizer) *Translator {
	if norm == nil {
		norm = NewNormalizer(NormalizerConfig{}, nil)
	}

	return &Translator{
		rules:     rules,
		defaults:  defaults,
		sourceAbs: sourceAbs,
		destAbs:   destAbs,
		norm:      norm,
		shadow:    NewShadow(),
	}
}

// Shadow exposes the translator's key-shadow tracker, for tests and
// other read-only inspection.
func (t *Translator) Shadow() Shadow {
	return t.shadow
}

func (t *Translator) emit(out []Event, e Event) []Event {
	if e.Family == FamilyKey {
		t.shadow.Update(e.Code, e.Value)
	}

	return append(out, e)
}

func (t *Translator) destAxis(code uint16) AbsAxis {
	var (
		axis AbsAxis
		ok   bool
	)

	axis, ok = t.destAbs[code]
	if ok {
		return axis
	}

	return AbsAxis{Min: t.defaults.AbsMin, Max: t.defaults.AbsMax}
}

func (t *Translator) sourceAxis(code uint16) AbsAxis {
	return t.sourceAbs[code]
}

// Translate converts one inbound event into zero or more outbound
// events, in order.
func (t *Translator) Translate(e Event) []Event {
	switch e.Family {
	case FamilyKey:
		return t.translateKey(e)
	case FamilyRel:
		return t.translateRel(e)
	case FamilyAbs:
		return t.translateAbs(e)
	default:
		return t.emit(nil, e)
	}
}

func (t *Translator) translateKey(e Event) []Event {
	var (
		kk       KeyKeyRule
		kr       KeyRelRule
		ka       KeyAbsRule
		positive bool
		ok       bool
	)

	kk, ok = t.rules.KeyKey.Lookup(e.Code)
	if ok {
		return t.emit(nil, e.retarget(FamilyKey, kk.Dst))
	}

	kr, positive, ok = t.rules.KeyRel.Lookup(e.Code)
	if ok {
		var value int32

		switch {
		case e.Value != 0 && positive:
			value = t.defaults.RelMax
		case e.Value != 0:
			value = t.defaults.RelMin
		default:
			value = (t.defaults.RelMin + t.defaults.RelMax) / 2
		}

		return t.emit(nil, e.retarget(FamilyRel, kr.Axis).withValue(value))
	}

	ka, positive, ok = t.rules.KeyAbs.Lookup(e.Code)
	if ok {
		var (
			axis  AbsAxis = t.destAxis(ka.Axis)
			value int32
		)

		switch {
		case e.Value != 0 && positive:
			value = axis.Max
		case e.Value != 0:
			value = axis.Min
		default:
			value = (axis.Min + axis.Max) / 2
		}

		return t.emit(nil, e.retarget(FamilyAbs, ka.Axis).withValue(value))
	}

	return t.emit(nil, e)
}

func (t *Translator) translateRel(e Event) []Event {
	var (
		rk    RelKeyRule
		rr    RelRelRule
		ra    RelAbsRule
		out   []Event
		ok    bool
	)

	rk, ok = t.rules.RelKey.Lookup(e.Code)
	if ok {
		return t.translateRelKey(e, rk)
	}

	rr, ok = t.rules.RelRel.Lookup(e.Code)
	if ok {
		return t.emit(out, e.retarget(FamilyRel, rr.Dst))
	}

	ra, ok = t.rules.RelAbs.Lookup(e.Code)
	if ok {
		return t.emit(out, t.relAbs(e, ra))
	}

	return t.emit(out, e)
}

// translateRelKey implements the RK release-before-press discipline:
// a negative delta releases the held positive key before pressing the
// negative one, a positive delta is symmetric, and a zero delta
// releases whichever key is held without pressing either.
func (t *Translator) translateRelKey(e Event, rk RelKeyRule) []Event {
	var out []Event

	switch {
	case e.Value < 0:
		if t.shadow.Held(rk.Pos) {
			out = t.emit(out, e.retarget(FamilyKey, rk.Pos).withValue(0))
		}

		out = t.emit(out, e.retarget(FamilyKey, rk.Neg).withValue(1))
	case e.Value > 0:
		if t.shadow.Held(rk.Neg) {
			out = t.emit(out, e.retarget(FamilyKey, rk.Neg).withValue(0))
		}

		out = t.emit(out, e.retarget(FamilyKey, rk.Pos).withValue(1))
	default:
		if t.shadow.Held(rk.Neg) {
			out = t.emit(out, e.retarget(FamilyKey, rk.Neg).withValue(0))
		}

		if t.shadow.Held(rk.Pos) {
			out = t.emit(out, e.retarget(FamilyKey, rk.Pos).withValue(0))
		}
	}

	return out
}

func (t *Translator) relAbs(e Event, ra RelAbsRule) Event {
	var (
		rmin, rmax int32 = t.defaults.RelMin, t.defaults.RelMax
		axis       AbsAxis = t.destAxis(ra.Dst)
		value      int32 = e.Value
	)

	if value < rmin {
		value = rmin
	}

	if value > rmax {
		value = rmax
	}

	value = (value-rmin)*(axis.Max-axis.Min)/(rmax-rmin) + axis.Min

	return e.retarget(FamilyAbs, ra.Dst).withValue(value)
}

func (t *Translator) translateAbs(e Event) []Event {
	var (
		ak    AbsKeyRule
		ar    AbsRelRule
		aa    AbsAbsRule
		value int32
		ok    bool
	)

	value = e.Value

	if t.norm.Has(e.Code) {
		var src AbsAxis = t.sourceAxis(e.Code)

		value, ok = t.norm.Normalize(e.Code, e.Value, src.Min, src.Max)
		if !ok {
			return nil
		}

		e = e.withValue(value)
	}

	ak, ok = t.rules.AbsKey.Lookup(e.Code)
	if ok {
		return t.translateAbsKey(e, ak)
	}

	ar, ok = t.rules.AbsRel.Lookup(e.Code)
	if ok {
		return t.emit(nil, t.absRel(e, ar))
	}

	aa, ok = t.rules.AbsAbs.Lookup(e.Code)
	if ok {
		return t.emit(nil, t.absAbs(e, aa))
	}

	return t.emit(nil, e)
}

// translateAbsKey implements the AK quarter-range threshold bands: the
// lower quarter of the source axis presses the negative key, the upper
// quarter presses the positive key, and the middle half only releases
// whichever key is currently held.
func (t *Translator) translateAbsKey(e Event, ak AbsKeyRule) []Event {
	var (
		src              AbsAxis = t.sourceAxis(ak.Axis)
		span             int32   = src.Max - src.Min
		quarter          int32   = span / 4
		lower            int32   = src.Min + quarter
		upper            int32   = src.Max - quarter
		out              []Event
	)

	switch {
	case e.Value <= lower:
		if t.shadow.Held(ak.Pos) {
			out = t.emit(out, e.retarget(FamilyKey, ak.Pos).withValue(0))
		}

		out = t.emit(out, e.retarget(FamilyKey, ak.Neg).withValue(1))
	case e.Value >= upper:
		if t.shadow.Held(ak.Neg) {
			out = t.emit(out, e.retarget(FamilyKey, ak.Neg).withValue(0))
		}

		out = t.emit(out, e.retarget(FamilyKey, ak.Pos).withValue(1))
	default:
		if t.shadow.Held(ak.Neg) {
			out = t.emit(out, e.retarget(FamilyKey, ak.Neg).withValue(0))
		}

		if t.shadow.Held(ak.Pos) {
			out = t.emit(out, e.retarget(FamilyKey, ak.Pos).withValue(0))
		}
	}

	return out
}

func (t *Translator) absRel(e Event, ar AbsRelRule) Event {
	var (
		src        AbsAxis = t.sourceAxis(ar.Src)
		span       int32   = src.Max - src.Min
		rmin, rmax int32   = t.defaults.RelMin, t.defaults.RelMax
		value      int32
	)

	value = rmin + (e.Value-src.Min)*(rmax-rmin)/span

	return e.retarget(FamilyRel, ar.Dst).withValue(value)
}

func (t *Translator) absAbs(e Event, aa AbsAbsRule) Event {
	var (
		src   AbsAxis = t.sourceAxis(aa.Src)
		dst   AbsAxis = t.destAxis(aa.Dst)
		span  int32   = src.Max - src.Min
		value int32
	)

	value = dst.Min + (e.Value-src.Min)*(dst.Max-dst.Min)/span

	return e.retarget(FamilyAbs, aa.Dst).withValue(value)
}
