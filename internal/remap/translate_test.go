package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTranslator(rules RuleSet) *Translator {
	return NewTranslator(rules, DefaultRangeDefaults(), nil, nil, nil)
}

func TestTranslateKeyKeySwap(t *testing.T) {
	var (
		tr  *Translator = newTestTranslator(RuleSet{KeyKey: KeyKeyTable{{Src: 30, Dst: 48}}})
		out []Event
	)

	out = tr.Translate(Event{Family: FamilyKey, Code: 30, Value: 1})
	assert.Equal(t, []Event{{Family: FamilyKey, Code: 48, Value: 1}}, out)

	out = tr.Translate(Event{Family: FamilyKey, Code: 30, Value: 0})
	assert.Equal(t, []Event{{Family: FamilyKey, Code: 48, Value: 0}}, out)
}

func TestTranslateKeyRelToAxis(t *testing.T) {
	var (
		rules RuleSet = RuleSet{KeyRel: KeyRelTable{{Neg: 105, Pos: 106, Axis: 0}}}
		defaults RangeDefaults = RangeDefaults{RelMin: -10, RelMax: 10}
		tr    *Translator = NewTranslator(rules, defaults, nil, nil, nil)
		out   []Event
	)

	out = tr.Translate(Event{Family: FamilyKey, Code: 105, Value: 1})
	assert.Equal(t, []Event{{Family: FamilyRel, Code: 0, Value: -10}}, out)

	out = tr.Translate(Event{Family: FamilyKey, Code: 106, Value: 1})
	assert.Equal(t, []Event{{Family: FamilyRel, Code: 0, Value: 10}}, out)

	out = tr.Translate(Event{Family: FamilyKey, Code: 105, Value: 0})
	assert.Equal(t, []Event{{Family: FamilyRel, Code: 0, Value: 0}}, out)
}

func TestTranslateRelKeyReleaseBeforePress(t *testing.T) {
	var (
		rules RuleSet     = RuleSet{RelKey: RelKeyTable{{Axis: 0, Neg: 105, Pos: 106}}}
		tr    *Translator = newTestTranslator(rules)
		out   []Event
	)

	out = tr.Translate(Event{Family: FamilyRel, Code: 0, Value: 3})
	assert.Equal(t, []Event{{Family: FamilyKey, Code: 106, Value: 1}}, out)

	out = tr.Translate(Event{Family: FamilyRel, Code: 0, Value: -2})
	assert.Equal(t, []Event{
		{Family: FamilyKey, Code: 106, Value: 0},
		{Family: FamilyKey, Code: 105, Value: 1},
	}, out)

	out = tr.Translate(Event{Family: FamilyRel, Code: 0, Value: 0})
	assert.Equal(t, []Event{{Family: FamilyKey, Code: 105, Value: 0}}, out)
}

func TestTranslateAbsKeyQuarterBands(t *testing.T) {
	var (
		rules RuleSet     = RuleSet{AbsKey: AbsKeyTable{{Axis: 0, Neg: 105, Pos: 106}}}
		tr    *Translator = NewTranslator(rules, DefaultRangeDefaults(),
			map[uint16]AbsAxis{0: {Min: -100, Max: 100}}, nil, nil)
		out []Event
	)

	out = tr.Translate(Event{Family: FamilyAbs, Code: 0, Value: -80})
	assert.Equal(t, []Event{{Family: FamilyKey, Code: 105, Value: 1}}, out)

	out = tr.Translate(Event{Family: FamilyAbs, Code: 0, Value: 0})
	assert.Equal(t, []Event{{Family: FamilyKey, Code: 105, Value: 0}}, out)

	out = tr.Translate(Event{Family: FamilyAbs, Code: 0, Value: 80})
	assert.Equal(t, []Event{{Family: FamilyKey, Code: 106, Value: 1}}, out)

	out = tr.Translate(Event{Family: FamilyAbs, Code: 0, Value: -80})
	assert.Equal(t, []Event{
		{Family: FamilyKey, Code: 106, Value: 0},
		{Family: FamilyKey, Code: 105, Value: 1},
	}, out)
}

func TestTranslateAbsAbsRangeRemap(t *testing.T) {
	var (
		rules RuleSet     = RuleSet{AbsAbs: AbsAbsTable{{Src: 0, Dst: 1}}}
		tr    *Translator = NewTranslator(rules, DefaultRangeDefaults(),
			map[uint16]AbsAxis{0: {Min: -100, Max: 100}},
			map[uint16]AbsAxis{1: {Min: -100, Max: 100}}, nil)
		out []Event
	)

	out = tr.Translate(Event{Family: FamilyAbs, Code: 0, Value: 50})
	assert.Equal(t, []Event{{Family: FamilyAbs, Code: 1, Value: 50}}, out)
}

func TestTranslatePassThroughIdentity(t *testing.T) {
	var (
		tr  *Translator = newTestTranslator(RuleSet{})
		e   Event       = Event{Sec: 1, Usec: 2, Family: FamilyKey, Code: 99, Value: 1}
		out []Event
	)

	out = tr.Translate(e)
	assert.Equal(t, []Event{e}, out)
}

func TestTranslateKeyShadowSoundness(t *testing.T) {
	var (
		tr *Translator = newTestTranslator(RuleSet{KeyKey: KeyKeyTable{{Src: 30, Dst: 48}}})
	)

	tr.Translate(Event{Family: FamilyKey, Code: 30, Value: 1})
	assert.True(t, tr.Shadow().Held(48))

	tr.Translate(Event{Family: FamilyKey, Code: 30, Value: 0})
	assert.False(t, tr.Shadow().Held(48))
}
