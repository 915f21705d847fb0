package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sourceWithKeys(codes ...uint16) Capabilities {
	var (
		caps Capabilities = NewCapabilities()
		code uint16
	)

	for _, code = range codes {
		caps.EnableCode(FamilyKey, code)
	}

	return caps
}

func TestSynthesizePassThrough(t *testing.T) {
	var (
		source         Capabilities = sourceWithKeys(30, 31)
		output, consumed Capabilities
	)

	output, consumed = Synthesize(source, RuleSet{}, DefaultRangeDefaults())

	assert.True(t, output.HasCode(FamilyKey, 30))
	assert.True(t, output.HasCode(FamilyKey, 31))
	assert.False(t, consumed.HasCode(FamilyKey, 30))
}

func TestSynthesizeKeyKeyConsumesSource(t *testing.T) {
	var (
		source           Capabilities = sourceWithKeys(30, 31)
		rules            RuleSet      = RuleSet{KeyKey: KeyKeyTable{{Src: 30, Dst: 48}}}
		output, consumed Capabilities
	)

	output, consumed = Synthesize(source, rules, DefaultRangeDefaults())

	assert.True(t, output.HasCode(FamilyKey, 48))
	assert.False(t, output.HasCode(FamilyKey, 30))
	assert.True(t, consumed.HasCode(FamilyKey, 30))
	assert.True(t, output.HasCode(FamilyKey, 31))
}

func TestSynthesizeAbsRelConsumesAbsNotKey(t *testing.T) {
	var (
		source           Capabilities = NewCapabilities()
		rules            RuleSet
		output, consumed Capabilities
	)

	source.EnableCode(FamilyAbs, 0)
	source.Abs[0] = AbsAxis{Min: -100, Max: 100}
	rules = RuleSet{AbsRel: AbsRelTable{{Src: 0, Dst: 1}}}

	output, consumed = Synthesize(source, rules, DefaultRangeDefaults())

	assert.True(t, output.HasCode(FamilyRel, 1))
	assert.True(t, consumed.HasCode(FamilyAbs, 0))
	assert.False(t, consumed.HasCode(FamilyKey, 0))
}

func TestSynthesizeAbsAbsInheritsMetadata(t *testing.T) {
	var (
		source           Capabilities = NewCapabilities()
		rules            RuleSet
		output, consumed Capabilities
	)

	source.EnableCode(FamilyAbs, 0)
	source.Abs[0] = AbsAxis{Min: -100, Max: 100, Fuzz: 2, Flat: 1}
	rules = RuleSet{AbsAbs: AbsAbsTable{{Src: 0, Dst: 1}}}

	output, consumed = Synthesize(source, rules, DefaultRangeDefaults())

	assert.True(t, consumed.HasCode(FamilyAbs, 0))
	assert.Equal(t, AbsAxis{Min: -100, Max: 100, Fuzz: 2, Flat: 1}, output.Abs[1])
}
