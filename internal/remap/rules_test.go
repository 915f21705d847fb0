package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyKey(t *testing.T) {
	var table KeyKeyTable = ParseKeyKey([]string{"30:48", "bogus", "1:2:3"})

	assert.Equal(t, KeyKeyTable{{Src: 30, Dst: 48}}, table)
}

func TestParseKeyRel(t *testing.T) {
	var table KeyRelTable = ParseKeyRel([]string{"105,106:0", "not-a-rule"})

	assert.Equal(t, KeyRelTable{{Neg: 105, Pos: 106, Axis: 0}}, table)
}

func TestParseRelKey(t *testing.T) {
	var table RelKeyTable = ParseRelKey([]string{"0:105,106"})

	assert.Equal(t, RelKeyTable{{Axis: 0, Neg: 105, Pos: 106}}, table)
}

func TestParseAbsKeyMalformed(t *testing.T) {
	var table AbsKeyTable = ParseAbsKey([]string{"0:105", "0,105:106", ""})

	assert.Empty(t, table)
}

func TestKeyKeyLookupFirstMatchWins(t *testing.T) {
	var (
		table      KeyKeyTable = KeyKeyTable{{Src: 30, Dst: 48}, {Src: 30, Dst: 49}}
		rule       KeyKeyRule
		ok         bool
	)

	rule, ok = table.Lookup(30)

	assert.True(t, ok)
	assert.Equal(t, uint16(48), rule.Dst)
}

func TestKeyRelLookupSide(t *testing.T) {
	var (
		table          KeyRelTable = KeyRelTable{{Neg: 105, Pos: 106, Axis: 0}}
		rule           KeyRelRule
		positive, ok   bool
	)

	rule, positive, ok = table.Lookup(106)

	assert.True(t, ok)
	assert.True(t, positive)
	assert.Equal(t, uint16(0), rule.Axis)
}
