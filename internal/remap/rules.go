package remap

import (
	"strconv"
	"strings"
)

// KeyKeyRule renames a key one-for-one.
type KeyKeyRule struct {
	Src uint16
	Dst uint16
}

// KeyRelRule turns a pair of keys into a relative axis: Neg drives the
// negative direction, Pos the positive direction.
type KeyRelRule struct {
	Neg, Pos uint16
	Axis     uint16
}

// KeyAbsRule turns a pair of keys into an absolute axis.
type KeyAbsRule struct {
	Neg, Pos uint16
	Axis     uint16
}

// RelKeyRule turns a relative axis into a pair of keys.
type RelKeyRule struct {
	Axis     uint16
	Neg, Pos uint16
}

// RelRelRule renames a relative axis.
type RelRelRule struct {
	Src uint16
	Dst uint16
}

// RelAbsRule turns a relative axis into an absolute axis with range fit.
type RelAbsRule struct {
	Src uint16
	Dst uint16
}

// AbsKeyRule turns an absolute axis into a pair of keys via
// quarter-range thresholds.
type AbsKeyRule struct {
	Axis     uint16
	Neg, Pos uint16
}

// AbsRelRule turns an absolute axis into a relative axis with range fit.
type AbsRelRule struct {
	Src uint16
	Dst uint16
}

// AbsAbsRule renames an absolute axis, carrying its metadata.
type AbsAbsRule struct {
	Src uint16
	Dst uint16
}

// The nine relation tables. Each is a plain slice in insertion order;
// lookups are linear and stop at the first match, matching the
// first-match-wins contract and the tiny expected table sizes.
type (
	KeyKeyTable []KeyKeyRule
	KeyRelTable []KeyRelRule
	KeyAbsTable []KeyAbsRule
	RelKeyTable []RelKeyRule
	RelRelTable []RelRelRule
	RelAbsTable []RelAbsRule
	AbsKeyTable []AbsKeyRule
	AbsRelTable []AbsRelRule
	AbsAbsTable []AbsAbsRule
)

// Lookup returns the first rule whose Src matches code.
func (t KeyKeyTable) Lookup(code uint16) (KeyKeyRule, bool) {
	for _, rule := range t {
		if rule.Src == code {
			return rule, true
		}
	}

	return KeyKeyRule{}, false
}

// Lookup returns the first rule whose Neg or Pos matches code, and
// reports whether code matched the negative or positive side.
func (t KeyRelTable) Lookup(code uint16) (rule KeyRelRule, positive, ok bool) {
	for _, rule = range t {
		switch code {
		case rule.Neg:
			return rule, false, true
		case rule.Pos:
			return rule, true, true
		}
	}

	return KeyRelRule{}, false, false
}

// Lookup returns the first rule whose Neg or Pos matches code, and
// reports whether code matched the negative or positive side.
func (t KeyAbsTable) Lookup(code uint16) (rule KeyAbsRule, positive, ok bool) {
	for _, rule = range t {
		switch code {
		case rule.Neg:
			return rule, false, true
		case rule.Pos:
			return rule, true, true
		}
	}

	return KeyAbsRule{}, false, false
}

// Lookup returns the first rule whose Axis matches code.
func (t RelKeyTable) Lookup(code uint16) (RelKeyRule, bool) {
	for _, rule := range t {
		if rule.Axis == code {
			return rule, true
		}
	}

	return RelKeyRule{}, false
}

// Lookup returns the first rule whose Src matches code.
func (t RelRelTable) Lookup(code uint16) (RelRelRule, bool) {
	for _, rule := range t {
		if rule.Src == code {
			return rule, true
		}
	}

	return RelRelRule{}, false
}

// Lookup returns the first rule whose Src matches code.
func (t RelAbsTable) Lookup(code uint16) (RelAbsRule, bool) {
	for _, rule := range t {
		if rule.Src == code {
			return rule, true
		}
	}

	return RelAbsRule{}, false
}

// Lookup returns the first rule whose Axis matches code.
func (t AbsKeyTable) Lookup(code uint16) (AbsKeyRule, bool) {
	for _, rule := range t {
		if rule.Axis == code {
			return rule, true
		}
	}

	return AbsKeyRule{}, false
}

// Lookup returns the first rule whose Src matches code.
func (t AbsRelTable) Lookup(code uint16) (AbsRelRule, bool) {
	for _, rule := range t {
		if rule.Src == code {
			return rule, true
		}
	}

	return AbsRelRule{}, false
}

// Lookup returns the first rule whose Src matches code.
func (t AbsAbsTable) Lookup(code uint16) (AbsAbsRule, bool) {
	for _, rule := range t {
		if rule.Src == code {
			return rule, true
		}
	}

	return AbsAbsRule{}, false
}

func parseCode(s string) (uint16, bool) {
	var (
		n   uint64
		err error
	)

	n, err = strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, false
	}

	return uint16(n), true
}

// parsePair parses the "a:b" schema shared by KK, RR, RA, AR, and AA.
func parsePair(entry string) (a, b uint16, ok bool) {
	var left, right string

	left, right, ok = strings.Cut(entry, ":")
	if !ok {
		return 0, 0, false
	}

	a, ok = parseCode(left)
	if !ok {
		return 0, 0, false
	}

	b, ok = parseCode(right)
	if !ok {
		return 0, 0, false
	}

	return a, b, true
}

// parseCommaLeft parses the "a,b:c" schema shared by KR and KA.
func parseCommaLeft(entry string) (a, b, c uint16, ok bool) {
	var left, right, leftA, leftB string

	left, right, ok = strings.Cut(entry, ":")
	if !ok {
		return 0, 0, 0, false
	}

	leftA, leftB, ok = strings.Cut(left, ",")
	if !ok {
		return 0, 0, 0, false
	}

	a, ok = parseCode(leftA)
	if !ok {
		return 0, 0, 0, false
	}

	b, ok = parseCode(leftB)
	if !ok {
		return 0, 0, 0, false
	}

	c, ok = parseCode(right)
	if !ok {
		return 0, 0, 0, false
	}

	return a, b, c, true
}

// parseCommaRight parses the "a:b,c" schema shared by RK and AK.
func parseCommaRight(entry string) (a, b, c uint16, ok bool) {
	var left, right, rightB, rightC string

	left, right, ok = strings.Cut(entry, ":")
	if !ok {
		return 0, 0, 0, false
	}

	a, ok = parseCode(left)
	if !ok {
		return 0, 0, 0, false
	}

	rightB, rightC, ok = strings.Cut(right, ",")
	if !ok {
		return 0, 0, 0, false
	}

	b, ok = parseCode(rightB)
	if !ok {
		return 0, 0, 0, false
	}

	c, ok = parseCode(rightC)
	if !ok {
		return 0, 0, 0, false
	}

	return a, b, c, true
}

// ParseKeyKey parses entries of the form "a:b". Malformed entries are
// silently dropped.
func ParseKeyKey(entries []string) KeyKeyTable {
	var (
		table      KeyKeyTable
		entry      string
		src, dst   uint16
		ok         bool
	)

	table = make(KeyKeyTable, 0, len(entries))
	for _, entry = range entries {
		src, dst, ok = parsePair(entry)
		if !ok {
			continue
		}

		table = append(table, KeyKeyRule{Src: src, Dst: dst})
	}

	return table
}

// ParseKeyRel parses entries of the form "neg,pos:axis".
func ParseKeyRel(entries []string) KeyRelTable {
	var (
		table          KeyRelTable
		entry          string
		neg, pos, axis uint16
		ok             bool
	)

	table = make(KeyRelTable, 0, len(entries))
	for _, entry = range entries {
		neg, pos, axis, ok = parseCommaLeft(entry)
		if !ok {
			continue
		}

		table = append(table, KeyRelRule{Neg: neg, Pos: pos, Axis: axis})
	}

	return table
}

// ParseKeyAbs parses entries of the form "neg,pos:axis".
func ParseKeyAbs(entries []string) KeyAbsTable {
	var (
		table          KeyAbsTable
		entry          string
		neg, pos, axis uint16
		ok             bool
	)

	table = make(KeyAbsTable, 0, len(entries))
	for _, entry = range entries {
		neg, pos, axis, ok = parseCommaLeft(entry)
		if !ok {
			continue
		}

		table = append(table, KeyAbsRule{Neg: neg, Pos: pos, Axis: axis})
	}

	return table
}

// ParseRelKey parses entries of the form "axis:neg,pos".
func ParseRelKey(entries []string) RelKeyTable {
	var (
		table          RelKeyTable
		entry          string
		axis, neg, pos uint16
		ok             bool
	)

	table = make(RelKeyTable, 0, len(entries))
	for _, entry = range entries {
		axis, neg, pos, ok = parseCommaRight(entry)
		if !ok {
			continue
		}

		table = append(table, RelKeyRule{Axis: axis, Neg: neg, Pos: pos})
	}

	return table
}

// ParseRelRel parses entries of the form "src:dst".
func ParseRelRel(entries []string) RelRelTable {
	var (
		table    RelRelTable
		entry    string
		src, dst uint16
		ok       bool
	)

	table = make(RelRelTable, 0, len(entries))
	for _, entry = range entries {
		src, dst, ok = parsePair(entry)
		if !ok {
			continue
		}

		table = append(table, RelRelRule{Src: src, Dst: dst})
	}

	return table
}

// ParseRelAbs parses entries of the form "src:dst".
func ParseRelAbs(entries []string) RelAbsTable {
	var (
		table    RelAbsTable
		entry    string
		src, dst uint16
		ok       bool
	)

	table = make(RelAbsTable, 0, len(entries))
	for _, entry = range entries {
		src, dst, ok = parsePair(entry)
		if !ok {
			continue
		}

		table = append(table, RelAbsRule{Src: src, Dst: dst})
	}

	return table
}

// ParseAbsKey parses entries of the form "axis:neg,pos".
func ParseAbsKey(entries []string) AbsKeyTable {
	var (
		table          AbsKeyTable
		entry          string
		axis, neg, pos uint16
		ok             bool
	)

	table = make(AbsKeyTable, 0, len(entries))
	for _, entry = range entries {
		axis, neg, pos, ok = parseCommaRight(entry)
		if !ok {
			continue
		}

		table = append(table, AbsKeyRule{Axis: axis, Neg: neg, Pos: pos})
	}

	return table
}

// ParseAbsRel parses entries of the form "src:dst".
func ParseAbsRel(entries []string) AbsRelTable {
	var (
		table    AbsRelTable
		entry    string
		src, dst uint16
		ok       bool
	)

	table = make(AbsRelTable, 0, len(entries))
	for _, entry = range entries {
		src, dst, ok = parsePair(entry)
		if !ok {
			continue
		}

		table = append(table, AbsRelRule{Src: src, Dst: dst})
	}

	return table
}

// ParseAbsAbs parses entries of the form "src:dst".
func ParseAbsAbs(entries []string) AbsAbsTable {
	var (
		table    AbsAbsTable
		entry    string
		src, dst uint16
		ok       bool
	)

	table = make(AbsAbsTable, 0, len(entries))
	for _, entry = range entries {
		src, dst, ok = parsePair(entry)
		if !ok {
			continue
		}

		table = append(table, AbsAbsRule{Src: src, Dst: dst})
	}

	return table
}

// RuleSet groups the nine relation tables consulted by the translator
// and the capability synthesizer.
type RuleSet struct {
	KeyKey KeyKeyTable
	KeyRel KeyRelTable
	KeyAbs KeyAbsTable
	RelKey RelKeyTable
	RelRel RelRelTable
	RelAbs RelAbsTable
	AbsKey AbsKeyTable
	AbsRel AbsRelTable
	AbsAbs AbsAbsTable
}
