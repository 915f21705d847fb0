package remap

// Event is a family/code/value record carrying an opaque timestamp.
// Family values match the Linux kernel's EV_* numbering (see
// [linux/input]), but this package never imports that package: the
// numbers are just small integers to it.
//
// [linux/input]: https://pkg.go.dev/github.com/evremap/evremapd/linux/input
type Event struct {
	// Sec and Usec are the opaque timestamp halves, copied through from
	// the triggering input event and never invented or modified here.
	Sec, Usec uint64

	// Family classifies the event (key, relative, absolute, and so on).
	Family uint16

	// Code identifies the specific key, axis, or signal within Family.
	Code uint16

	// Value carries the event's payload: 0/1/2 for key events, a delta
	// for relative events, a sample for absolute events.
	Value int32
}

// Event family tags, matching the Linux kernel's EV_* numbering.
const (
	FamilySyn      uint16 = 0x00
	FamilyKey      uint16 = 0x01
	FamilyRel      uint16 = 0x02
	FamilyAbs      uint16 = 0x03
	FamilyMsc      uint16 = 0x04
	FamilySw       uint16 = 0x05
	FamilyLed      uint16 = 0x11
	FamilySnd      uint16 = 0x12
	FamilyRep      uint16 = 0x14
	FamilyFf       uint16 = 0x15
	FamilyPwr      uint16 = 0x16
	FamilyFfStatus uint16 = 0x17
)

// withValue returns a copy of e with Value replaced, keeping the
// timestamp, family, and code unchanged.
func (e Event) withValue(value int32) Event {
	e.Value = value

	return e
}

// retarget returns a copy of e redirected at a different family and
// code, keeping the timestamp and value unchanged.
func (e Event) retarget(family, code uint16) Event {
	e.Family = family
	e.Code = code

	return e
}
