// Command evremap-list discovers evdev input devices and prints their
// identity, capabilities, and (for absolute axes) current calibration,
// so a user can pick the -idev argument for evremapd.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/evremap/evremapd/linux/input"
)

var eventNames map[uint16]string = map[uint16]string{
	input.EV_SYN:       "Sync",
	input.EV_KEY:       "Key",
	input.EV_REL:       "Relative",
	input.EV_ABS:       "Absolute",
	input.EV_MSC:       "Misc",
	input.EV_SW:        "Switch",
	input.EV_LED:       "LED",
	input.EV_SND:       "Sound",
	input.EV_REP:       "Autorepeat",
	input.EV_FF:        "Force Feedback",
	input.EV_PWR:       "Power",
	input.EV_FF_STATUS: "Force Feedback Status",
}

func exitIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "evremap-list:", err)
		os.Exit(1)
	}
}

func eventName(eventType uint16) string {
	var (
		name string
		ok   bool
	)

	name, ok = eventNames[eventType]
	if !ok {
		return fmt.Sprintf("type %d", eventType)
	}

	return name
}

func main() {
	var builder strings.Builder

	for _, dev := range devices {
		describe(&builder, dev)

		exitIf(dev.Close())
	}

	fmt.Print(builder.String())
}
