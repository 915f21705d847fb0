//go:build linux

package main

import (
	"fmt"
	"strings"

	"github.com/evremap/evremapd/linux/input"
)

var devices []*input.Device = func() []*input.Device {
	var (
		devs []*input.Device
		err  error
	)

	devs, err = input.Devices()
	exitIf(err)

	return devs
}()

func describe(builder *strings.Builder, dev *input.Device) {
	var (
		id, name, phys string
		version        int
		events         []uint16
		event          uint16
		codes          []uint16
		code           uint16
		info           input.AbsInfo
		err            error
	)

	id, err = dev.ID()
	exitIf(err)

	name, err = dev.Name()
	exitIf(err)

	phys, err = dev.Phys()
	exitIf(err)

	version, err = dev.Version()
	exitIf(err)

	fmt.Fprintf(builder, "Name: %s\nID: %s\nPhys: %s\nDriver version: 0x%x\n", name, id, phys, version)
	builder.WriteString("Supported events:\n")

	events, err = dev.Events()
	exitIf(err)

	for _, event = range events {
		fmt.Fprintf(builder, "  %s:\n", eventName(event))

		codes, err = dev.Codes(event)
		exitIf(err)

		for _, code = range codes {
			if event != input.EV_ABS {
				fmt.Fprintf(builder, "    code %d\n", code)

				continue
			}

			info, err = dev.AbsInfo(code)
			exitIf(err)

			fmt.Fprintf(
				builder,
				"    code %d: value=%d min=%d max=%d fuzz=%d flat=%d\n",
				code, info.Value, info.Minimum, info.Maximum, info.Fuzz, info.Flat,
			)
		}
	}

	builder.WriteString(strings.Repeat("-", 60))
	builder.WriteByte('\n')
}
