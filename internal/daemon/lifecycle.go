// Package daemon wires the remapping core in [internal/remap] to the
// real Linux evdev/uinput transport: it opens the source device,
// negotiates capabilities, publishes the virtual device, and runs the
// steady-state read/translate/write loop until a termination signal
// arrives.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/evremap/evremapd/internal/remap"
	"github.com/evremap/evremapd/linux/input"
	"github.com/evremap/evremapd/linux/uinput"
)

// family order fixed for capability publication and verbose
// inventory printing, matching spec.md's "fixed family order" step.
var familyOrder = []uint16{
	remap.FamilyKey,
	remap.FamilyRel,
	remap.FamilyAbs,
	remap.FamilyMsc,
	remap.FamilySw,
	remap.FamilyLed,
	remap.FamilySnd,
	remap.FamilyFf,
}

// evFamilies maps a remap.Family constant to its linux/input EV_*
// counterpart, needed only at the device-transport boundary; the core
// package itself never imports linux/input.
var evFamilies = map[uint16]uint16{
	remap.FamilySyn: input.EV_SYN,
	remap.FamilyKey: input.EV_KEY,
	remap.FamilyRel: input.EV_REL,
	remap.FamilyAbs: input.EV_ABS,
	remap.FamilyMsc: input.EV_MSC,
	remap.FamilySw:  input.EV_SW,
	remap.FamilyLed: input.EV_LED,
	remap.FamilySnd: input.EV_SND,
	remap.FamilyFf:  input.EV_FF,
}

// Config gathers every startup option C6 needs: the rule tables and
// normalizer configuration come from the CLI layer, already parsed
// into internal/remap types.
type Config struct {
	SourcePath string
	SinkPath   string
	Grab       bool
	PIDFile    string
	Rules      remap.RuleSet
	Defaults   remap.RangeDefaults
	NormConfig remap.NormalizerConfig
	NormAxes   []uint16
	Log        *Logger
}

// Run opens the source device, negotiates capabilities, publishes the
// virtual device, and drives the steady-state loop until ctx is
// cancelled or an I/O error terminates it. It returns nil on a clean,
// signal-driven shutdown.
func Run(ctx context.Context, cfg Config) error {
	var (
		source    *input.Device
		sink      *uinput.Device
		pidFile   *PIDFile
		translate *remap.Translator
		cancel    context.CancelFunc
		err       error
	)

	source, err = input.NewDevice(cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("daemon.Run: %w", err)
	}
	defer source.Close()

	if cfg.Grab {
		err = source.Grab()
		if err != nil {
			return fmt.Errorf("daemon.Run: %w", err)
		}

		defer source.Ungrab()
	}

	sink, translate, err = setup(source, cfg)
	if err != nil {
		return fmt.Errorf("daemon.Run: %w", err)
	}
	defer sink.Close()
	defer sink.Destroy()

	if cfg.PIDFile != "" {
		pidFile, err = WritePIDFile(cfg.PIDFile)
		if err != nil {
			return fmt.Errorf("daemon.Run: %w", err)
		}

		defer pidFile.Remove()
	}

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// source.ReadEvent blocks in a plain file read with no way to poll
	// ctx itself, so a termination signal arriving while the source is
	// idle would otherwise go unnoticed until the next input event.
	// Releasing the grab and then closing the source out from under
	// that read forces it to return an error, which loop treats as
	// clean shutdown once ctx is done. The sink is left to the deferred
	// Destroy and Close above.
	go func() {
		<-ctx.Done()

		if cfg.Grab {
			source.Ungrab()
		}

		source.Close()
	}()

	return loop(ctx, source, sink, translate, cfg.Log)
}

// setup performs the one-shot startup sequence: query source
// capabilities, synthesize the output capability set via
// [remap.Synthesize], publish every enabled (family, code) to the
// sink in fixed family order, write the descriptor, and create the
// device.
func setup(source *input.Device, cfg Config) (*uinput.Device, *remap.Translator, error) {
	var (
		sourceCaps remap.Capabilities
		outputCaps remap.Capabilities
		sourceAbs  map[uint16]remap.AbsAxis
		destAbs    map[uint16]remap.AbsAxis
		name, phys string
		identity   input.ID
		sink       *uinput.Device
		norm       *remap.Normalizer
		translator *remap.Translator
		code       uint16
		axis       remap.AbsAxis
		err        error
	)

	sourceCaps, sourceAbs, err = queryCapabilities(source)
	if err != nil {
		return nil, nil, fmt.Errorf("daemon.setup: %w", err)
	}

	outputCaps, _ = remap.Synthesize(sourceCaps, cfg.Rules, cfg.Defaults)

	name, err = source.Name()
	if err != nil {
		return nil, nil, fmt.Errorf("daemon.setup: %w", err)
	}

	identity, err = source.RawID()
	if err != nil {
		return nil, nil, fmt.Errorf("daemon.setup: %w", err)
	}

	phys = fmt.Sprintf("evremapd/%d", os.Getpid())

	sink, err = publish(sinkPath(cfg.SinkPath), name, identity, phys, outputCaps)
	if err != nil {
		return nil, nil, fmt.Errorf("daemon.setup: %w", err)
	}

	destAbs = make(map[uint16]remap.AbsAxis, len(outputCaps.Abs))
	for code, axis = range outputCaps.Abs {
		destAbs[code] = axis
	}

	if len(cfg.NormAxes) > 0 {
		norm = remap.NewNormalizer(cfg.NormConfig, cfg.NormAxes)
	}

	translator = remap.NewTranslator(cfg.Rules, cfg.Defaults, sourceAbs, destAbs, norm)

	if cfg.Log != nil {
		logInventory(cfg.Log, name, phys, sourceCaps, outputCaps)
	}

	return sink, translator, nil
}

// queryCapabilities reads every family bitmap the source advertises,
// plus per-axis absolute metadata, and returns them as a
// [remap.Capabilities] value together with a plain map of the
// absolute-axis metadata (the shape [remap.Translator] wants).
func queryCapabilities(source *input.Device) (remap.Capabilities, map[uint16]remap.AbsAxis, error) {
	var (
		caps      remap.Capabilities = remap.NewCapabilities()
		sourceAbs map[uint16]remap.AbsAxis = make(map[uint16]remap.AbsAxis)
		events    []uint16
		ev        uint16
		codes     []uint16
		code      uint16
		family    uint16
		ok        bool
		err       error
	)

	events, err = source.Events()
	if err != nil {
		return remap.Capabilities{}, nil, fmt.Errorf("queryCapabilities: %w", err)
	}

	for _, ev = range events {
		family, ok = remapFamily(ev)
		if !ok {
			continue
		}

		codes, err = source.Codes(ev)
		if err != nil {
			return remap.Capabilities{}, nil, fmt.Errorf("queryCapabilities: %w", err)
		}

		for _, code = range codes {
			caps.EnableCode(family, code)

			if ev != input.EV_ABS {
				continue
			}

			var (
				info input.AbsInfo
				axis remap.AbsAxis
			)

			info, err = source.AbsInfo(code)
			if err != nil {
				return remap.Capabilities{}, nil, fmt.Errorf("queryCapabilities: %w", err)
			}

			axis = remap.AbsAxis{Min: info.Minimum, Max: info.Maximum, Fuzz: info.Fuzz, Flat: info.Flat}
			caps.Abs[code] = axis
			sourceAbs[code] = axis
		}
	}

	return caps, sourceAbs, nil
}

// remapFamily maps a kernel EV_* constant to the core's Family
// constants, reporting false for the event types the daemon neither
// queries nor forwards (EV_REP, EV_PWR, EV_FF_STATUS).
func remapFamily(ev uint16) (uint16, bool) {
	switch ev {
	case input.EV_SYN:
		return remap.FamilySyn, true
	case input.EV_KEY:
		return remap.FamilyKey, true
	case input.EV_REL:
		return remap.FamilyRel, true
	case input.EV_ABS:
		return remap.FamilyAbs, true
	case input.EV_MSC:
		return remap.FamilyMsc, true
	case input.EV_SW:
		return remap.FamilySw, true
	case input.EV_LED:
		return remap.FamilyLed, true
	case input.EV_SND:
		return remap.FamilySnd, true
	case input.EV_FF:
		return remap.FamilyFf, true
	default:
		return 0, false
	}
}

// sinkPath returns the injection-endpoint path to open, defaulting to
// the system's uinput node when none was given on the command line.
func sinkPath(path string) string {
	if path == "" {
		return "/dev/uinput"
	}

	return path
}

// publish declares every enabled (family, code) to a freshly opened
// uinput device in fixed family order, writes the descriptor, and
// asks the kernel to create it.
func publish(path string, name string, identity input.ID, phys string, caps remap.Capabilities) (*uinput.Device, error) {
	var (
		sink   *uinput.Device
		family uint16
		code   uint16
		ev     uint16
		ok     bool
		err    error
	)

	sink, err = uinput.NewDevice(path)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}

	for _, family = range familyOrder {
		if _, ok = caps.Families[family]; !ok {
			continue
		}

		ev, ok = evFamilies[family]
		if !ok {
			continue
		}

		err = sink.SetEvBit(ev)
		if err != nil {
			return nil, fmt.Errorf("publish: %w", err)
		}

		for _, code = range caps.SortedCodes(family) {
			err = setCapabilityBit(sink, family, code, caps)
			if err != nil {
				return nil, fmt.Errorf("publish: %w", err)
			}
		}
	}

	err = sink.Create(name, identity, phys)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}

	return sink, nil
}

func setCapabilityBit(sink *uinput.Device, family, code uint16, caps remap.Capabilities) error {
	switch family {
	case remap.FamilyKey:
		return sink.SetKeyBit(code)
	case remap.FamilyRel:
		return sink.SetRelBit(code)
	case remap.FamilyAbs:
		var axis remap.AbsAxis = caps.Abs[code]

		return sink.SetAbsBit(code, input.AbsInfo{Minimum: axis.Min, Maximum: axis.Max, Fuzz: axis.Fuzz, Flat: axis.Flat})
	case remap.FamilyMsc:
		return sink.SetMscBit(code)
	case remap.FamilySw:
		return sink.SetSwBit(code)
	case remap.FamilyLed:
		return sink.SetLedBit(code)
	case remap.FamilySnd:
		return sink.SetSndBit(code)
	default:
		return nil
	}
}

// logInventory prints the full negotiated capability listing when
// verbose tracing is enabled, mirroring the original daemon's startup
// listbits block.
func logInventory(logger *Logger, name, phys string, source, output remap.Capabilities) {
	logger.Trace("source device %q phys %s", name, phys)

	var family uint16

	for _, family = range output.SortedFamilies() {
		logger.Trace("output family %d codes %v", family, output.SortedCodes(family))
	}

	for _, family = range source.SortedFamilies() {
		logger.Trace("source family %d codes %v", family, source.SortedCodes(family))
	}
}

// loop is the steady-state read/translate/write cycle. It terminates
// cleanly when ctx is cancelled (a termination signal interrupted the
// blocking read) and fatally on any other I/O error, per spec.md §4.5
// and §7.
func loop(ctx context.Context, source *input.Device, sink *uinput.Device, translator *remap.Translator, logger *Logger) error {
	var (
		event  input.Event
		family uint16
		out    []remap.Event
		e      remap.Event
		ev     uint16
		ok     bool
		err    error
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		event, err = source.ReadEvent()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("daemon.loop: %w", err)
		}

		if logger != nil {
			logger.Trace("IN: family=%d code=%d value=%d", event.Type, event.Code, event.Value)
		}

		family, ok = remapFamily(event.Type)
		if !ok {
			continue
		}

		out = translator.Translate(remap.Event{
			Sec:    event.Sec,
			Usec:   event.Usec,
			Family: family,
			Code:   event.Code,
			Value:  event.Value,
		})

		for _, e = range out {
			ev, ok = evFamilies[e.Family]
			if !ok {
				continue
			}

			if logger != nil {
				logger.Trace("OUT: family=%d code=%d value=%d", e.Family, e.Code, e.Value)
			}

			err = sink.WriteEvent(input.Event{Sec: e.Sec, Usec: e.Usec, Type: ev, Code: e.Code, Value: e.Value})
			if err != nil {
				return fmt.Errorf("daemon.loop: %w", err)
			}
		}
	}
}
