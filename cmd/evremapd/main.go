// Command evremapd reads raw input events from a source evdev device,
// remaps them according to a user-supplied policy, and re-injects the
// result on a freshly created virtual input device via uinput.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/evremap/evremapd/internal/daemon"
	"github.com/evremap/evremapd/internal/remap"
)

const (
	exitOK = iota
	exitConfigError
	exitResourceError
	exitIOError
	exitInternalError
)

const version = "0.1.0"

// repeatable collects every occurrence of a flag registered under one
// or more names into a string slice, the way --key-key, --norm, and
// their siblings are documented as repeatable.
type repeatable struct {
	values *[]string
}

func (r repeatable) String() string {
	if r.values == nil {
		return ""
	}

	return strings.Join(*r.values, ",")
}

func (r repeatable) Set(s string) error {
	*r.values = append(*r.values, s)

	return nil
}

// ranges holds the string form of --absconf/--relconf before parsing.
type ranges struct {
	keyKey, keyRel, keyAbs []string
	relKey, relRel, relAbs []string
	absKey, absRel, absAbs []string
	norm                   []string
	absconf, relconf       string
	normconf               string
}

func exitIf(err error, code int) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "evremapd:", err)
	os.Exit(code)
}

func parseRange(s string, fallback [2]int32) (int32, int32, error) {
	var (
		parts    []string
		min, max int64
		err      error
	)

	if s == "" {
		return fallback[0], fallback[1], nil
	}

	parts = strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("range %q: want min,max", s)
	}

	min, err = strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}

	max, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}

	return int32(min), int32(max), nil
}

// parseNormConfig parses "ign[,rng[,rst[,spk[,spkmin]]]]"; trailing
// fields default to zero, which disables the corresponding gate, except
// SPKMIN, which keeps a default of 2 when omitted, matching the
// original daemon's partial-field parse.
func parseNormConfig(s string) (remap.NormalizerConfig, error) {
	var (
		cfg    remap.NormalizerConfig
		fields []string
		values [5]int = [5]int{0, 0, 0, 0, 2}
		i      int
		n      int64
		err    error
	)

	if s == "" {
		cfg.SPKMIN = values[4]

		return cfg, nil
	}

	fields = strings.Split(s, ",")
	if len(fields) > 5 {
		return cfg, fmt.Errorf("normconf %q: too many fields", s)
	}

	for i = range fields {
		n, err = strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 32)
		if err != nil {
			return cfg, fmt.Errorf("normconf %q: %w", s, err)
		}

		values[i] = int(n)
	}

	cfg.IGN = values[0]
	cfg.RNG = values[1]
	cfg.RST = values[2]
	cfg.SPK = values[3]
	cfg.SPKMIN = values[4]

	return cfg, nil
}

func parseNormAxes(entries []string) ([]uint16, error) {
	var (
		axes []uint16
		s    string
		n    int64
		err  error
	)

	axes = make([]uint16, 0, len(entries))
	for _, s = range entries {
		n, err = strconv.ParseInt(strings.TrimSpace(s), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("norm %q: %w", s, err)
		}

		axes = append(axes, uint16(n))
	}

	return axes, nil
}

func buildRuleSet(r ranges) remap.RuleSet {
	return remap.RuleSet{
		KeyKey: remap.ParseKeyKey(r.keyKey),
		KeyRel: remap.ParseKeyRel(r.keyRel),
		KeyAbs: remap.ParseKeyAbs(r.keyAbs),
		RelKey: remap.ParseRelKey(r.relKey),
		RelRel: remap.ParseRelRel(r.relRel),
		RelAbs: remap.ParseRelAbs(r.relAbs),
		AbsKey: remap.ParseAbsKey(r.absKey),
		AbsRel: remap.ParseAbsRel(r.absRel),
		AbsAbs: remap.ParseAbsAbs(r.absAbs),
	}
}

func main() {
	var (
		idev, odev, pidfile  string
		daemonize, grab      bool
		mirrorSyslog, quiet  bool
		verbose, showVersion bool
		r                    ranges
		set                  *flag.FlagSet
		rules                remap.RuleSet
		defaults             remap.RangeDefaults
		amin, amax           int32
		rmin, rmax           int32
		normCfg              remap.NormalizerConfig
		normAxes             []uint16
		logger               *daemon.Logger
		err                  error
	)

	set = flag.NewFlagSet("evremapd", flag.ExitOnError)

	set.StringVar(&idev, "i", "", "source device path (required)")
	set.StringVar(&idev, "idev", "", "source device path (required)")
	set.StringVar(&odev, "o", "", "injection endpoint path (default: the system uinput node)")
	set.StringVar(&odev, "odev", "", "injection endpoint path (default: the system uinput node)")
	set.BoolVar(&daemonize, "D", false, "detach from controlling terminal")
	set.BoolVar(&daemonize, "daemon", false, "detach from controlling terminal")
	set.BoolVar(&grab, "g", false, "exclusive grab on source")
	set.BoolVar(&grab, "grab", false, "exclusive grab on source")
	set.BoolVar(&mirrorSyslog, "l", false, "also emit messages to the system log")
	set.BoolVar(&mirrorSyslog, "log", false, "also emit messages to the system log")
	set.StringVar(&pidfile, "p", "", "write process id to file, unlink on exit")
	set.StringVar(&pidfile, "pidfile", "", "write process id to file, unlink on exit")
	set.BoolVar(&quiet, "q", false, "suppress console output")
	set.BoolVar(&quiet, "quiet", false, "suppress console output")
	set.BoolVar(&verbose, "v", false, "print capability inventory and per-event trace")
	set.BoolVar(&verbose, "verbose", false, "print capability inventory and per-event trace")
	set.BoolVar(&showVersion, "V", false, "print version and exit")
	set.BoolVar(&showVersion, "version", false, "print version and exit")

	set.Var(repeatable{&r.keyKey}, "key-key", "key:key remap rule, repeatable")
	set.Var(repeatable{&r.keyRel}, "key-rel", "neg,pos:axis remap rule, repeatable")
	set.Var(repeatable{&r.keyAbs}, "key-abs", "neg,pos:axis remap rule, repeatable")
	set.Var(repeatable{&r.relKey}, "rel-key", "axis:neg,pos remap rule, repeatable")
	set.Var(repeatable{&r.relRel}, "rel-rel", "src:dst remap rule, repeatable")
	set.Var(repeatable{&r.relAbs}, "rel-abs", "src:dst remap rule, repeatable")
	set.Var(repeatable{&r.absKey}, "abs-key", "axis:neg,pos remap rule, repeatable")
	set.Var(repeatable{&r.absRel}, "abs-rel", "src:dst remap rule, repeatable")
	set.Var(repeatable{&r.absAbs}, "abs-abs", "src:dst remap rule, repeatable")
	set.Var(repeatable{&r.norm}, "norm", "axis code to normalize, repeatable")

	set.StringVar(&r.absconf, "absconf", "", "min,max default output abs range")
	set.StringVar(&r.relconf, "relconf", "", "min,max rel clamp/scale range")
	set.StringVar(&r.normconf, "normconf", "", "ign[,rng[,rst[,spk[,spkmin]]]] normalizer configuration")

	err = set.Parse(os.Args[1:])
	exitIf(err, exitConfigError)

	if showVersion {
		fmt.Println("evremapd", version)
		os.Exit(exitOK)
	}

	if idev == "" {
		exitIf(fmt.Errorf("-i/--idev is required"), exitConfigError)
	}

	if daemonize {
		reexecDetached()
	}

	if quiet && !daemonize {
		daemon.Quiet()
	}

	logger = daemon.NewLogger("evremapd", verbose, mirrorSyslog)

	rules = buildRuleSet(r)

	defaults = remap.DefaultRangeDefaults()

	amin, amax, err = parseRange(r.absconf, [2]int32{defaults.AbsMin, defaults.AbsMax})
	exitIf(err, exitConfigError)
	defaults.AbsMin, defaults.AbsMax = amin, amax

	rmin, rmax, err = parseRange(r.relconf, [2]int32{defaults.RelMin, defaults.RelMax})
	exitIf(err, exitConfigError)
	defaults.RelMin, defaults.RelMax = rmin, rmax

	normCfg, err = parseNormConfig(r.normconf)
	exitIf(err, exitConfigError)

	normAxes, err = parseNormAxes(r.norm)
	exitIf(err, exitConfigError)

	err = daemon.Run(context.Background(), daemon.Config{
		SourcePath: idev,
		SinkPath:   odev,
		Grab:       grab,
		PIDFile:    pidfile,
		Rules:      rules,
		Defaults:   defaults,
		NormConfig: normCfg,
		NormAxes:   normAxes,
		Log:        logger,
	})
	if err != nil {
		logger.Printf("%v", err)
		os.Exit(exitIOError)
	}

	os.Exit(exitOK)
}
