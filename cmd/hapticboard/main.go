//go:build !(rp2040 || rp2350)

// hapticboard brings up the haptic board from a host, runs the fanout
// self-test and drives a set of pins.
//
//	hapticboard -sim -selftest
//	hapticboard -i2c 1 -spi /dev/spidev0.0 -pins 1,5,20 -hold 2s
package main

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"hapticcode-go/board"
	"hapticcode-go/board/platform"
	"hapticcode-go/drivers/drv2665"
	"hapticcode-go/drivers/shiftreg"
	"hapticcode-go/errcode"
	"hapticcode-go/x/conv"
	"hapticcode-go/x/fmtx"
)

type options struct {
	sim      bool
	chip     uint
	linux    platform.LinuxConfig
	layout   string
	skipLink bool
	noBench  bool
	require  bool
	selftest bool
	pins     string
	toggle   bool
	hold     time.Duration
	burst    int
	quiet    bool
}

// maxChipID is the largest value of the 4-bit chip id field.
const maxChipID = 15

func parseFlags(args []string) (options, error) {
	o := options{linux: platform.DefaultLinuxConfig()}
	fs := flag.NewFlagSet("hapticboard", flag.ContinueOnError)
	fs.BoolVar(&o.sim, "sim", false, "use the in-memory board")
	fs.UintVar(&o.chip, "chip", drv2665.ChipIDDRV2665, "chip id reported by the simulated amplifier (0 for none)")
	fs.StringVar(&o.linux.I2CBus, "i2c", "", "I²C bus name or number")
	fs.StringVar(&o.linux.SPIPort, "spi", "", "SPI port name")
	var hz uint
	fs.UintVar(&hz, "hz", uint(o.linux.SPIHz), "SPI clock")
	fs.StringVar(&o.linux.Latch, "latch", o.linux.Latch, "latch GPIO")
	fs.StringVar(&o.linux.Polarity, "polarity", o.linux.Polarity, "polarity GPIO")
	fs.StringVar(&o.layout, "layout", shiftreg.LayoutV1.Name, "fanout bit layout")
	fs.BoolVar(&o.skipLink, "skip-link", false, "skip the SPI link check at start")
	fs.BoolVar(&o.noBench, "no-bench", false, "leave the amplifier at reset defaults")
	fs.BoolVar(&o.require, "require-amp", false, "fail when the amplifier does not answer")
	fs.BoolVar(&o.selftest, "selftest", false, "drive each pin alone and report failures")
	fs.StringVar(&o.pins, "pins", "", "comma separated pins to drive, e.g. 1,5,20")
	fs.BoolVar(&o.toggle, "toggle", false, "invert the polarity line before driving")
	fs.DurationVar(&o.hold, "hold", time.Second, "how long to keep -pins driven")
	fs.IntVar(&o.burst, "burst", 0, "queue this many square-wave samples into the amplifier FIFO")
	fs.BoolVar(&o.quiet, "quiet", false, "suppress progress output")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 0 {
		return o, errors.New("unexpected arguments: " + strings.Join(fs.Args(), " "))
	}
	if o.chip > maxChipID {
		return o, errcode.New(errcode.InvalidParams, "hapticboard", "-chip "+conv.Itoa(int(o.chip))+" not in 0..15")
	}
	o.linux.SPIHz = uint32(hz)
	return o, nil
}

func parsePins(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var pins []int
	for _, f := range strings.Split(s, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errcode.Wrap(errcode.InvalidPin, "pins", err)
		}
		pins = append(pins, p)
	}
	return pins, nil
}

func openResources(o options) (board.Resources, func() error, error) {
	if o.sim {
		res, _ := platform.Simulated(uint8(o.chip))
		return res, func() error { return nil }, nil
	}
	return openHardware(o.linux)
}

func squareWave(n int) []int8 {
	out := make([]int8, n)
	for i := range out {
		if (i/8)%2 == 0 {
			out[i] = 127
		} else {
			out[i] = -128
		}
	}
	return out
}

func mainImpl() error {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}
	pins, err := parsePins(o.pins)
	if err != nil {
		return err
	}
	if o.quiet {
		fmtx.DefaultOutput = fmtx.Discard
	}

	cfg := board.DefaultConfig()
	l, ok := shiftreg.LayoutByName(o.layout)
	if !ok {
		return errcode.New(errcode.InvalidParams, "layout", "unknown layout "+o.layout)
	}
	cfg.Fanout.Layout = l
	cfg.Fanout.SkipLinkCheck = o.skipLink
	cfg.RequireAmp = o.require
	if o.noBench {
		cfg.Bench = nil
	}

	res, release, err := openResources(o)
	if err != nil {
		return err
	}
	defer release()

	b, err := board.Open(res, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			fmtx.Logf("close: %v", err)
		}
	}()

	if b.Amp != nil {
		c1, c2 := b.Amp.Registers()
		fmtx.Logf("control1=%s control2=%s", conv.Hex8(c1), conv.Hex8(c2))
	}

	if o.selftest {
		rep := b.SelfTest()
		if !rep.OK() {
			for _, r := range rep.Results {
				if !r.Pass {
					fmtx.Logf("  pin %2d: got %s: %v", r.Pin, conv.HexBytes(r.Got[:]), r.Err)
				}
			}
			if rep.OffErr != nil {
				return rep.OffErr
			}
			return errcode.New(errcode.Verify, "selftest", conv.Itoa(len(rep.Failed()))+" pins failed")
		}
	}

	if o.toggle {
		b.Fanout.TogglePolarity()
		fmtx.Logf("polarity %v", b.Fanout.Polarity())
	}

	if o.burst > 0 {
		if b.Amp == nil {
			return board.ErrAmpNotFound
		}
		n, err := b.Amp.WriteSamples(squareWave(o.burst))
		fmtx.Logf("queued %d samples", n)
		if err != nil && errcode.Of(err) != errcode.FIFOFull {
			return err
		}
	}

	if len(pins) > 0 {
		if err := b.Drive(pins...); err != nil {
			return err
		}
		rb := b.Fanout.Readback()
		fmtx.Logf("driving %v: %s", pins, conv.HexBytes(rb[:]))
		time.Sleep(o.hold)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmtx.Fprintf(os.Stderr, "hapticboard: %s.\n", err)
		os.Exit(1)
	}
}
