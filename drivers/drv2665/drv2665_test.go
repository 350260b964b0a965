package drv2665

import (
	"errors"
	"testing"
	"time"

	"hapticcode-go/errcode"
)

func noSleep(time.Duration) {}

func newTestDevice(t *testing.T, sim *Sim) *Device {
	t.Helper()
	d, err := New(sim, Config{Sleep: noSleep})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestNew_AcceptsKnownChipIDs(t *testing.T) {
	for _, c := range []struct {
		id   uint8
		want Variant
	}{
		{ChipIDDRV2665, VariantDRV2665},
		{ChipIDDRV2667, VariantDRV2667},
	} {
		sim := NewSim(c.id)
		d := newTestDevice(t, sim)
		if d.Variant() != c.want {
			t.Fatalf("chip %d: variant %v, want %v", c.id, d.Variant(), c.want)
		}
		if sim.Resets != 1 {
			t.Fatalf("chip %d: resets=%d, want 1", c.id, sim.Resets)
		}
	}
}

func TestNew_RejectsUnknownChipIDWithoutTouchingDevice(t *testing.T) {
	for _, id := range []uint8{0, 1, 3, 4, 6, 15} {
		sim := NewSim(id)
		d, err := New(sim, Config{Sleep: noSleep})
		if err == nil || d != nil {
			t.Fatalf("chip %d: expected construction error", id)
		}
		if !errors.Is(err, ErrWrongDevice) {
			t.Fatalf("chip %d: err=%v, want ErrWrongDevice", id, err)
		}
		if errcode.Of(err) != errcode.WrongDevice {
			t.Fatalf("chip %d: code=%q", id, errcode.Of(err))
		}
		if sim.Writes != 0 || sim.Resets != 0 {
			t.Fatalf("chip %d: writes=%d resets=%d, want none", id, sim.Writes, sim.Resets)
		}
	}
}

func TestNew_BusErrorIsWrapped(t *testing.T) {
	cause := errors.New("i2c nack")
	sim := NewSim(ChipIDDRV2665)
	sim.Err = cause
	_, err := New(sim, Config{Sleep: noSleep})
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	if errcode.Of(err) != errcode.BusError {
		t.Fatalf("code=%q, want bus_error", errcode.Of(err))
	}
}

func TestReset_RestoresDefaultsAndSettles(t *testing.T) {
	sim := NewSim(ChipIDDRV2667)
	var slept time.Duration
	d, err := New(sim, Config{ResetSettle: 3 * time.Millisecond, Sleep: func(x time.Duration) { slept += x }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Apply(BenchSettings()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := d.SetTimeout(Timeout20ms); err != nil {
		t.Fatalf("SetTimeout: %v", err)
	}

	slept = 0
	if err := d.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if slept != 3*time.Millisecond {
		t.Fatalf("settle %v, want 3ms", slept)
	}
	want1, want2 := ResetDefaults(ChipIDDRV2667)
	got1, got2 := d.Registers()
	if got1 != want1 || got2 != want2 {
		t.Fatalf("registers %#02x %#02x, want %#02x %#02x", got1, got2, want1, want2)
	}
	if on, _ := d.Standby(); !on {
		t.Fatal("expected standby after reset")
	}
	if g, _ := d.Gain(); g != Gain25V {
		t.Fatalf("gain %v after reset", g)
	}
}

func TestFields_RoundTripLegalValues(t *testing.T) {
	d := newTestDevice(t, NewSim(ChipIDDRV2665))
	for f := FieldGain; f <= FieldEnable; f++ {
		for _, v := range fieldDefs[f].legal {
			if err := d.WriteField(f, v); err != nil {
				t.Fatalf("%v=%#02x: %v", f, v, err)
			}
			got, err := d.ReadField(f)
			if err != nil {
				t.Fatalf("read %v: %v", f, err)
			}
			if got != v {
				t.Fatalf("%v: wrote %#02x read %#02x", f, v, got)
			}
		}
	}
}

func TestFields_IllegalValuesLeaveCacheUntouched(t *testing.T) {
	sim := NewSim(ChipIDDRV2665)
	d := newTestDevice(t, sim)
	c1, c2 := d.Registers()
	writes := sim.Writes

	for _, c := range []struct {
		f Field
		v uint8
	}{
		{FieldGain, 4},
		{FieldInput, 1},
		{FieldStandby, 1},
		{FieldTimeout, 1},
		{FieldTimeout, 16},
		{FieldEnable, 1},
		{FieldEnable, 0x80},
	} {
		err := d.WriteField(c.f, c.v)
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("%v=%#02x: err=%v, want ErrInvalidValue", c.f, c.v, err)
		}
	}
	if g1, g2 := d.Registers(); g1 != c1 || g2 != c2 {
		t.Fatalf("cache changed: %#02x %#02x -> %#02x %#02x", c1, c2, g1, g2)
	}
	if sim.Writes != writes {
		t.Fatalf("illegal writes reached the bus")
	}
}

func TestFields_WriteOnlyTouchesMask(t *testing.T) {
	sim := NewSim(ChipIDDRV2665)
	d := newTestDevice(t, sim)

	if err := d.SetInput(InputAnalog); err != nil {
		t.Fatal(err)
	}
	if err := d.SetGain(Gain75V); err != nil {
		t.Fatal(err)
	}
	c1, _ := sim.Peek()
	if want := byte(ChipIDDRV2665<<3) | byte(InputAnalog) | byte(Gain75V); c1 != want {
		t.Fatalf("control1 %#02x, want %#02x", c1, want)
	}

	if err := d.SetStandby(false); err != nil {
		t.Fatal(err)
	}
	if err := d.SetEnable(EnableOverride); err != nil {
		t.Fatal(err)
	}
	if err := d.SetTimeout(Timeout15ms); err != nil {
		t.Fatal(err)
	}
	_, c2 := sim.Peek()
	if want := byte(Timeout15ms) | byte(EnableOverride); c2 != want {
		t.Fatalf("control2 %#02x, want %#02x", c2, want)
	}
	if sim.Resets != 1 {
		t.Fatalf("field writes triggered a reset")
	}
}

func TestFields_FailedWriteKeepsCache(t *testing.T) {
	sim := NewSim(ChipIDDRV2665)
	d := newTestDevice(t, sim)
	c1, c2 := d.Registers()

	sim.Err = errors.New("bus down")
	if err := d.SetGain(Gain100V); errcode.Of(err) != errcode.BusError {
		t.Fatalf("err=%v, want bus_error", err)
	}
	if g1, g2 := d.Registers(); g1 != c1 || g2 != c2 {
		t.Fatal("cache changed on failed write")
	}
}

func TestUnknownField(t *testing.T) {
	d := newTestDevice(t, NewSim(ChipIDDRV2665))
	if _, err := d.ReadField(Field(0)); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("ReadField(0): %v", err)
	}
	if err := d.WriteField(Field(99), 0); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("WriteField(99): %v", err)
	}
}

func TestReadField_ReReadsRegister(t *testing.T) {
	sim := NewSim(ChipIDDRV2665)
	d := newTestDevice(t, sim)

	// Change the device behind the driver's back.
	sim.Poke(ChipIDDRV2665<<3|byte(Gain50V), byte(Timeout10ms))
	if g, _ := d.Gain(); g != Gain50V {
		t.Fatalf("gain %v, want Gain50V", g)
	}
	if to, _ := d.Timeout(); to != Timeout10ms {
		t.Fatalf("timeout %v, want Timeout10ms", to)
	}
}

func TestBenchSettings(t *testing.T) {
	sim := NewSim(ChipIDDRV2665)
	d := newTestDevice(t, sim)
	if err := d.Apply(BenchSettings()); err != nil {
		t.Fatal(err)
	}
	if on, _ := d.Standby(); on {
		t.Fatal("standby still set")
	}
	if in, _ := d.Input(); in != InputAnalog {
		t.Fatalf("input %v", in)
	}
	if g, _ := d.Gain(); g.PeakVolts() != 100 {
		t.Fatalf("gain %d V", g.PeakVolts())
	}
}

func TestFIFO(t *testing.T) {
	sim := NewSim(ChipIDDRV2665)
	d := newTestDevice(t, sim)

	empty, full, err := d.QueueStatus()
	if err != nil || !empty || full {
		t.Fatalf("status empty=%v full=%v err=%v", empty, full, err)
	}
	if err := d.WriteSample(-1); err != nil {
		t.Fatal(err)
	}
	if got := sim.Drain(); len(got) != 1 || got[0] != -1 {
		t.Fatalf("fifo %v, want [-1]", got)
	}

	samples := make([]int8, FIFODepth+10)
	for i := range samples {
		samples[i] = int8(i - 64)
	}
	n, err := d.WriteSamples(samples)
	if !errors.Is(err, ErrFIFOFull) || n != FIFODepth {
		t.Fatalf("wrote %d err=%v, want %d ErrFIFOFull", n, err, FIFODepth)
	}
	got := sim.Drain()
	if len(got) != FIFODepth || got[0] != -64 || got[FIFODepth-1] != int8(FIFODepth-1-64) {
		t.Fatalf("fifo contents wrong: len=%d", len(got))
	}
}

func TestValueHelpers(t *testing.T) {
	if Timeout5ms.Millis() != 5 || Timeout20ms.Millis() != 20 {
		t.Fatal("timeout millis")
	}
	if Gain25V.PeakVolts() != 25 || Gain75V.PeakVolts() != 75 {
		t.Fatal("gain volts")
	}
	if FieldTimeout.String() != "timeout" || Field(42).String() != "unknown" {
		t.Fatal("field names")
	}
}
