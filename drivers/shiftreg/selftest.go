package shiftreg

import "tinygo.org/x/drivers"

// PinResult is the outcome of driving one pin alone.
type PinResult struct {
	Pin  int
	Pass bool
	Got  Frame // echo of the frame with only Pin set
	Err  error
}

// Report covers every channel of one SelfTest run.
type Report struct {
	Layout  string
	Results [NumPins]PinResult
	// OffErr is set when the closing all-zero frame could not be committed.
	OffErr error
}

// Failed returns the failing pins in ascending order; Results is in pin order.
func (r Report) Failed() []int {
	var out []int
	for _, res := range r.Results {
		if !res.Pass {
			out = append(out, res.Pin)
		}
	}
	return out
}

// OK reports whether every pin passed and the outputs were switched off.
func (r Report) OK() bool { return len(r.Failed()) == 0 && r.OffErr == nil }

// SelfTest drives each pin 1..20 alone, verifying the echo every time. A
// failing pin is recorded and the run continues; there is no safety shutdown
// between pins. The run ends with an all-zero frame committed and the buffer
// cleared.
func (d *Device) SelfTest() Report {
	rep := Report{Layout: d.layout.Name}
	for pin := 1; pin <= NumPins; pin++ {
		res := PinResult{Pin: pin}
		f, _ := d.layout.Only(pin)
		res.Err = d.scope(func(spi drivers.SPI) error {
			d.latch.Set(false)
			err := d.shiftVerify(spi, f)
			d.latch.Set(true)
			return err
		})
		res.Got = d.rb
		res.Pass = res.Err == nil
		rep.Results[pin-1] = res
	}
	rep.OffErr = d.Off()
	return rep
}
