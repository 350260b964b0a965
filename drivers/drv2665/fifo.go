package drv2665

// QueueStatus reports the FIFO empty and full flags (digital input mode).
func (d *Device) QueueStatus() (empty, full bool, err error) {
	v, err := d.readReg(regStatus)
	if err != nil {
		return false, false, err
	}
	return v&statusFIFOEmpty != 0, v&statusFIFOFull != 0, nil
}

// WriteSample pushes one signed sample into the FIFO.
func (d *Device) WriteSample(v int8) error {
	return d.writeReg(regData, byte(v)) // two's complement
}

// WriteSamples pushes samples until all are written or the FIFO reports full.
// It returns the number of samples accepted; ErrFIFOFull signals the caller
// to resume from that index once the device has drained.
func (d *Device) WriteSamples(samples []int8) (int, error) {
	for i, v := range samples {
		_, full, err := d.QueueStatus()
		if err != nil {
			return i, err
		}
		if full {
			return i, ErrFIFOFull
		}
		if err := d.WriteSample(v); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}
