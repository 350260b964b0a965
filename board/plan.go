package board

import "hapticcode-go/errcode"

// Plan specifies wiring and operating parameters of one bring-up setup.
// Pin numbers are plain GPIO numbers; platforms map them to their own pin type.
type Plan struct {
	Name string

	I2C I2CPlan
	SPI SPIPlan

	Latch    int // shift-register latch (active low while shifting)
	Polarity int // drive polarity select
}

type I2CPlan struct {
	SDA int
	SCL int
	Hz  uint32
}

type SPIPlan struct {
	SCK int
	SDO int // MOSI
	SDI int // MISO, end of the register chain
	Hz  uint32
}

// PlanCircuitPython is the Pico wiring used by the CircuitPython bring-up.
var PlanCircuitPython = Plan{
	Name:     "circuitpython",
	I2C:      I2CPlan{SDA: 0, SCL: 1, Hz: 100_000},
	SPI:      SPIPlan{SCK: 6, SDO: 7, SDI: 8, Hz: 1_000_000},
	Latch:    11,
	Polarity: 10,
}

// PlanMicroPython is the Pico wiring used by the MicroPython bring-up.
var PlanMicroPython = Plan{
	Name:     "micropython",
	I2C:      I2CPlan{SDA: 0, SCL: 1, Hz: 100_000},
	SPI:      SPIPlan{SCK: 6, SDO: 7, SDI: 4, Hz: 10_000},
	Latch:    5,
	Polarity: 10,
}

var plans = []Plan{PlanCircuitPython, PlanMicroPython}

// PlanByName returns a known plan.
func PlanByName(name string) (Plan, bool) {
	for _, p := range plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// SelectPlan is PlanByName for firmware built with a plan name; an empty name
// selects PlanMicroPython.
func SelectPlan(name string) (Plan, error) {
	if name == "" {
		return PlanMicroPython, nil
	}
	if p, ok := PlanByName(name); ok {
		return p, nil
	}
	return Plan{}, errcode.New(errcode.InvalidParams, "board", "unknown plan "+name)
}
