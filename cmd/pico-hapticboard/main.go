//go:build rp2040 || rp2350

// pico-hapticboard brings up the haptic board on a Pico, logs to UART0 and
// walks a single driven pin across all channels once per second.
package main

import (
	"machine"
	"time"

	"hapticcode-go/board"
	"hapticcode-go/board/platform"
	"hapticcode-go/drivers/shiftreg"
	"hapticcode-go/x/fmtx"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// UART0 on GP16/GP17; GP0/GP1 carry I²C.
const (
	consoleTX   = machine.GPIO16
	consoleRX   = machine.GPIO17
	consoleBaud = 115200
)

// planName selects the wiring; set with
// -ldflags "-X main.planName=circuitpython".
var planName = "micropython"

func main() {
	// Let the console settle before the first line.
	time.Sleep(2 * time.Second)

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{BaudRate: consoleBaud, TX: consoleTX, RX: consoleRX})
	fmtx.DefaultOutput = u

	plan, err := board.SelectPlan(planName)
	if err != nil {
		halt("plan", err)
	}
	fmtx.Logf("boot: plan %s", plan.Name)

	res, err := platform.OpenRP2(plan)
	if err != nil {
		halt("platform", err)
	}
	b, err := board.Open(res, board.DefaultConfig())
	if err != nil {
		halt("board", err)
	}
	if rep := b.SelfTest(); !rep.OK() && rep.OffErr != nil {
		halt("self-test", rep.OffErr)
	}

	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	pin := 1
	for range tick.C {
		if err := b.Drive(pin); err != nil {
			fmtx.Logf("drive %d: %v", pin, err)
		}
		pin = pin%shiftreg.NumPins + 1
	}
}

// halt reports err and parks; the outputs are already de-energised by the
// failing driver.
func halt(stage string, err error) {
	for {
		fmtx.Logf("%s: %v", stage, err)
		time.Sleep(5 * time.Second)
	}
}
