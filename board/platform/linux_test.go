//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"bytes"
	"strings"
	"testing"

	"hapticcode-go/x/fmtx"

	"periph.io/x/conn/v3/gpio"
)

func TestPeriphPin_LogsFailedWrite(t *testing.T) {
	var buf bytes.Buffer
	old := fmtx.DefaultOutput
	fmtx.DefaultOutput = &buf
	defer func() { fmtx.DefaultOutput = old }()

	periphPin{gpio.INVALID}.Set(true)
	if got := buf.String(); !strings.HasPrefix(got, "platform: gpio INVALID: ") {
		t.Fatalf("log = %q", got)
	}
}
