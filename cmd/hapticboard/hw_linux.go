//go:build linux && !(rp2040 || rp2350)

package main

import (
	"hapticcode-go/board"
	"hapticcode-go/board/platform"
)

func openHardware(cfg platform.LinuxConfig) (board.Resources, func() error, error) {
	return platform.OpenLinux(cfg)
}
