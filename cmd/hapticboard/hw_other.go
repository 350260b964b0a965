//go:build !linux && !(rp2040 || rp2350)

package main

import (
	"hapticcode-go/board"
	"hapticcode-go/board/platform"
	"hapticcode-go/errcode"
)

func openHardware(platform.LinuxConfig) (board.Resources, func() error, error) {
	return board.Resources{}, nil, errcode.New(errcode.Unsupported, "hapticboard", "no hardware backend on this OS, use -sim")
}
