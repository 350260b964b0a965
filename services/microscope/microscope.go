// Package microscope finds the twin USB microscope cameras through ffmpeg's
// DirectShow device listing and opens a borderless ffplay preview for each,
// side by side.
package microscope

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"hapticcode-go/errcode"

	"github.com/google/shlex"
)

// ListCommand asks ffmpeg for its DirectShow devices. ffmpeg prints the list
// and exits with status 1 because "dummy" is not a real input.
const ListCommand = "ffmpeg -list_devices true -f dshow -i dummy"

// Defaults for the preview windows.
const (
	VideoSize  = "1280x960"
	Filter     = "drawgrid=w=iw/2:h=ih/2:t=1:c=white@0.5,crop=960:960"
	RightLeft  = 960 // left offset of the right-hand window
	MinCameras = 2
)

var ErrNotEnoughCameras = errcode.New(errcode.NotFound, "microscope", "need two cameras")

// cameraPattern matches quoted alternative names of the microscope's
// USB vendor/product id.
var cameraPattern = regexp.MustCompile(`"(.*usb#vid_0c45&pid_1a90.*)"`)

// Runner runs a command to completion and returns its combined output.
type Runner interface {
	Output(ctx context.Context, argv []string) ([]byte, error)
}

// Launcher starts a command and returns without waiting for it.
type Launcher interface {
	Start(ctx context.Context, argv []string) error
}

// ExitCoder is implemented by errors carrying a process exit status.
type ExitCoder interface {
	ExitCode() int
}

// FindCameras lists the DirectShow devices and returns the alternative names
// of every attached microscope, in listing order.
func FindCameras(ctx context.Context, r Runner) ([]string, error) {
	argv, err := shlex.Split(ListCommand)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "microscope", err)
	}
	out, err := r.Output(ctx, argv)
	if err != nil {
		var ec ExitCoder
		if !errors.As(err, &ec) || ec.ExitCode() != 1 {
			return nil, errcode.Wrap(errcode.Error, "microscope: list devices", err)
		}
	}
	return ParseDevices(out), nil
}

// ParseDevices extracts microscope names from ffmpeg's device listing.
func ParseDevices(listing []byte) []string {
	var names []string
	for _, m := range cameraPattern.FindAllSubmatch(listing, -1) {
		names = append(names, string(m[1]))
	}
	return names
}

// PlayOptions overrides the preview defaults. Zero fields keep the default.
type PlayOptions struct {
	VideoSize string
	Filter    string
	// Extra arguments appended after the standard ones.
	Extra []string
}

// PlayArgs returns the ffplay command line that previews camera with its
// window left edge at left pixels.
func PlayArgs(camera string, left int, opts PlayOptions) []string {
	size := opts.VideoSize
	if size == "" {
		size = VideoSize
	}
	vf := opts.Filter
	if vf == "" {
		vf = Filter
	}
	argv := []string{
		"ffplay",
		"-f", "dshow",
		"-vcodec", "mjpeg",
		"-video_size", size,
		"-i", "video=" + camera,
		"-vf", vf,
		"-noborder",
		"-left", strconv.Itoa(left),
	}
	return append(argv, opts.Extra...)
}

// Config drives StartStreams.
type Config struct {
	// Reverse swaps the two windows.
	Reverse bool
	Play    PlayOptions
	// Logf, when set, receives each launched command line.
	Logf func(format string, a ...any)
}

// StartStreams opens the first two cameras: camera 0 on the right, camera 1 on
// the left, or the other way round when cfg.Reverse is set. It returns the
// names it launched.
func StartStreams(ctx context.Context, r Runner, l Launcher, cfg Config) ([]string, error) {
	cams, err := FindCameras(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(cams) < MinCameras {
		return cams, ErrNotEnoughCameras
	}
	offsets := [MinCameras]int{RightLeft, 0}
	if cfg.Reverse {
		offsets = [MinCameras]int{0, RightLeft}
	}
	for i, left := range offsets {
		argv := PlayArgs(cams[i], left, cfg.Play)
		if cfg.Logf != nil {
			cfg.Logf("%q", argv)
		}
		if err := l.Start(ctx, argv); err != nil {
			return cams[:i], errcode.Wrap(errcode.Error, "microscope: start "+argv[0], err)
		}
	}
	return cams[:MinCameras], nil
}
