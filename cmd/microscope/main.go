// microscope opens side-by-side previews of the two USB microscopes.
//
//	microscope [-reverse] [-extra "-loglevel quiet"]
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"hapticcode-go/services/microscope"
	"hapticcode-go/x/fmtx"

	"github.com/google/shlex"
)

func mainImpl() error {
	reverse := flag.Bool("reverse", false, "reverse the positioning of cameras")
	size := flag.String("size", microscope.VideoSize, "capture size requested from the cameras")
	extra := flag.String("extra", "", "additional ffplay arguments, shell quoted")
	list := flag.Bool("list", false, "only list the cameras found")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected arguments")
	}

	ctx := context.Background()
	if *list {
		cams, err := microscope.FindCameras(ctx, microscope.Exec{})
		if err != nil {
			return err
		}
		for i, c := range cams {
			fmtx.Logf("%d: %s", i, c)
		}
		return nil
	}

	args, err := shlex.Split(*extra)
	if err != nil {
		return err
	}
	cfg := microscope.Config{
		Reverse: *reverse,
		Play:    microscope.PlayOptions{VideoSize: *size, Extra: args},
		Logf:    fmtx.Logf,
	}
	cams, err := microscope.StartStreams(ctx, microscope.Exec{}, microscope.Exec{}, cfg)
	if errors.Is(err, microscope.ErrNotEnoughCameras) {
		fmtx.Logf("found %d camera(s)", len(cams))
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmtx.Fprintf(os.Stderr, "microscope: %s.\n", err)
		os.Exit(1)
	}
}
