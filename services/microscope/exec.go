package microscope

import (
	"context"
	"os/exec"
)

// Exec runs and launches real processes.
type Exec struct{}

// Compile-time checks.
var (
	_ Runner   = Exec{}
	_ Launcher = Exec{}
)

func (Exec) Output(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return cmd.CombinedOutput()
}

// Start starts argv detached from ctx: the preview outlives the caller.
func (Exec) Start(_ context.Context, argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
