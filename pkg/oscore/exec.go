package oscore

import (
	"context"
	"log"
	"os/exec"
)

// ExecCommand runs a system command with both output streams routed to
// the run log file.
func ExecCommand(ctx context.Context, command string, args ...string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = log.Writer()
	cmd.Stderr = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}
