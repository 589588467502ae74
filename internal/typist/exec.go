package typist

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ExecTyper types through an external automation tool, xdotool by default.
// Each run is two invocations: type the digits, then press Return.
type ExecTyper struct {
	// Command is the tool binary (default: xdotool).
	Command string

	// KeyDelayMs is the delay between individual keystrokes in milliseconds
	// (default: 50). Some players drop keys typed faster than a human.
	KeyDelayMs int
}

func (t *ExecTyper) command() string {
	if t.Command == "" {
		return "xdotool"
	}
	return t.Command
}

func (t *ExecTyper) keyDelay() int {
	if t.KeyDelayMs <= 0 {
		return 50
	}
	return t.KeyDelayMs
}

// Type runs the automation tool to enter one number into the focused window.
func (t *ExecTyper) Type(ctx context.Context, number string) error {
	typeCmd := exec.CommandContext(ctx, t.command(),
		"type", "--delay", strconv.Itoa(t.keyDelay()), "--", number)
	if out, err := typeCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("type %q: %w (%s)", number, err, out)
	}

	enterCmd := exec.CommandContext(ctx, t.command(), "key", "Return")
	if out, err := enterCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("press return after %q: %w (%s)", number, err, out)
	}

	return nil
}
