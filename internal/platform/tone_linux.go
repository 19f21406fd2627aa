package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

type commandBeeper struct {
	beepPath string
}

func newBeeper() beeper {
	path, err := exec.LookPath("beep")
	if err != nil {
		return bellBeeper{out: os.Stderr}
	}
	return &commandBeeper{beepPath: path}
}

func (device *commandBeeper) Beep(frequency int, duration time.Duration) error {
	args := []string{
		"-f", strconv.Itoa(frequency),
		"-l", strconv.FormatInt(duration.Milliseconds(), 10),
	}
	if err := exec.Command(device.beepPath, args...).Run(); err != nil {
		return fmt.Errorf("beep: %w", err)
	}
	return nil
}
