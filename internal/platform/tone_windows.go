package platform

import (
	"errors"
	"fmt"
	"syscall"
	"time"
)

type kernelBeeper struct {
	proc *syscall.LazyProc
}

func newBeeper() beeper {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	return &kernelBeeper{proc: kernel32.NewProc("Beep")}
}

func (device *kernelBeeper) Beep(frequency int, duration time.Duration) error {
	result, _, err := device.proc.Call(uintptr(frequency), uintptr(duration.Milliseconds()))
	if result == 0 {
		if err != nil {
			return fmt.Errorf("kernel32 beep: %w", err)
		}
		return errors.New("kernel32 beep failed")
	}
	return nil
}
