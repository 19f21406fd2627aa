//go:build !linux && !windows

package platform

import "os"

func newBeeper() beeper {
	return bellBeeper{out: os.Stderr}
}
