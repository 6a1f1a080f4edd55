package util

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// Restart replaces the running process with a fresh copy of itself.
func Restart() error {
	self, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "error locating executable")
	}
	return errors.Wrap(syscall.Exec(self, os.Args, os.Environ()), "error executing "+self)
}
