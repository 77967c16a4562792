//go:build unix

package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extmem/extmem"
	"golang.org/x/sys/unix"
)

func closeHandle(handle *extmem.ExternalHandle) error {
	fd, ok := handle.FD()
	if !ok {
		return errors.Newf("%s handles cannot be released on this platform", handle.Kind().Name())
	}

	return errors.Wrapf(unix.Close(fd), "closing %s descriptor %d", handle.Kind().Name(), fd)
}
