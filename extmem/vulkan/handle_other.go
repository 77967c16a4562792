//go:build !unix && !windows

package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extmem/extmem"
)

func closeHandle(handle *extmem.ExternalHandle) error {
	return errors.Mark(errors.Newf("%s handles cannot be released on this platform", handle.Kind().Name()), extmem.ErrUnsupported)
}
