//go:build windows

package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extmem/extmem"
	"golang.org/x/sys/windows"
)

func closeHandle(handle *extmem.ExternalHandle) error {
	osHandle, ok := handle.OSHandle()
	if !ok {
		return errors.Newf("%s handles cannot be released on this platform", handle.Kind().Name())
	}

	// KMT handles are global names rather than references, and are never closed
	switch handle.Kind() {
	case extmem.HandleKindOpaqueWin32KMT, extmem.HandleKindD3D11TextureKMT:
		return nil
	}

	return errors.Wrapf(windows.CloseHandle(windows.Handle(osHandle)), "closing %s handle %#x", handle.Kind().Name(), osHandle)
}
