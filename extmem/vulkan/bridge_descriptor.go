package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/extmem/internal/khr_external_memory_fd"
)

// DescriptorBridge exchanges file descriptor handles (opaque-fd and dma-buf) through
// VK_KHR_external_memory_fd. Other handle families are reported as unsupported.
type DescriptorBridge struct {
	extension khr_external_memory_fd.Extension
}

var _ HandleBridge = &DescriptorBridge{}

// BridgeForDevice returns a DescriptorBridge if device has VK_KHR_external_memory_fd active, and
// UnsupportedBridge otherwise
func BridgeForDevice(device core1_0.Device) HandleBridge {
	extension := khr_external_memory_fd.CreateExtensionFromDevice(device)
	if extension == nil {
		return UnsupportedBridge{}
	}

	return &DescriptorBridge{extension: extension}
}

func descriptorKind(kind extmem.HandleKind) bool {
	return kind == extmem.HandleKindOpaqueFD || kind == extmem.HandleKindDmaBuf
}

func unsupportedFamily(kind extmem.HandleKind) error {
	return errors.Mark(errors.Newf("%s handles cannot be exchanged as file descriptors", kind.Name()), extmem.ErrUnsupported)
}

func (b *DescriptorBridge) ExportHandle(device core1_0.Device, memory core1_0.DeviceMemory, kind extmem.HandleKind, size int) (*extmem.ExternalHandle, error) {
	if !descriptorKind(kind) {
		return nil, unsupportedFamily(kind)
	}

	fd, _, err := b.extension.MemoryFd(device, memory, khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags(kind))
	if err != nil {
		return nil, errors.Wrapf(err, "exporting %s descriptor", kind.Name())
	}

	return extmem.NewDescriptorHandle(kind, fd, size)
}

func (b *DescriptorBridge) ImportOptions(handle *extmem.ExternalHandle, next common.Options) (common.Options, error) {
	fd, ok := handle.FD()
	if !ok || !descriptorKind(handle.Kind()) {
		return nil, unsupportedFamily(handle.Kind())
	}

	return khr_external_memory_fd.ImportMemoryFdInfo{
		HandleType:  khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags(handle.Kind()),
		Fd:          fd,
		NextOptions: common.NextOptions{Next: next},
	}, nil
}

// ImportMemoryTypeBits queries the driver for dma-buf descriptors. Opaque descriptors cannot be
// queried: they import into the memory type they were exported from, so no types are excluded.
func (b *DescriptorBridge) ImportMemoryTypeBits(device core1_0.Device, handle *extmem.ExternalHandle) (uint32, error) {
	fd, ok := handle.FD()
	if !ok || !descriptorKind(handle.Kind()) {
		return 0, unsupportedFamily(handle.Kind())
	}

	if handle.Kind() == extmem.HandleKindOpaqueFD {
		return ^uint32(0), nil
	}

	typeBits, _, err := b.extension.MemoryFdProperties(device, khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags(handle.Kind()), fd)
	if err != nil {
		return 0, errors.Wrapf(err, "querying %s descriptor %d", handle.Kind().Name(), fd)
	}

	return typeBits, nil
}

func (b *DescriptorBridge) MinImportedHostPointerAlignment() int {
	return 1
}
