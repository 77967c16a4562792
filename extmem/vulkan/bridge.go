package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extmem/extmem"
)

// HandleBridge carries out the platform-specific half of external memory: retrieving file
// descriptors or OS handles from exported memory, building the import structure for a handle, and
// reporting which memory types a handle can be imported into. Each of these depends on an
// extension particular to one handle family (VK_KHR_external_memory_fd,
// VK_KHR_external_memory_win32, VK_EXT_external_memory_host and so on).
type HandleBridge interface {
	// ExportHandle retrieves a handle of the requested kind for memory that was allocated as
	// exportable with that kind
	ExportHandle(device core1_0.Device, memory core1_0.DeviceMemory, kind extmem.HandleKind, size int) (*extmem.ExternalHandle, error)
	// ImportOptions returns the structure that imports handle, with next chained behind it, to
	// be placed into MemoryAllocateInfo
	ImportOptions(handle *extmem.ExternalHandle, next common.Options) (common.Options, error)
	// ImportMemoryTypeBits reports the memory types handle can be imported into
	ImportMemoryTypeBits(device core1_0.Device, handle *extmem.ExternalHandle) (uint32, error)
	// MinImportedHostPointerAlignment is the alignment required of imported host pointers and
	// their sizes, or 1 if host pointers cannot be imported
	MinImportedHostPointerAlignment() int
}

// UnsupportedBridge is the HandleBridge used when none is provided. Every operation fails with an
// error marked extmem.ErrUnsupported, so cases that need a bridge report Unsupported phases.
type UnsupportedBridge struct{}

var _ HandleBridge = UnsupportedBridge{}

func (b UnsupportedBridge) ExportHandle(device core1_0.Device, memory core1_0.DeviceMemory, kind extmem.HandleKind, size int) (*extmem.ExternalHandle, error) {
	return nil, errors.Mark(errors.Newf("no handle bridge can export %s handles", kind.Name()), extmem.ErrUnsupported)
}

func (b UnsupportedBridge) ImportOptions(handle *extmem.ExternalHandle, next common.Options) (common.Options, error) {
	return nil, errors.Mark(errors.Newf("no handle bridge can import %s handles", handle.Kind().Name()), extmem.ErrUnsupported)
}

func (b UnsupportedBridge) ImportMemoryTypeBits(device core1_0.Device, handle *extmem.ExternalHandle) (uint32, error) {
	return 0, errors.Mark(errors.Newf("no handle bridge can query %s import memory types", handle.Kind().Name()), extmem.ErrUnsupported)
}

func (b UnsupportedBridge) MinImportedHostPointerAlignment() int {
	return 1
}
