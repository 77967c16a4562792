package khr_external_memory_fd

/*
#include <stdlib.h>
#include "external_memory_fd.h"
*/
import "C"
import (
	"unsafe"

	"github.com/CannibalVox/cgoparam"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

// ImportMemoryFdInfo imports memory created on the same physical device from a file descriptor.
// A successful import transfers ownership of Fd to the Vulkan implementation.
//
// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VkImportMemoryFdInfoKHR.html
type ImportMemoryFdInfo struct {
	// HandleType is the type of handle Fd is
	HandleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
	// Fd is the external handle to import
	Fd int

	common.NextOptions
}

func (o ImportMemoryFdInfo) PopulateCPointer(allocator *cgoparam.Allocator, preallocatedPointer unsafe.Pointer, next unsafe.Pointer) (unsafe.Pointer, error) {
	if preallocatedPointer == nil {
		preallocatedPointer = allocator.Malloc(int(unsafe.Sizeof(C.VkImportMemoryFdInfoKHR{})))
	}

	info := (*C.VkImportMemoryFdInfoKHR)(preallocatedPointer)
	info.sType = C.VK_STRUCTURE_TYPE_IMPORT_MEMORY_FD_INFO_KHR
	info.pNext = next
	info.handleType = C.VkExternalMemoryHandleTypeFlagBits(o.HandleType)
	info.fd = C.int(o.Fd)

	return preallocatedPointer, nil
}
