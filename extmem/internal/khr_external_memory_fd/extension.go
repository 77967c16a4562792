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
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	khr_external_memory_fd_driver "github.com/vkngwrapper/extmem/extmem/internal/khr_external_memory_fd/driver"
)

// VulkanExtension is an implementation of the Extension interface that actually communicates with Vulkan
type VulkanExtension struct {
	driver khr_external_memory_fd_driver.Driver
}

var _ Extension = &VulkanExtension{}

// CreateExtensionFromDevice produces an Extension object from a Device with
// khr_external_memory_fd loaded
func CreateExtensionFromDevice(device core1_0.Device) *VulkanExtension {
	if !device.IsDeviceExtensionActive(ExtensionName) {
		return nil
	}

	return &VulkanExtension{
		driver: khr_external_memory_fd_driver.CreateDriverFromCore(device.Driver()),
	}
}

// CreateExtensionFromDriver generates an Extension from a driver.Driver object- this is usually
// used in tests to build an Extension from mock drivers
func CreateExtensionFromDriver(driver khr_external_memory_fd_driver.Driver) *VulkanExtension {
	return &VulkanExtension{
		driver: driver,
	}
}

func (e *VulkanExtension) MemoryFd(device core1_0.Device, memory core1_0.DeviceMemory, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) (int, common.VkResult, error) {
	if device == nil {
		panic("device cannot be nil")
	}
	if memory == nil {
		panic("memory cannot be nil")
	}

	arena := cgoparam.GetAlloc()
	defer cgoparam.ReturnAlloc(arena)

	info := (*C.VkMemoryGetFdInfoKHR)(arena.Malloc(int(unsafe.Sizeof(C.VkMemoryGetFdInfoKHR{}))))
	info.sType = C.VK_STRUCTURE_TYPE_MEMORY_GET_FD_INFO_KHR
	info.pNext = nil
	info.memory = C.VkDeviceMemory(memory.Handle())
	info.handleType = C.VkExternalMemoryHandleTypeFlagBits(handleType)

	fd := (*driver.Int32)(arena.Malloc(int(unsafe.Sizeof(C.int(0)))))
	*fd = -1

	res, err := e.driver.VkGetMemoryFdKHR(device.Handle(),
		(*khr_external_memory_fd_driver.VkMemoryGetFdInfoKHR)(unsafe.Pointer(info)),
		fd)
	if err != nil {
		return -1, res, err
	}

	return int(*fd), res, nil
}

func (e *VulkanExtension) MemoryFdProperties(device core1_0.Device, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags, fd int) (uint32, common.VkResult, error) {
	if device == nil {
		panic("device cannot be nil")
	}

	arena := cgoparam.GetAlloc()
	defer cgoparam.ReturnAlloc(arena)

	properties := (*C.VkMemoryFdPropertiesKHR)(arena.Malloc(int(unsafe.Sizeof(C.VkMemoryFdPropertiesKHR{}))))
	properties.sType = C.VK_STRUCTURE_TYPE_MEMORY_FD_PROPERTIES_KHR
	properties.pNext = nil
	properties.memoryTypeBits = 0

	res, err := e.driver.VkGetMemoryFdPropertiesKHR(device.Handle(),
		khr_external_memory_fd_driver.VkExternalMemoryHandleTypeFlagBits(handleType),
		driver.Int32(fd),
		(*khr_external_memory_fd_driver.VkMemoryFdPropertiesKHR)(unsafe.Pointer(properties)))
	if err != nil {
		return 0, res, err
	}

	return uint32(properties.memoryTypeBits), res, nil
}
