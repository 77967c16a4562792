package khr_external_memory_fd

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

//go:generate mockgen -source extiface.go -destination ./mocks/extension.go -package mock_external_memory_fd

// Extension contains all commands for the khr_external_memory_fd extension
type Extension interface {
	// MemoryFd exports a POSIX file descriptor referencing a DeviceMemory object. The caller
	// owns the returned descriptor.
	//
	// device - The Device which owns the memory
	//
	// memory - The DeviceMemory to export. It must have been allocated exportable as handleType.
	//
	// handleType - The type of handle requested
	//
	// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/vkGetMemoryFdKHR.html
	MemoryFd(device core1_0.Device, memory core1_0.DeviceMemory, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) (int, common.VkResult, error)
	// MemoryFdProperties returns the memory types a POSIX file descriptor can be imported as
	//
	// device - The Device that will import the descriptor
	//
	// handleType - The type of handle fd is
	//
	// fd - The descriptor to query
	//
	// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/vkGetMemoryFdPropertiesKHR.html
	MemoryFdProperties(device core1_0.Device, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags, fd int) (uint32, common.VkResult, error)
}
