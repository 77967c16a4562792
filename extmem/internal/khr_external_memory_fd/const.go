package khr_external_memory_fd

/*
#include <stdlib.h>
#include "external_memory_fd.h"
*/
import "C"

const (
	// ExtensionName is "VK_KHR_external_memory_fd"
	//
	// https://registry.khronos.org/vulkan/specs/1.3-extensions/man/html/VK_KHR_external_memory_fd.html
	ExtensionName string = C.VK_KHR_EXTERNAL_MEMORY_FD_EXTENSION_NAME
)
