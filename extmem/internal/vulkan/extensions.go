package vulkan

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/extensions/v2/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_get_memory_requirements2"
	khr_get_memory_requirements2_shim "github.com/vkngwrapper/extensions/v2/khr_get_memory_requirements2/shim"
)

type ExtensionData struct {
	DedicatedAllocations  bool
	ExternalMemory        bool
	GetMemoryRequirements khr_get_memory_requirements2_shim.Shim
	// ExternalCapabilities is nil unless the instance and physical device are at least core 1.1
	ExternalCapabilities core1_1.InstanceScopedPhysicalDevice
}

func NewExtensionData(physicalDevice core1_0.PhysicalDevice, device core1_0.Device) *ExtensionData {
	data := &ExtensionData{}

	// External capability queries are instance-level, so they depend on the physical device
	// rather than the device
	data.ExternalCapabilities = core1_1.PromoteInstanceScopedPhysicalDevice(physicalDevice)

	device11 := core1_1.PromoteDevice(device)
	if device11 != nil {
		// Core 1.1 active - that means we can use khr_get_memory_requirements2,
		// khr_dedicated_allocation, and khr_external_memory
		data.DedicatedAllocations = true
		data.ExternalMemory = true
		data.GetMemoryRequirements = device11
	}

	// khr_get_memory_requirements2 if core 1.1 is not active
	if data.GetMemoryRequirements == nil && device.IsDeviceExtensionActive(khr_get_memory_requirements2.ExtensionName) {
		extension := khr_get_memory_requirements2.CreateExtensionFromDevice(device)
		data.GetMemoryRequirements = khr_get_memory_requirements2_shim.NewShim(extension, device)
	}

	// khr_dedicated_allocation if khr_get_memory_requirements is active but core 1.1 is not
	if data.GetMemoryRequirements != nil && !data.DedicatedAllocations &&
		device.IsDeviceExtensionActive(khr_dedicated_allocation.ExtensionName) {
		data.DedicatedAllocations = true
	}

	// khr_external_memory if core 1.1 is not active
	if !data.ExternalMemory && device.IsDeviceExtensionActive(khr_external_memory.ExtensionName) {
		data.ExternalMemory = true
	}

	return data
}
