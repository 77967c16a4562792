package vulkan

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/extmem/memutils"
)

// DeviceMemoryProperties holds the memory layout of a physical device and counts the objects
// allocated through it
type DeviceMemoryProperties struct {
	memoryCount     int32
	allocationBytes int64
	resourceCount   int32
	mappingCount    int32

	allocationCallbacks *driver.AllocationCallbacks

	device                    core1_0.Device
	deviceProperties          *core1_0.PhysicalDeviceProperties
	memoryProperties          *core1_0.PhysicalDeviceMemoryProperties
	externalMemoryHandleTypes []khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
}

func NewDeviceMemoryProperties(
	allocationCallbacks *driver.AllocationCallbacks,
	device core1_0.Device,
	physicalDevice core1_0.PhysicalDevice,
	externalMemoryHandleTypes []khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags,
) (*DeviceMemoryProperties, error) {
	deviceProperties := &DeviceMemoryProperties{
		allocationCallbacks: allocationCallbacks,
		device:              device,
	}

	var err error
	deviceProperties.deviceProperties, err = physicalDevice.Properties()
	if err != nil {
		return nil, err
	}

	deviceProperties.memoryProperties = physicalDevice.MemoryProperties()

	err = memutils.CheckPow2(deviceProperties.deviceProperties.Limits.NonCoherentAtomSize, "device nonCoherentAtomSize")
	if err != nil {
		return nil, err
	}

	typeCount := deviceProperties.MemoryTypeCount()
	if len(externalMemoryHandleTypes) > 0 && len(externalMemoryHandleTypes) != typeCount {
		return nil, errors.New("vulkan.CreateOptions.ExternalMemoryHandleTypes was provided, but the length does not equal the number of PhysicalDevice memory types")
	}
	deviceProperties.externalMemoryHandleTypes = externalMemoryHandleTypes

	return deviceProperties, nil
}

func (m *DeviceMemoryProperties) MemoryTypeCount() int {
	return len(m.memoryProperties.MemoryTypes)
}

func (m *DeviceMemoryProperties) MemoryTypes() []core1_0.MemoryType {
	return m.memoryProperties.MemoryTypes
}

func (m *DeviceMemoryProperties) DeviceProperties() *core1_0.PhysicalDeviceProperties {
	return m.deviceProperties
}

func (m *DeviceMemoryProperties) MemoryTypeProperties(memoryTypeIndex int) core1_0.MemoryType {
	return m.memoryProperties.MemoryTypes[memoryTypeIndex]
}

func (m *DeviceMemoryProperties) IsMemoryTypeHostNonCoherent(memoryTypeIndex int) bool {
	flags := m.memoryProperties.MemoryTypes[memoryTypeIndex].PropertyFlags

	return flags&(core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent) == core1_0.MemoryPropertyHostVisible
}

// ExternalMemoryTypeBits returns the memory types that may be used for memory exported with
// handleType. When no per-type restriction was provided, every memory type is permitted.
func (m *DeviceMemoryProperties) ExternalMemoryTypeBits(handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) uint32 {
	var typeBits uint32

	for memoryTypeIndex := 0; memoryTypeIndex < m.MemoryTypeCount(); memoryTypeIndex++ {
		if len(m.externalMemoryHandleTypes) > 0 && m.externalMemoryHandleTypes[memoryTypeIndex]&handleType == 0 {
			continue
		}
		typeBits |= 1 << memoryTypeIndex
	}

	return typeBits
}

func (m *DeviceMemoryProperties) AllocateVulkanMemory(
	allocateInfo core1_0.MemoryAllocateInfo,
) (mem *SynchronizedMemory, res common.VkResult, err error) {
	newDeviceCount := atomic.AddInt32(&m.memoryCount, 1)
	defer func() {
		// If we failed out, roll back the device increment
		if err != nil {
			atomic.AddInt32(&m.memoryCount, -1)
		}
	}()

	if int(newDeviceCount) > m.deviceProperties.Limits.MaxMemoryAllocationCount {
		return nil, core1_0.VKErrorTooManyObjects, core1_0.VKErrorTooManyObjects.ToError()
	}

	mem, res, err = allocateSynchronizedMemory(
		m,
		m.allocationCallbacks,
		allocateInfo,
	)
	if err != nil {
		return nil, res, err
	}

	atomic.AddInt64(&m.allocationBytes, int64(allocateInfo.AllocationSize))
	return mem, res, nil
}

func (m *DeviceMemoryProperties) FreeVulkanMemory(memory *SynchronizedMemory) {
	memory.FreeMemory()

	atomic.AddInt64(&m.allocationBytes, -int64(memory.Size()))
	if atomic.AddInt32(&m.memoryCount, -1) < 0 {
		panic(fmt.Sprintf("allocation count went negative after freeing memory of type %d", memory.MemoryTypeIndex()))
	}
}

func (m *DeviceMemoryProperties) AddResource() {
	atomic.AddInt32(&m.resourceCount, 1)
}

func (m *DeviceMemoryProperties) RemoveResource() {
	if atomic.AddInt32(&m.resourceCount, -1) < 0 {
		panic("resource count went negative")
	}
}

func (m *DeviceMemoryProperties) Statistics() memutils.Statistics {
	return memutils.Statistics{
		ResourceCount:   int(atomic.LoadInt32(&m.resourceCount)),
		AllocationCount: int(atomic.LoadInt32(&m.memoryCount)),
		AllocationBytes: int(atomic.LoadInt64(&m.allocationBytes)),
		MappingCount:    int(atomic.LoadInt32(&m.mappingCount)),
	}
}

func (m *DeviceMemoryProperties) FlushAllocation(memory *SynchronizedMemory) (common.VkResult, error) {
	if !m.IsMemoryTypeHostNonCoherent(memory.MemoryTypeIndex()) {
		return core1_0.VKSuccess, nil
	}

	return m.device.FlushMappedMemoryRanges([]core1_0.MappedMemoryRange{
		{
			Memory: memory.VulkanDeviceMemory(),
			Offset: 0,
			Size:   -1,
		},
	})
}
