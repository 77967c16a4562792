package vulkan

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
)

// SynchronizedMemory is a single device memory allocation along with its mapping state
type SynchronizedMemory struct {
	mapData unsafe.Pointer

	size            int
	memoryTypeIndex int

	mapMutex   sync.Mutex
	memory     core1_0.DeviceMemory
	properties *DeviceMemoryProperties

	allocationCallbacks *driver.AllocationCallbacks
}

func allocateSynchronizedMemory(properties *DeviceMemoryProperties, callbacks *driver.AllocationCallbacks, allocateInfo core1_0.MemoryAllocateInfo) (*SynchronizedMemory, common.VkResult, error) {
	memory, res, err := properties.device.AllocateMemory(callbacks, allocateInfo)
	if err != nil {
		return nil, res, err
	}

	return &SynchronizedMemory{
		memory:              memory,
		size:                allocateInfo.AllocationSize,
		memoryTypeIndex:     allocateInfo.MemoryTypeIndex,
		properties:          properties,
		allocationCallbacks: callbacks,
	}, res, nil
}

func (m *SynchronizedMemory) Size() int {
	return m.size
}

func (m *SynchronizedMemory) MemoryTypeIndex() int {
	return m.memoryTypeIndex
}

func (m *SynchronizedMemory) VulkanDeviceMemory() core1_0.DeviceMemory {
	return m.memory
}

func (m *SynchronizedMemory) BindVulkanBuffer(offset int, buffer core1_0.Buffer) (common.VkResult, error) {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	return buffer.BindBufferMemory(m.memory, offset)
}

func (m *SynchronizedMemory) BindVulkanImage(offset int, image core1_0.Image) (common.VkResult, error) {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	return image.BindImageMemory(m.memory, offset)
}

func (m *SynchronizedMemory) MappedData() unsafe.Pointer {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	return m.mapData
}

// Map maps the whole allocation. Vulkan does not permit a second mapping of the same memory, so
// neither does Map.
func (m *SynchronizedMemory) Map() (unsafe.Pointer, common.VkResult, error) {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	if m.mapData != nil {
		return nil, core1_0.VKErrorMemoryMapFailed, errors.New("device memory is already mapped")
	}

	mappedData, result, err := m.memory.Map(0, -1, core1_0.MemoryMapFlags(0))
	if err != nil {
		return nil, result, err
	}

	m.mapData = mappedData
	atomic.AddInt32(&m.properties.mappingCount, 1)
	return mappedData, result, nil
}

func (m *SynchronizedMemory) Unmap() error {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	if m.mapData == nil {
		return errors.New("device memory is not mapped")
	}

	m.memory.Unmap()
	m.mapData = nil
	atomic.AddInt32(&m.properties.mappingCount, -1)
	return nil
}

func (m *SynchronizedMemory) FreeMemory() {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	// Freeing memory implicitly unmaps it
	if m.mapData != nil {
		m.mapData = nil
		atomic.AddInt32(&m.properties.mappingCount, -1)
	}

	m.memory.Free(m.allocationCallbacks)
}
