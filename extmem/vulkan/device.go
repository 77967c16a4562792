package vulkan

import (
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/extmem/internal/vulkan"
	"github.com/vkngwrapper/extmem/memutils"
	"golang.org/x/exp/slog"
)

// CreateOptions contains optional settings when creating a Device
type CreateOptions struct {
	// VulkanCallbacks is an optional set of callbacks that will be executed from Vulkan on every
	// object the Device creates
	VulkanCallbacks *driver.AllocationCallbacks

	// ExternalMemoryHandleTypes can be left empty. If it is provided though, it must be a slice
	// with a number of entries corresponding to the number of memory types in the PhysicalDevice
	// used to create this Device. Each entry is the set of handle types that memory of the
	// corresponding type may be exported with; 0 prevents exporting from that memory type.
	ExternalMemoryHandleTypes []khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags

	// Bridge carries out the handle-family specific parts of exporting and importing. When nil,
	// UnsupportedBridge is used.
	Bridge HandleBridge
}

// Device implements extmem.Device on top of a Vulkan device
type Device struct {
	logger *slog.Logger

	instance       core1_0.Instance
	physicalDevice core1_0.PhysicalDevice
	device         core1_0.Device

	callbacks     *driver.AllocationCallbacks
	extensionData *vulkan.ExtensionData
	deviceMemory  *vulkan.DeviceMemoryProperties
	bridge        HandleBridge

	handleCount int32
}

var _ extmem.Device = &Device{}
var _ extmem.AllocationCounter = &Device{}

// New creates a new Device
//
// instance - The instance that owns the provided Device
//
// physicalDevice - The PhysicalDevice that owns the provided Device
//
// device - The Device that resources and memory will be created in
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, instance core1_0.Instance, physicalDevice core1_0.PhysicalDevice, device core1_0.Device, options CreateOptions) (*Device, error) {
	d := &Device{
		logger:         logger,
		instance:       instance,
		physicalDevice: physicalDevice,
		device:         device,
		callbacks:      options.VulkanCallbacks,
		extensionData:  vulkan.NewExtensionData(physicalDevice, device),
		bridge:         options.Bridge,
	}

	if d.bridge == nil {
		d.bridge = UnsupportedBridge{}
	}

	// khr_external_memory present by any means
	if !d.extensionData.ExternalMemory && len(options.ExternalMemoryHandleTypes) > 0 {
		return nil, errors.New("vulkan.CreateOptions.ExternalMemoryHandleTypes was provided, but neither the core 1.1 or the extension khr_external_memory are active")
	}

	var err error
	d.deviceMemory, err = vulkan.NewDeviceMemoryProperties(
		options.VulkanCallbacks,
		device,
		physicalDevice,
		options.ExternalMemoryHandleTypes,
	)
	if err != nil {
		return nil, err
	}

	err = memutils.CheckPow2(d.bridge.MinImportedHostPointerAlignment(), "minImportedHostPointerAlignment")
	if err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Device) lookupMemory(memory extmem.Memory) (*vulkan.SynchronizedMemory, error) {
	mem, ok := memory.(*vulkan.SynchronizedMemory)
	if !ok || mem == nil {
		return nil, errors.Newf("memory %T does not belong to a vulkan device", memory)
	}
	return mem, nil
}

// Statistics counts the objects the device currently holds on behalf of the harness
func (d *Device) Statistics() memutils.Statistics {
	stats := d.deviceMemory.Statistics()
	stats.HandleCount = int(atomic.LoadInt32(&d.handleCount))
	return stats
}

func (d *Device) LiveAllocations() int {
	stats := d.Statistics()
	return stats.LiveObjects()
}

func (d *Device) Limits() extmem.Limits {
	return extmem.Limits{
		NonCoherentAtomSize:             d.deviceMemory.DeviceProperties().Limits.NonCoherentAtomSize,
		MinImportedHostPointerAlignment: d.bridge.MinImportedHostPointerAlignment(),
	}
}

func (d *Device) MemoryTypes() []core1_0.MemoryType {
	return d.deviceMemory.MemoryTypes()
}

func (d *Device) CreateBuffer(descriptor extmem.BufferDescriptor, size int, kind extmem.HandleKind) (extmem.Resource, error) {
	d.logger.Debug("VulkanDevice::CreateBuffer")

	createInfo := bufferCreateInfo(descriptor, size)
	if kind != 0 {
		if !d.extensionData.ExternalMemory {
			return nil, errors.Mark(core1_0.VKErrorExtensionNotPresent.ToError(), extmem.ErrUnsupported)
		}
		createInfo.Next = khr_external_memory.ExternalMemoryBufferCreateInfo{
			HandleTypes: khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags(kind),
		}
	}

	buffer, _, err := d.device.CreateBuffer(d.callbacks, createInfo)
	if err != nil {
		return nil, err
	}
	d.deviceMemory.AddResource()

	return &bufferResource{buffer: buffer}, nil
}

func (d *Device) CreateImage(descriptor extmem.ImageDescriptor, kind extmem.HandleKind) (extmem.Resource, error) {
	d.logger.Debug("VulkanDevice::CreateImage")

	createInfo := imageCreateInfo(descriptor)
	if kind != 0 {
		if !d.extensionData.ExternalMemory {
			return nil, errors.Mark(core1_0.VKErrorExtensionNotPresent.ToError(), extmem.ErrUnsupported)
		}
		createInfo.Next = khr_external_memory.ExternalMemoryImageCreateInfo{
			HandleTypes: khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags(kind),
		}
	}

	image, _, err := d.device.CreateImage(d.callbacks, createInfo)
	if err != nil {
		return nil, err
	}
	d.deviceMemory.AddResource()

	return &imageResource{image: image}, nil
}

func (d *Device) MemoryRequirements(resource extmem.Resource) (extmem.MemoryRequirements, error) {
	d.logger.Debug("VulkanDevice::MemoryRequirements")

	var memReqs core1_0.MemoryRequirements
	var requiresDedicated, prefersDedicated bool
	var err error

	if buffer, ok := asBuffer(resource); ok {
		requiresDedicated, prefersDedicated, err = d.getBufferMemoryRequirements(buffer.buffer, &memReqs)
	} else if image, ok := asImage(resource); ok {
		requiresDedicated, prefersDedicated, err = d.getImageMemoryRequirements(image.image, &memReqs)
	} else {
		err = unknownResource(resource)
	}
	if err != nil {
		return extmem.MemoryRequirements{}, err
	}

	return extmem.MemoryRequirements{
		Size:              memReqs.Size,
		Alignment:         memReqs.Alignment,
		MemoryTypeBits:    memReqs.MemoryTypeBits,
		RequiresDedicated: requiresDedicated,
		PrefersDedicated:  prefersDedicated,
	}, nil
}

func (d *Device) getBufferMemoryRequirements(buffer core1_0.Buffer, memoryRequirements *core1_0.MemoryRequirements) (requiresDedicated, prefersDedicated bool, err error) {
	if d.extensionData.DedicatedAllocations && d.extensionData.GetMemoryRequirements != nil {
		dedicatedReqs := khr_dedicated_allocation.MemoryDedicatedRequirements{}
		memReqs := core1_1.MemoryRequirements2{
			NextOutData: common.NextOutData{
				Next: &dedicatedReqs,
			},
		}

		err = d.extensionData.GetMemoryRequirements.BufferMemoryRequirements2(
			core1_1.BufferMemoryRequirementsInfo2{
				Buffer: buffer,
			},
			&memReqs)
		if err != nil {
			return false, false, err
		}

		*memoryRequirements = memReqs.MemoryRequirements
		return dedicatedReqs.RequiresDedicatedAllocation, dedicatedReqs.PrefersDedicatedAllocation, nil
	}

	*memoryRequirements = *buffer.MemoryRequirements()
	return false, false, nil
}

func (d *Device) getImageMemoryRequirements(image core1_0.Image, memoryRequirements *core1_0.MemoryRequirements) (requiresDedicated, prefersDedicated bool, err error) {
	if d.extensionData.DedicatedAllocations && d.extensionData.GetMemoryRequirements != nil {
		dedicatedReqs := khr_dedicated_allocation.MemoryDedicatedRequirements{}
		memReqs := core1_1.MemoryRequirements2{
			NextOutData: common.NextOutData{
				Next: &dedicatedReqs,
			},
		}

		err = d.extensionData.GetMemoryRequirements.ImageMemoryRequirements2(
			core1_1.ImageMemoryRequirementsInfo2{
				Image: image,
			},
			&memReqs)
		if err != nil {
			return false, false, err
		}

		*memoryRequirements = memReqs.MemoryRequirements
		return dedicatedReqs.RequiresDedicatedAllocation, dedicatedReqs.PrefersDedicatedAllocation, nil
	}

	*memoryRequirements = *image.MemoryRequirements()
	return false, false, nil
}

func (d *Device) ExportMemoryTypeBits(kind extmem.HandleKind) uint32 {
	return d.deviceMemory.ExternalMemoryTypeBits(khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags(kind))
}

// allocateInfo builds the allocation structure with the dedicated allocation chained in, if one
// was requested and the device can use it
func (d *Device) allocateInfo(request extmem.AllocationRequest) (core1_0.MemoryAllocateInfo, error) {
	allocInfo := core1_0.MemoryAllocateInfo{
		AllocationSize:  request.Size,
		MemoryTypeIndex: request.MemoryTypeIndex,
	}

	if request.Dedicated != nil && d.extensionData.DedicatedAllocations {
		dedicatedAllocInfo := khr_dedicated_allocation.MemoryDedicatedAllocateInfo{}
		if buffer, ok := asBuffer(request.Dedicated); ok {
			dedicatedAllocInfo.Buffer = buffer.buffer
		} else if image, ok := asImage(request.Dedicated); ok {
			dedicatedAllocInfo.Image = image.image
		} else {
			return allocInfo, unknownResource(request.Dedicated)
		}
		dedicatedAllocInfo.Next = allocInfo.Next
		allocInfo.Next = dedicatedAllocInfo
	}

	return allocInfo, nil
}

func (d *Device) AllocateMemory(request extmem.AllocationRequest) (extmem.Memory, error) {
	d.logger.Debug("VulkanDevice::AllocateMemory")

	allocInfo, err := d.allocateInfo(request)
	if err != nil {
		return nil, err
	}

	if request.Kind != 0 {
		if !d.extensionData.ExternalMemory {
			return nil, errors.Mark(core1_0.VKErrorExtensionNotPresent.ToError(), extmem.ErrUnsupported)
		}

		exportMemoryAllocInfo := khr_external_memory.ExportMemoryAllocateInfo{
			HandleTypes: khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags(request.Kind),
		}
		exportMemoryAllocInfo.Next = allocInfo.Next
		allocInfo.Next = exportMemoryAllocInfo
	}

	memory, _, err := d.deviceMemory.AllocateVulkanMemory(allocInfo)
	if err != nil {
		return nil, err
	}

	return memory, nil
}

func (d *Device) ImportMemoryTypeBits(handle *extmem.ExternalHandle) (uint32, error) {
	d.logger.Debug("VulkanDevice::ImportMemoryTypeBits")

	return d.bridge.ImportMemoryTypeBits(d.device, handle)
}

func (d *Device) ImportMemory(handle *extmem.ExternalHandle, request extmem.AllocationRequest) (extmem.Memory, error) {
	d.logger.Debug("VulkanDevice::ImportMemory")

	allocInfo, err := d.allocateInfo(request)
	if err != nil {
		return nil, err
	}

	allocInfo.Next, err = d.bridge.ImportOptions(handle, allocInfo.Next)
	if err != nil {
		return nil, err
	}

	memory, _, err := d.deviceMemory.AllocateVulkanMemory(allocInfo)
	if err != nil {
		return nil, err
	}

	if handle.SingleUse() {
		atomic.AddInt32(&d.handleCount, -1)
	}

	return memory, nil
}

func (d *Device) BindMemory(resource extmem.Resource, memory extmem.Memory) error {
	d.logger.Debug("VulkanDevice::BindMemory")

	mem, err := d.lookupMemory(memory)
	if err != nil {
		return err
	}

	if buffer, ok := asBuffer(resource); ok {
		_, err = mem.BindVulkanBuffer(0, buffer.buffer)
		return err
	} else if image, ok := asImage(resource); ok {
		_, err = mem.BindVulkanImage(0, image.image)
		return err
	}

	return unknownResource(resource)
}

func (d *Device) ExportMemory(memory extmem.Memory, kind extmem.HandleKind) (*extmem.ExternalHandle, error) {
	d.logger.Debug("VulkanDevice::ExportMemory")

	mem, err := d.lookupMemory(memory)
	if err != nil {
		return nil, err
	}

	handle, err := d.bridge.ExportHandle(d.device, mem.VulkanDeviceMemory(), kind, mem.Size())
	if err != nil {
		return nil, err
	}

	atomic.AddInt32(&d.handleCount, 1)
	return handle, nil
}

func (d *Device) ReleaseHandle(handle *extmem.ExternalHandle) error {
	d.logger.Debug("VulkanDevice::ReleaseHandle")

	err := closeHandle(handle)
	if err != nil {
		return err
	}

	atomic.AddInt32(&d.handleCount, -1)
	return nil
}

func (d *Device) MapMemory(memory extmem.Memory) (unsafe.Pointer, error) {
	d.logger.Debug("VulkanDevice::MapMemory")

	mem, err := d.lookupMemory(memory)
	if err != nil {
		return nil, err
	}

	ptr, _, err := mem.Map()
	return ptr, err
}

func (d *Device) FlushMemory(memory extmem.Memory) error {
	d.logger.Debug("VulkanDevice::FlushMemory")

	mem, err := d.lookupMemory(memory)
	if err != nil {
		return err
	}

	_, err = d.deviceMemory.FlushAllocation(mem)
	return err
}

func (d *Device) UnmapMemory(memory extmem.Memory) {
	d.logger.Debug("VulkanDevice::UnmapMemory")

	mem, err := d.lookupMemory(memory)
	if err == nil {
		err = mem.Unmap()
	}
	if err != nil {
		d.logger.Error("unmapping memory", slog.Any("error", err))
	}
}

func (d *Device) WaitIdle() error {
	d.logger.Debug("VulkanDevice::WaitIdle")

	_, err := d.device.WaitIdle()
	return err
}

func (d *Device) DestroyResource(resource extmem.Resource) {
	d.logger.Debug("VulkanDevice::DestroyResource")

	if buffer, ok := asBuffer(resource); ok {
		buffer.buffer.Destroy(d.callbacks)
	} else if image, ok := asImage(resource); ok {
		image.image.Destroy(d.callbacks)
	} else {
		d.logger.Error("destroying resource", slog.Any("error", unknownResource(resource)))
		return
	}

	d.deviceMemory.RemoveResource()
}

func (d *Device) FreeMemory(memory extmem.Memory) {
	d.logger.Debug("VulkanDevice::FreeMemory")

	mem, err := d.lookupMemory(memory)
	if err != nil {
		d.logger.Error("freeing memory", slog.Any("error", err))
		return
	}

	d.deviceMemory.FreeVulkanMemory(mem)
}
