package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/extmem/extmem"
)

func capabilitiesFromProperties(properties core1_1.ExternalMemoryProperties, kind extmem.HandleKind) extmem.CapabilitySet {
	var capabilities extmem.CapabilitySet
	features := properties.ExternalMemoryFeatures

	if features&core1_1.ExternalMemoryFeatureExportable != 0 {
		capabilities |= extmem.CapabilityExportable
	}
	if features&core1_1.ExternalMemoryFeatureImportable != 0 {
		capabilities |= extmem.CapabilityImportable
	}
	if features&core1_1.ExternalMemoryFeatureDedicatedOnly != 0 {
		capabilities |= extmem.CapabilityDedicatedOnly
	}
	if properties.ExportFromImportedHandleTypes&core1_1.ExternalMemoryHandleTypeFlags(kind) != 0 {
		capabilities |= extmem.CapabilityExportableFromImported
	}

	return capabilities
}

func bufferInfo(descriptor extmem.BufferDescriptor, kind extmem.HandleKind) core1_1.PhysicalDeviceExternalBufferInfo {
	return core1_1.PhysicalDeviceExternalBufferInfo{
		Flags:      descriptor.Flags,
		Usage:      descriptor.Usage,
		HandleType: core1_1.ExternalMemoryHandleTypeFlags(kind),
	}
}

func imageFormatInfo(descriptor extmem.ImageDescriptor, kind extmem.HandleKind) core1_1.PhysicalDeviceImageFormatInfo2 {
	return core1_1.PhysicalDeviceImageFormatInfo2{
		Format: descriptor.Format,
		Type:   descriptor.Type,
		Tiling: descriptor.Tiling,
		Usage:  descriptor.Usage,
		Flags:  descriptor.Flags,
		NextOptions: common.NextOptions{
			Next: core1_1.PhysicalDeviceExternalImageFormatInfo{
				HandleType: core1_1.ExternalMemoryHandleTypeFlags(kind),
			},
		},
	}
}

func (d *Device) BufferCapabilities(descriptor extmem.BufferDescriptor, kind extmem.HandleKind) (extmem.CapabilitySet, error) {
	d.logger.Debug("VulkanDevice::BufferCapabilities")

	if d.extensionData.ExternalCapabilities == nil {
		return 0, errors.Mark(errors.New("external memory capability queries require core 1.1"), extmem.ErrUnsupported)
	}

	var properties core1_1.ExternalBufferProperties
	err := d.extensionData.ExternalCapabilities.ExternalBufferProperties(bufferInfo(descriptor, kind), &properties)
	if err != nil {
		return 0, err
	}

	return capabilitiesFromProperties(properties.ExternalMemoryProperties, kind), nil
}

func (d *Device) ImageCapabilities(descriptor extmem.ImageDescriptor, kind extmem.HandleKind) (extmem.CapabilitySet, error) {
	d.logger.Debug("VulkanDevice::ImageCapabilities")

	if d.extensionData.ExternalCapabilities == nil {
		return 0, errors.Mark(errors.New("external memory capability queries require core 1.1"), extmem.ErrUnsupported)
	}

	externalProperties := core1_1.ExternalImageFormatProperties{}
	properties := core1_1.ImageFormatProperties2{
		NextOutData: common.NextOutData{
			Next: &externalProperties,
		},
	}

	res, err := d.extensionData.ExternalCapabilities.ImageFormatProperties2(imageFormatInfo(descriptor, kind), &properties)
	if err != nil {
		return 0, err
	}
	if res == core1_0.VKErrorFormatNotSupported {
		return 0, res.ToError()
	}

	return capabilitiesFromProperties(externalProperties.ExternalMemoryProperties, kind), nil
}
