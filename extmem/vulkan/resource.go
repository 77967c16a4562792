package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extmem/extmem"
)

type bufferResource struct {
	buffer core1_0.Buffer
}

func (r *bufferResource) ResourceKind() extmem.ResourceKind {
	return extmem.ResourceBuffer
}

type imageResource struct {
	image core1_0.Image
}

func (r *imageResource) ResourceKind() extmem.ResourceKind {
	return extmem.ResourceImage
}

func bufferCreateInfo(descriptor extmem.BufferDescriptor, size int) core1_0.BufferCreateInfo {
	return core1_0.BufferCreateInfo{
		Flags:       descriptor.Flags,
		Size:        size,
		Usage:       descriptor.Usage,
		SharingMode: core1_0.SharingModeExclusive,
	}
}

func imageCreateInfo(descriptor extmem.ImageDescriptor) core1_0.ImageCreateInfo {
	return core1_0.ImageCreateInfo{
		Flags:         descriptor.Flags,
		ImageType:     descriptor.Type,
		Format:        descriptor.Format,
		Extent:        descriptor.Extent,
		MipLevels:     descriptor.MipLevels,
		ArrayLayers:   descriptor.ArrayLayers,
		Samples:       core1_0.Samples1,
		Tiling:        descriptor.Tiling,
		Usage:         descriptor.Usage,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: core1_0.ImageLayoutUndefined,
	}
}

func asBuffer(resource extmem.Resource) (*bufferResource, bool) {
	buffer, ok := resource.(*bufferResource)
	return buffer, ok
}

func asImage(resource extmem.Resource) (*imageResource, bool) {
	image, ok := resource.(*imageResource)
	return image, ok
}

func unknownResource(resource extmem.Resource) error {
	return errors.Newf("resource %T does not belong to a vulkan device", resource)
}
