package extmem

import (
	"github.com/vkngwrapper/core/v2/core1_0"
)

// ResourceKind distinguishes buffer and image resources
type ResourceKind int

const (
	ResourceBuffer ResourceKind = iota + 1
	ResourceImage
)

var resourceKindMapping = map[ResourceKind]string{
	ResourceBuffer: "Buffer",
	ResourceImage:  "Image",
}

func (k ResourceKind) String() string {
	str, ok := resourceKindMapping[k]
	if !ok {
		return "Unknown"
	}
	return str
}

// ResourceDescriptor is the immutable logical shape of the resource a case creates on both the
// exporting and the importing side. It is implemented by BufferDescriptor and ImageDescriptor only.
type ResourceDescriptor interface {
	ResourceKind() ResourceKind
	isResourceDescriptor()
}

// BufferDescriptor describes a buffer resource
type BufferDescriptor struct {
	Usage core1_0.BufferUsageFlags
	// Flags carries the sparse binding/residency/aliased bits
	Flags core1_0.BufferCreateFlags
}

func (d BufferDescriptor) ResourceKind() ResourceKind { return ResourceBuffer }
func (d BufferDescriptor) isResourceDescriptor()      {}

// ImageDescriptor describes an image resource
type ImageDescriptor struct {
	Type        core1_0.ImageType
	Extent      core1_0.Extent3D
	MipLevels   int
	ArrayLayers int
	Format      core1_0.Format
	Tiling      core1_0.ImageTiling
	Usage       core1_0.ImageUsageFlags
	// Flags carries both the sparse bits and the view capability bits (mutable format,
	// cube compatible, and so on)
	Flags core1_0.ImageCreateFlags
}

func (d ImageDescriptor) ResourceKind() ResourceKind { return ResourceImage }
func (d ImageDescriptor) isResourceDescriptor()      {}
