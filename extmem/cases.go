package extmem

import (
	"fmt"

	"github.com/vkngwrapper/core/v2/core1_0"
)

const (
	DefaultImageWidth  = 800
	DefaultImageHeight = 600
)

// DefaultBufferDescriptor is a vertex buffer with no sparse flags
func DefaultBufferDescriptor() BufferDescriptor {
	return BufferDescriptor{
		Usage: core1_0.BufferUsageVertexBuffer,
	}
}

// DefaultImageDescriptor is a single-level 2D RGBA8 sRGB image with linear tiling that can be
// sampled and copied into
func DefaultImageDescriptor() ImageDescriptor {
	return ImageDescriptor{
		Type:        core1_0.ImageType2D,
		Extent:      core1_0.Extent3D{Width: DefaultImageWidth, Height: DefaultImageHeight, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Format:      core1_0.FormatR8G8B8A8SRGB,
		Tiling:      core1_0.ImageTilingLinear,
		Usage:       core1_0.ImageUsageTransferDst | core1_0.ImageUsageSampled,
	}
}

// CaseName builds the conventional name for a case
func CaseName(resource ResourceKind, kind HandleKind) string {
	return fmt.Sprintf("%s/%s", resource, kind.Name())
}

// DefaultCases returns a buffer case followed by an image case for every handle kind this platform
// can carry
func DefaultCases() []Case {
	kinds := SupportedHandleKinds()
	cases := make([]Case, 0, len(kinds)*2)

	for _, kind := range kinds {
		cases = append(cases, Case{
			Name:       CaseName(ResourceBuffer, kind),
			Descriptor: DefaultBufferDescriptor(),
			Kind:       kind,
		})
	}

	for _, kind := range kinds {
		cases = append(cases, Case{
			Name:       CaseName(ResourceImage, kind),
			Descriptor: DefaultImageDescriptor(),
			Kind:       kind,
		})
	}

	return cases
}
