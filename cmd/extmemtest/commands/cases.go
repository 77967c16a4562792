package commands

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extmem/extmem"
)

// caseConfig is one entry of the "cases" list in the config file
type caseConfig struct {
	Name     string `mapstructure:"name"`
	Resource string `mapstructure:"resource"`
	Kind     string `mapstructure:"kind"`
	Sparse   bool   `mapstructure:"sparse"`

	// Image only
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	MipLevels   int    `mapstructure:"mip-levels"`
	ArrayLayers int    `mapstructure:"array-layers"`
	Tiling      string `mapstructure:"tiling"`
}

var tilingNames = map[string]core1_0.ImageTiling{
	"":        core1_0.ImageTilingLinear,
	"linear":  core1_0.ImageTilingLinear,
	"optimal": core1_0.ImageTilingOptimal,
}

func (c caseConfig) descriptor() (extmem.ResourceDescriptor, error) {
	switch strings.ToLower(c.Resource) {
	case "buffer":
		descriptor := extmem.DefaultBufferDescriptor()
		if c.Sparse {
			descriptor.Flags |= core1_0.BufferCreateSparseBinding
		}
		return descriptor, nil
	case "image":
		descriptor := extmem.DefaultImageDescriptor()
		if c.Width > 0 {
			descriptor.Extent.Width = c.Width
		}
		if c.Height > 0 {
			descriptor.Extent.Height = c.Height
		}
		if c.MipLevels > 0 {
			descriptor.MipLevels = c.MipLevels
		}
		if c.ArrayLayers > 0 {
			descriptor.ArrayLayers = c.ArrayLayers
		}

		tiling, ok := tilingNames[strings.ToLower(c.Tiling)]
		if !ok {
			return nil, errors.Newf("unknown image tiling %q", c.Tiling)
		}
		descriptor.Tiling = tiling

		if c.Sparse {
			descriptor.Flags |= core1_0.ImageCreateSparseBinding
		}
		return descriptor, nil
	}

	return nil, errors.Newf("unknown resource %q: expected buffer or image", c.Resource)
}

func buildCases(configs []caseConfig) ([]extmem.Case, error) {
	if len(configs) == 0 {
		return extmem.DefaultCases(), nil
	}

	cases := make([]extmem.Case, 0, len(configs))
	for index, config := range configs {
		kind, err := extmem.ParseHandleKind(config.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "case %d", index)
		}
		if !kind.IsSupportedOnPlatform() {
			return nil, errors.Newf("case %d: handle kind %s cannot be used on this platform", index, kind.Name())
		}

		descriptor, err := config.descriptor()
		if err != nil {
			return nil, errors.Wrapf(err, "case %d", index)
		}

		name := config.Name
		if name == "" {
			name = extmem.CaseName(descriptor.ResourceKind(), kind)
		}

		cases = append(cases, extmem.Case{
			Name:       name,
			Descriptor: descriptor,
			Kind:       kind,
		})
	}

	return cases, nil
}

func parsePayload(values []int) (extmem.Payload, error) {
	var payload extmem.Payload
	if len(values) != len(payload) {
		return payload, errors.Newf("payload must have exactly %d values, but %d were provided", len(payload), len(values))
	}

	for index, value := range values {
		if value < 0 || uint64(value) > math.MaxUint32 {
			return payload, errors.Newf("payload value %d is out of range for a 32-bit unsigned integer", value)
		}
		payload[index] = uint32(value)
	}

	return payload, nil
}
