package extmem

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// SelectMemoryType returns the lowest memory type index that is permitted by both resourceBits and
// kindBits and is host-visible. When no memory type qualifies, the error is marked with
// ErrResourceExhausted.
func SelectMemoryType(types []core1_0.MemoryType, resourceBits, kindBits uint32) (int, error) {
	memoryTypeBits := resourceBits & kindBits

	for memTypeIndex := 0; memTypeIndex < len(types) && memTypeIndex < 32; memTypeIndex++ {
		memTypeBit := uint32(1) << memTypeIndex
		if memTypeBit&memoryTypeBits == 0 {
			continue
		}

		if types[memTypeIndex].PropertyFlags&core1_0.MemoryPropertyHostVisible == 0 {
			continue
		}

		return memTypeIndex, nil
	}

	return -1, errors.Mark(
		errors.Newf("no host-visible memory type among resource bits %#x and handle kind bits %#x", resourceBits, kindBits),
		ErrResourceExhausted,
	)
}

// IsHostNonCoherent reports whether writes to a mapping of the memory type must be flushed
func IsHostNonCoherent(memoryType core1_0.MemoryType) bool {
	flags := memoryType.PropertyFlags
	return flags&(core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent) == core1_0.MemoryPropertyHostVisible
}
