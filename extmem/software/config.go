package software

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extmem/extmem"
)

const (
	// MemoryTypeDeviceLocal is the index of the default configuration's device-only memory type
	MemoryTypeDeviceLocal = iota
	// MemoryTypeHostCoherent is the index of the default configuration's host-visible, coherent type
	MemoryTypeHostCoherent
	// MemoryTypeHostCached is the index of the default configuration's host-visible type that is
	// cached but not coherent
	MemoryTypeHostCached
)

// Config describes the device a software Device emulates
type Config struct {
	MemoryTypes []core1_0.MemoryType
	Limits      extmem.Limits

	// BufferCapabilities and ImageCapabilities hold the capability set reported for each handle
	// kind. A kind that is missing reports an empty set.
	BufferCapabilities map[extmem.HandleKind]extmem.CapabilitySet
	ImageCapabilities  map[extmem.HandleKind]extmem.CapabilitySet
	// UnsupportedImageKinds fail image capability queries outright, as a driver does for
	// formats it cannot share at all
	UnsupportedImageKinds []extmem.HandleKind

	// ResourceMemoryTypeBits restricts the memory types every resource may be bound to. Zero
	// permits every type.
	ResourceMemoryTypeBits uint32
	// ExportMemoryTypeBits and ImportMemoryTypeBits restrict the memory types per handle kind.
	// A kind that is missing permits every type.
	ExportMemoryTypeBits map[extmem.HandleKind]uint32
	ImportMemoryTypeBits map[extmem.HandleKind]uint32

	// RequireDedicated makes every resource report that it requires a dedicated allocation
	RequireDedicated bool
	// BufferAlignment and ImageAlignment are the reported memory requirement alignments
	BufferAlignment int
	ImageAlignment  int

	// Faults makes every call to an operation fail with the mapped error
	Faults map[Operation]error
	// CorruptImports gives imported memory a damaged private copy of the exported bytes instead of
	// sharing them
	CorruptImports bool
	// DropFlushes discards flushes, so writes to non-coherent memory never reach the backing
	DropFlushes bool
}

func fullCapabilities() map[extmem.HandleKind]extmem.CapabilitySet {
	capabilities := make(map[extmem.HandleKind]extmem.CapabilitySet)
	for _, kind := range extmem.AllHandleKinds {
		capabilities[kind] = extmem.CapabilityExportable | extmem.CapabilityImportable | extmem.CapabilityExportableFromImported
	}
	return capabilities
}

// DefaultConfig emulates a device with one device-local and two host-visible memory types that
// can round trip every handle kind with both buffers and images
func DefaultConfig() Config {
	return Config{
		MemoryTypes: []core1_0.MemoryType{
			{
				PropertyFlags: core1_0.MemoryPropertyDeviceLocal,
				HeapIndex:     0,
			},
			{
				PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent,
				HeapIndex:     1,
			},
			{
				PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCached,
				HeapIndex:     1,
			},
		},
		Limits: extmem.Limits{
			NonCoherentAtomSize:             64,
			MinImportedHostPointerAlignment: 4096,
		},
		BufferCapabilities: fullCapabilities(),
		ImageCapabilities:  fullCapabilities(),
		BufferAlignment:    256,
		ImageAlignment:     4096,
	}
}
