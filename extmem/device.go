package extmem

//go:generate mockgen -source device.go -destination ../mocks/extmem_mocks.go -package mocks -mock_names Device=MockDevice,AllocationCounter=MockAllocationCounter,Resource=MockResource,Memory=MockMemory

import (
	"unsafe"

	"github.com/vkngwrapper/core/v2/core1_0"
)

// Resource is a backend-owned buffer or image
type Resource interface {
	ResourceKind() ResourceKind
}

// Memory is a backend-owned device memory allocation, either allocated fresh or imported
type Memory interface {
	Size() int
	MemoryTypeIndex() int
}

// Limits holds the device limits that shape the payload buffer
type Limits struct {
	NonCoherentAtomSize int
	// MinImportedHostPointerAlignment is 1 when host pointer import is not available
	MinImportedHostPointerAlignment int
}

// MemoryRequirements is what a device reports for a created resource
type MemoryRequirements struct {
	Size              int
	Alignment         int
	MemoryTypeBits    uint32
	RequiresDedicated bool
	PrefersDedicated  bool
}

// AllocationRequest describes a fresh allocation or an import
type AllocationRequest struct {
	// Kind is the handle kind the memory must be exportable with. Zero requests memory that
	// will never be exported.
	Kind            HandleKind
	MemoryTypeIndex int
	Size            int
	// Dedicated, when not nil, makes the allocation dedicated to this resource
	Dedicated Resource
}

// Device is the surface the harness consumes. Every call is synchronous, and the harness never
// calls it from more than one goroutine.
type Device interface {
	Limits() Limits
	MemoryTypes() []core1_0.MemoryType

	BufferCapabilities(descriptor BufferDescriptor, kind HandleKind) (CapabilitySet, error)
	ImageCapabilities(descriptor ImageDescriptor, kind HandleKind) (CapabilitySet, error)

	// CreateBuffer creates a buffer of size bytes that may be bound to memory external with kind.
	// A zero kind creates an ordinary buffer.
	CreateBuffer(descriptor BufferDescriptor, size int, kind HandleKind) (Resource, error)
	CreateImage(descriptor ImageDescriptor, kind HandleKind) (Resource, error)
	MemoryRequirements(resource Resource) (MemoryRequirements, error)

	// ExportMemoryTypeBits returns the memory types that can back memory exported with kind
	ExportMemoryTypeBits(kind HandleKind) uint32
	AllocateMemory(request AllocationRequest) (Memory, error)
	// ImportMemoryTypeBits returns the memory types the handle can be imported into
	ImportMemoryTypeBits(handle *ExternalHandle) (uint32, error)
	ImportMemory(handle *ExternalHandle, request AllocationRequest) (Memory, error)
	BindMemory(resource Resource, memory Memory) error

	// ExportMemory exports a descriptor or OS handle that refers to the memory
	ExportMemory(memory Memory, kind HandleKind) (*ExternalHandle, error)
	// ReleaseHandle closes a descriptor or OS handle that was never handed to the device
	ReleaseHandle(handle *ExternalHandle) error

	MapMemory(memory Memory) (unsafe.Pointer, error)
	FlushMemory(memory Memory) error
	UnmapMemory(memory Memory)

	WaitIdle() error
	DestroyResource(resource Resource)
	FreeMemory(memory Memory)
}

// AllocationCounter may be implemented by a Device to let the harness check every case for
// leaked resources and allocations
type AllocationCounter interface {
	LiveAllocations() int
}
