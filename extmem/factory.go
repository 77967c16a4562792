package extmem

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extmem/memutils"
)

// bufferSize is the payload padded up to the larger of the non-coherent atom size and the host
// pointer import alignment
func bufferSize(limits Limits) (int, error) {
	alignment := 1
	if limits.NonCoherentAtomSize > alignment {
		alignment = limits.NonCoherentAtomSize
	}
	if limits.MinImportedHostPointerAlignment > alignment {
		alignment = limits.MinImportedHostPointerAlignment
	}

	err := memutils.CheckPow2(alignment, "payload alignment")
	if err != nil {
		return 0, err
	}

	return memutils.AlignUp(PayloadSize, uint(alignment)), nil
}

func (h *Harness) createResource(descriptor ResourceDescriptor, kind HandleKind) (Resource, error) {
	switch d := descriptor.(type) {
	case BufferDescriptor:
		size, err := bufferSize(h.device.Limits())
		if err != nil {
			return nil, err
		}
		return h.device.CreateBuffer(d, size, kind)
	case ImageDescriptor:
		return h.device.CreateImage(d, kind)
	}

	return nil, errors.Newf("unknown resource descriptor type %T", descriptor)
}

func wantsDedicated(reqs MemoryRequirements, capabilities CapabilitySet) bool {
	return reqs.RequiresDedicated || reqs.PrefersDedicated || capabilities.DedicatedOnly()
}

// createAllocate creates the resource described by the case, allocates host-visible memory for it
// and binds the two. When exportKind is zero the memory is not exportable. Everything acquired is
// registered with the scope under side before the next step is attempted.
func (h *Harness) createAllocate(scope *cleanupScope, side string, c Case, capabilities CapabilitySet, exportKind HandleKind) (*boundResource, error) {
	h.logger.Debug("Harness::CreateAllocate")

	resource, err := h.createResource(c.Descriptor, exportKind)
	if err != nil {
		return nil, errors.Wrap(err, "creating resource")
	}

	bound := &boundResource{side: side, resource: resource, resourceLive: true}
	scope.trackResource(bound)

	reqs, err := h.device.MemoryRequirements(resource)
	if err != nil {
		return nil, errors.Wrap(err, "querying memory requirements")
	}

	kindBits := ^uint32(0)
	if exportKind != 0 {
		kindBits = h.device.ExportMemoryTypeBits(exportKind)
	}

	memoryTypeIndex, err := SelectMemoryType(h.device.MemoryTypes(), reqs.MemoryTypeBits, kindBits)
	if err != nil {
		return nil, err
	}

	size := reqs.Size
	if c.Kind.Family() == HandleFamilyHostPointer {
		alignment := h.device.Limits().MinImportedHostPointerAlignment
		if alignment > 1 {
			size = memutils.AlignUp(size, uint(alignment))
		}
	}

	request := AllocationRequest{
		Kind:            exportKind,
		MemoryTypeIndex: memoryTypeIndex,
		Size:            size,
	}
	if wantsDedicated(reqs, capabilities) {
		request.Dedicated = resource
	}

	memory, err := h.device.AllocateMemory(request)
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %d bytes of memory type %d", size, memoryTypeIndex)
	}
	bound.memory = memory
	bound.memoryLive = true

	err = h.device.BindMemory(resource, memory)
	if err != nil {
		return nil, errors.Wrap(err, "binding memory")
	}

	return bound, nil
}
