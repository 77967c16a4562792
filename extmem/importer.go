package extmem

import (
	"github.com/cockroachdb/errors"
)

// importHandle creates a second resource with the case's shape and backs it with memory imported
// from handle. A single-use handle is marked consumed before the import is attempted, so a failed
// import is never retried.
func (h *Harness) importHandle(scope *cleanupScope, c Case, capabilities CapabilitySet, handle *ExternalHandle) (*boundResource, error) {
	h.logger.Debug("Harness::Import")

	kindBits, err := h.device.ImportMemoryTypeBits(handle)
	if err != nil {
		return nil, errors.Wrap(err, "querying import memory types")
	}

	resource, err := h.createResource(c.Descriptor, handle.Kind())
	if err != nil {
		return nil, errors.Wrap(err, "creating importing resource")
	}

	bound := &boundResource{side: "importer", resource: resource, resourceLive: true}
	scope.trackResource(bound)

	reqs, err := h.device.MemoryRequirements(resource)
	if err != nil {
		return nil, errors.Wrap(err, "querying memory requirements")
	}
	if handle.Size() < reqs.Size {
		return nil, errors.Newf("handle covers %d bytes, but the importing resource requires %d", handle.Size(), reqs.Size)
	}

	memoryTypeIndex, err := SelectMemoryType(h.device.MemoryTypes(), reqs.MemoryTypeBits, kindBits)
	if err != nil {
		return nil, err
	}

	request := AllocationRequest{
		Kind:            handle.Kind(),
		MemoryTypeIndex: memoryTypeIndex,
		Size:            handle.Size(),
	}
	// Host pointer imports cannot be dedicated
	if handle.Family() != HandleFamilyHostPointer && wantsDedicated(reqs, capabilities) {
		request.Dedicated = resource
	}

	err = handle.MarkConsumed()
	if err != nil {
		return nil, err
	}

	memory, err := h.device.ImportMemory(handle, request)
	if err != nil {
		return nil, errors.Wrapf(err, "importing %s handle", handle.Kind().Name())
	}
	if handle.SingleUse() {
		handle.TransferOwnership()
	}
	bound.memory = memory
	bound.memoryLive = true

	err = h.device.BindMemory(resource, memory)
	if err != nil {
		return nil, errors.Wrap(err, "binding imported memory")
	}

	return bound, nil
}

// reexport exports memory that was itself imported. The handle is never imported again; it only
// has to be produced without error, and it is released during teardown.
func (h *Harness) reexport(scope *cleanupScope, imported *boundResource, kind HandleKind) error {
	h.logger.Debug("Harness::Reexport")

	_, err := h.export(scope, "re-export", imported, kind)
	return err
}
