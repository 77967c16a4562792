package extmem

import (
	"github.com/cockroachdb/errors"
)

// export produces a handle for the memory bound to a resource. Host pointer kinds are exported by
// mapping the whole allocation, and the mapping stays live until teardown. Every other kind asks
// the device for a handle.
func (h *Harness) export(scope *cleanupScope, side string, bound *boundResource, kind HandleKind) (*ExternalHandle, error) {
	h.logger.Debug("Harness::Export")

	switch kind.Family() {
	case HandleFamilyHostPointer:
		ptr, err := h.device.MapMemory(bound.memory)
		if err != nil {
			return nil, errors.Wrap(err, "mapping memory for host pointer export")
		}
		bound.mapped = true
		scope.trackMapping(side, bound)

		return NewHostPointerHandle(kind, ptr, bound.memory.Size())
	case HandleFamilyDescriptor, HandleFamilyOSHandle:
		handle, err := h.device.ExportMemory(bound.memory, kind)
		if err != nil {
			return nil, errors.Wrapf(err, "exporting %s handle", kind.Name())
		}
		if handle == nil {
			return nil, errors.Newf("device returned no %s handle", kind.Name())
		}
		scope.trackHandle(side, handle)

		handle.size = bound.memory.Size()
		return handle, nil
	}

	return nil, errors.Newf("handle kind %s has no known family", kind)
}
