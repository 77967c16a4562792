package extmem

import (
	"github.com/cockroachdb/errors"
)

func (h *Harness) queryCapabilities(descriptor ResourceDescriptor, kind HandleKind) (CapabilitySet, error) {
	h.logger.Debug("Harness::QueryCapabilities")

	switch d := descriptor.(type) {
	case BufferDescriptor:
		return h.device.BufferCapabilities(d, kind)
	case ImageDescriptor:
		return h.device.ImageCapabilities(d, kind)
	}

	return 0, errors.Newf("unknown resource descriptor type %T", descriptor)
}
