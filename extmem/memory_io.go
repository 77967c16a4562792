package extmem

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

func (h *Harness) mappedBytes(memory Memory) ([]byte, error) {
	if memory.Size() < PayloadSize {
		return nil, errors.Mark(
			errors.Newf("memory of %d bytes cannot hold a %d byte payload", memory.Size(), PayloadSize),
			ErrHarnessFatal,
		)
	}

	ptr, err := h.device.MapMemory(memory)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "mapping memory"), ErrHarnessFatal)
	}
	if ptr == nil {
		h.device.UnmapMemory(memory)
		return nil, errors.Mark(errors.New("device mapped memory to a nil pointer"), ErrHarnessFatal)
	}

	return unsafe.Slice((*byte)(ptr), PayloadSize), nil
}

func (h *Harness) writeMemory(memory Memory, payload Payload) error {
	h.logger.Debug("Harness::WriteMemory")

	data, err := h.mappedBytes(memory)
	if err != nil {
		return err
	}
	defer h.device.UnmapMemory(memory)

	copy(data, payload.Encode())

	if h.isHostNonCoherent(memory) {
		err = h.device.FlushMemory(memory)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "flushing written payload"), ErrHarnessFatal)
		}
	}

	return nil
}

func (h *Harness) readMemory(memory Memory) (Payload, error) {
	h.logger.Debug("Harness::ReadMemory")

	data, err := h.mappedBytes(memory)
	if err != nil {
		return Payload{}, err
	}
	defer h.device.UnmapMemory(memory)

	return DecodePayload(data)
}

func (h *Harness) isHostNonCoherent(memory Memory) bool {
	types := h.device.MemoryTypes()
	index := memory.MemoryTypeIndex()
	if index < 0 || index >= len(types) {
		return false
	}

	return IsHostNonCoherent(types[index])
}
