package extmem

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// ExternalHandle is an exported reference to device memory. It carries exactly one raw value,
// chosen by the family of its kind: a file descriptor, an OS handle, or a host pointer. The byte
// size is recorded explicitly since none of the raw values carry it.
//
// Descriptor and OS handles are single-use: once an import has been attempted with them they
// cannot be imported again. Until a successful import transfers ownership to the device, the
// harness is responsible for releasing the handle.
type ExternalHandle struct {
	kind HandleKind
	size int

	fd       int
	osHandle uintptr
	pointer  unsafe.Pointer

	consumed    bool
	transferred bool
}

// NewDescriptorHandle wraps a file descriptor exported with a kind from HandleFamilyDescriptor
func NewDescriptorHandle(kind HandleKind, fd int, size int) (*ExternalHandle, error) {
	if kind.Family() != HandleFamilyDescriptor {
		return nil, errors.Newf("handle kind %s does not carry a file descriptor", kind)
	}
	if fd < 0 {
		return nil, errors.Newf("invalid file descriptor %d", fd)
	}

	return &ExternalHandle{kind: kind, size: size, fd: fd}, nil
}

// NewOSHandle wraps an OS handle or name exported with a kind from HandleFamilyOSHandle
func NewOSHandle(kind HandleKind, handle uintptr, size int) (*ExternalHandle, error) {
	if kind.Family() != HandleFamilyOSHandle {
		return nil, errors.Newf("handle kind %s does not carry an OS handle", kind)
	}

	return &ExternalHandle{kind: kind, size: size, fd: -1, osHandle: handle}, nil
}

// NewHostPointerHandle wraps a mapped host address for a kind from HandleFamilyHostPointer
func NewHostPointerHandle(kind HandleKind, pointer unsafe.Pointer, size int) (*ExternalHandle, error) {
	if kind.Family() != HandleFamilyHostPointer {
		return nil, errors.Newf("handle kind %s does not carry a host pointer", kind)
	}
	if pointer == nil {
		return nil, errors.New("host pointer handle cannot wrap a nil pointer")
	}

	return &ExternalHandle{kind: kind, size: size, fd: -1, pointer: pointer}, nil
}

func (h *ExternalHandle) Kind() HandleKind     { return h.kind }
func (h *ExternalHandle) Family() HandleFamily { return h.kind.Family() }
func (h *ExternalHandle) Size() int            { return h.size }

// FD returns the file descriptor carried by the handle, if it is a descriptor handle
func (h *ExternalHandle) FD() (int, bool) {
	return h.fd, h.Family() == HandleFamilyDescriptor
}

// OSHandle returns the OS handle carried by the handle, if it is an OS handle
func (h *ExternalHandle) OSHandle() (uintptr, bool) {
	return h.osHandle, h.Family() == HandleFamilyOSHandle
}

// Pointer returns the host address carried by the handle, if it is a host pointer handle
func (h *ExternalHandle) Pointer() (unsafe.Pointer, bool) {
	return h.pointer, h.Family() == HandleFamilyHostPointer
}

// SingleUse reports whether the handle may only be passed to one import
func (h *ExternalHandle) SingleUse() bool {
	return h.Family() != HandleFamilyHostPointer
}

// Consumed reports whether an import has already been attempted with a single-use handle
func (h *ExternalHandle) Consumed() bool {
	return h.consumed
}

// MarkConsumed records an import attempt. It fails with ErrHandleConsumed if the handle is
// single-use and has already been imported.
func (h *ExternalHandle) MarkConsumed() error {
	if !h.SingleUse() {
		return nil
	}

	if h.consumed {
		return errors.Wrapf(ErrHandleConsumed, "%s handle", h.kind.Name())
	}
	h.consumed = true
	return nil
}

// TransferOwnership records that a successful import handed the raw value to the device
func (h *ExternalHandle) TransferOwnership() {
	h.transferred = true
}

// Owned reports whether the caller is still responsible for releasing the raw value. Host
// pointers are never owned: they belong to the mapping that produced them.
func (h *ExternalHandle) Owned() bool {
	return h.SingleUse() && !h.transferred
}
