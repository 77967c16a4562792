package software

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/memutils"
)

// backing is the physical storage shared by every memory object and handle that refers to it
type backing struct {
	data []byte
	size int
	refs int
}

func newBacking(size int) *backing {
	b := &backing{
		data: make([]byte, size+memutils.GuardSize),
		size: size,
		refs: 1,
	}
	memutils.WriteGuard(unsafe.Pointer(&b.data[0]), size)
	return b
}

func (b *backing) acquire() {
	b.refs++
}

func (b *backing) release() error {
	if b.refs <= 0 {
		return errors.New("backing released more times than it was acquired")
	}

	b.refs--
	if b.refs == 0 && !memutils.ValidateGuard(unsafe.Pointer(&b.data[0]), b.size) {
		return errors.New("memory was written past the end of its allocation")
	}
	return nil
}

type resource struct {
	id       uint64
	kind     extmem.ResourceKind
	external extmem.HandleKind
	reqs     extmem.MemoryRequirements
	bound    *memory
}

func (r *resource) ResourceKind() extmem.ResourceKind {
	return r.kind
}

type memory struct {
	id        uint64
	backing   *backing
	size      int
	typeIndex int

	// exportKind is the kind the memory was allocated or imported with
	exportKind extmem.HandleKind
	imported   bool
	dedicated  *resource

	coherent bool
	mapped   bool
	mapping  []byte
}

func (m *memory) Size() int {
	return m.size
}

func (m *memory) MemoryTypeIndex() int {
	return m.typeIndex
}

func (m *memory) mappedAddress() uintptr {
	return uintptr(unsafe.Pointer(&m.mapping[0]))
}

type handleKey struct {
	family extmem.HandleFamily
	value  uintptr
}

type exportedHandle struct {
	kind    extmem.HandleKind
	backing *backing
	size    int
}
