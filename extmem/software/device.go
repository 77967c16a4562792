package software

import (
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/memutils"
	"golang.org/x/exp/slog"
)

const (
	firstFD       = 1000
	firstOSHandle = 0x4000
	texelSize     = 4
)

// Device is an in-process device that implements extmem.Device. Memory lives in Go byte slices
// that exported handles and host pointer imports share, so a round trip through a software
// Device observes the same bytes the way a real driver's would. Memory types that are host-visible
// but not coherent are mapped through a shadow copy that only reaches the shared bytes on flush.
type Device struct {
	logger *slog.Logger
	config Config
	lock   sync.Mutex

	nextID       uint64
	nextFD       int
	nextOSHandle uintptr

	resources *swiss.Map[uint64, *resource]
	memories  *swiss.Map[uint64, *memory]
	handles   *swiss.Map[handleKey, *exportedHandle]
	mappings  *swiss.Map[uintptr, *memory]

	calls []Operation
}

var _ extmem.Device = &Device{}
var _ extmem.AllocationCounter = &Device{}

// New creates a software Device from a Config, usually one derived from DefaultConfig
func New(logger *slog.Logger, config Config) (*Device, error) {
	if len(config.MemoryTypes) == 0 || len(config.MemoryTypes) > 32 {
		return nil, errors.Newf("software device requires between 1 and 32 memory types, but %d were provided", len(config.MemoryTypes))
	}

	err := memutils.CheckPow2(config.Limits.NonCoherentAtomSize, "NonCoherentAtomSize")
	if err != nil {
		return nil, err
	}
	if config.Limits.MinImportedHostPointerAlignment < 1 {
		config.Limits.MinImportedHostPointerAlignment = 1
	}
	err = memutils.CheckPow2(config.Limits.MinImportedHostPointerAlignment, "MinImportedHostPointerAlignment")
	if err != nil {
		return nil, err
	}

	if config.BufferAlignment < 1 {
		config.BufferAlignment = 1
	}
	if config.ImageAlignment < 1 {
		config.ImageAlignment = 1
	}
	err = memutils.CheckPow2(config.BufferAlignment, "BufferAlignment")
	if err != nil {
		return nil, err
	}
	err = memutils.CheckPow2(config.ImageAlignment, "ImageAlignment")
	if err != nil {
		return nil, err
	}

	return &Device{
		logger:       logger,
		config:       config,
		nextID:       1,
		nextFD:       firstFD,
		nextOSHandle: firstOSHandle,

		resources: swiss.NewMap[uint64, *resource](16),
		memories:  swiss.NewMap[uint64, *memory](16),
		handles:   swiss.NewMap[handleKey, *exportedHandle](8),
		mappings:  swiss.NewMap[uintptr, *memory](8),
	}, nil
}

func (d *Device) call(op Operation) error {
	d.calls = append(d.calls, op)
	err := d.config.Faults[op]
	if err != nil {
		return errors.Wrapf(err, "injected %s fault", op)
	}
	return nil
}

// Calls returns every operation called on the device so far, in order
func (d *Device) Calls() []Operation {
	d.lock.Lock()
	defer d.lock.Unlock()

	return append([]Operation(nil), d.calls...)
}

// ResetCalls clears the call log
func (d *Device) ResetCalls() {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.calls = nil
}

// SetFault makes every later call to op fail with err, or stops failing it if err is nil
func (d *Device) SetFault(op Operation, err error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.config.Faults == nil {
		d.config.Faults = make(map[Operation]error)
	}
	if err == nil {
		delete(d.config.Faults, op)
		return
	}
	d.config.Faults[op] = err
}

// Statistics counts the objects the device currently holds
func (d *Device) Statistics() memutils.Statistics {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.statistics()
}

func (d *Device) statistics() memutils.Statistics {
	stats := memutils.Statistics{
		ResourceCount:   d.resources.Count(),
		AllocationCount: d.memories.Count(),
		HandleCount:     d.handles.Count(),
	}
	d.memories.Iter(func(_ uint64, m *memory) bool {
		stats.AllocationBytes += m.size
		if m.mapped {
			stats.MappingCount++
		}
		return false
	})
	return stats
}

// LiveAllocations is the number of resources, allocations, handles and mappings that have not
// been released
func (d *Device) LiveAllocations() int {
	stats := d.Statistics()
	return stats.LiveObjects()
}

// Validate checks that every shared backing is referenced exactly as many times as it has owners
func (d *Device) Validate() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.validate()
}

// lockedDevice validates a Device whose lock is already held
type lockedDevice struct {
	*Device
}

func (d lockedDevice) Validate() error {
	return d.validate()
}

func (d *Device) validate() error {
	owners := make(map[*backing]int)
	d.memories.Iter(func(_ uint64, m *memory) bool {
		owners[m.backing]++
		return false
	})
	d.handles.Iter(func(_ handleKey, h *exportedHandle) bool {
		owners[h.backing]++
		return false
	})

	for b, count := range owners {
		if b.refs != count {
			return errors.Newf("backing of %d bytes has %d references but %d owners", b.size, b.refs, count)
		}
	}

	return nil
}

func (d *Device) allMemoryTypeBits() uint32 {
	if len(d.config.MemoryTypes) == 32 {
		return ^uint32(0)
	}
	return uint32(1)<<len(d.config.MemoryTypes) - 1
}

func (d *Device) validMemoryType(index int) error {
	if index < 0 || index >= len(d.config.MemoryTypes) {
		return errors.Newf("memory type index %d is out of range", index)
	}
	return nil
}

func (d *Device) lookupResource(r extmem.Resource) (*resource, error) {
	res, ok := r.(*resource)
	if !ok || res == nil {
		return nil, errors.Newf("resource %T does not belong to a software device", r)
	}
	if _, live := d.resources.Get(res.id); !live {
		return nil, errors.Newf("resource %d is not live", res.id)
	}
	return res, nil
}

func (d *Device) lookupMemory(m extmem.Memory) (*memory, error) {
	mem, ok := m.(*memory)
	if !ok || mem == nil {
		return nil, errors.Newf("memory %T does not belong to a software device", m)
	}
	if _, live := d.memories.Get(mem.id); !live {
		return nil, errors.Newf("memory %d is not live", mem.id)
	}
	return mem, nil
}

func (d *Device) Limits() extmem.Limits {
	return d.config.Limits
}

func (d *Device) MemoryTypes() []core1_0.MemoryType {
	return d.config.MemoryTypes
}

func (d *Device) BufferCapabilities(descriptor extmem.BufferDescriptor, kind extmem.HandleKind) (extmem.CapabilitySet, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::BufferCapabilities")
	err := d.call(OpBufferCapabilities)
	if err != nil {
		return 0, err
	}

	return d.config.BufferCapabilities[kind], nil
}

func (d *Device) ImageCapabilities(descriptor extmem.ImageDescriptor, kind extmem.HandleKind) (extmem.CapabilitySet, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::ImageCapabilities")
	err := d.call(OpImageCapabilities)
	if err != nil {
		return 0, err
	}

	for _, unsupported := range d.config.UnsupportedImageKinds {
		if unsupported == kind {
			return 0, errors.Wrapf(core1_0.VKErrorFormatNotSupported.ToError(), "%s images with %s handles", descriptor.Format, kind.Name())
		}
	}

	return d.config.ImageCapabilities[kind], nil
}

func (d *Device) createResource(kind extmem.ResourceKind, size int, alignment int, external extmem.HandleKind) extmem.Resource {
	memoryTypeBits := d.config.ResourceMemoryTypeBits
	if memoryTypeBits == 0 {
		memoryTypeBits = d.allMemoryTypeBits()
	}

	res := &resource{
		id:       d.nextID,
		kind:     kind,
		external: external,
		reqs: extmem.MemoryRequirements{
			Size:              memutils.AlignUp(size, uint(alignment)),
			Alignment:         alignment,
			MemoryTypeBits:    memoryTypeBits,
			RequiresDedicated: d.config.RequireDedicated,
			PrefersDedicated:  d.config.RequireDedicated,
		},
	}
	d.nextID++
	d.resources.Put(res.id, res)

	return res
}

func (d *Device) CreateBuffer(descriptor extmem.BufferDescriptor, size int, kind extmem.HandleKind) (extmem.Resource, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::CreateBuffer")
	err := d.call(OpCreateBuffer)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		return nil, errors.Newf("buffer size must be positive, but was %d", size)
	}
	if descriptor.Usage == 0 {
		return nil, errors.New("buffer usage must not be empty")
	}

	return d.createResource(extmem.ResourceBuffer, size, d.config.BufferAlignment, kind), nil
}

func (d *Device) CreateImage(descriptor extmem.ImageDescriptor, kind extmem.HandleKind) (extmem.Resource, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::CreateImage")
	err := d.call(OpCreateImage)
	if err != nil {
		return nil, err
	}

	extent := descriptor.Extent
	if extent.Width <= 0 || extent.Height <= 0 || extent.Depth <= 0 {
		return nil, errors.Newf("image extent %dx%dx%d must not be empty", extent.Width, extent.Height, extent.Depth)
	}
	if descriptor.MipLevels < 1 || descriptor.ArrayLayers < 1 {
		return nil, errors.New("images require at least one mip level and one array layer")
	}

	// Every format is treated as four bytes per texel
	size := 0
	width, height, depth := extent.Width, extent.Height, extent.Depth
	for level := 0; level < descriptor.MipLevels; level++ {
		size += width * height * depth * texelSize
		width = halveExtent(width)
		height = halveExtent(height)
		depth = halveExtent(depth)
	}
	size *= descriptor.ArrayLayers

	return d.createResource(extmem.ResourceImage, size, d.config.ImageAlignment, kind), nil
}

func halveExtent(extent int) int {
	if extent <= 1 {
		return 1
	}
	return extent / 2
}

func (d *Device) MemoryRequirements(r extmem.Resource) (extmem.MemoryRequirements, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	err := d.call(OpMemoryRequirements)
	if err != nil {
		return extmem.MemoryRequirements{}, err
	}

	res, err := d.lookupResource(r)
	if err != nil {
		return extmem.MemoryRequirements{}, err
	}

	return res.reqs, nil
}

func (d *Device) ExportMemoryTypeBits(kind extmem.HandleKind) uint32 {
	bits, ok := d.config.ExportMemoryTypeBits[kind]
	if !ok {
		return d.allMemoryTypeBits()
	}
	return bits
}

func (d *Device) newMemory(b *backing, size, typeIndex int, kind extmem.HandleKind, dedicated *resource) *memory {
	flags := d.config.MemoryTypes[typeIndex].PropertyFlags
	mem := &memory{
		id:         d.nextID,
		backing:    b,
		size:       size,
		typeIndex:  typeIndex,
		exportKind: kind,
		dedicated:  dedicated,
		coherent:   flags&core1_0.MemoryPropertyHostCoherent != 0,
	}
	d.nextID++
	d.memories.Put(mem.id, mem)
	return mem
}

func (d *Device) dedicatedResource(request extmem.AllocationRequest) (*resource, error) {
	if request.Dedicated == nil {
		return nil, nil
	}

	return d.lookupResource(request.Dedicated)
}

func (d *Device) AllocateMemory(request extmem.AllocationRequest) (extmem.Memory, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::AllocateMemory")
	err := d.call(OpAllocateMemory)
	if err != nil {
		return nil, err
	}

	err = d.validMemoryType(request.MemoryTypeIndex)
	if err != nil {
		return nil, err
	}
	if request.Size <= 0 {
		return nil, errors.Newf("allocation size must be positive, but was %d", request.Size)
	}

	if request.Kind != 0 {
		typeBit := uint32(1) << request.MemoryTypeIndex
		if d.ExportMemoryTypeBits(request.Kind)&typeBit == 0 {
			return nil, errors.Newf("memory type %d cannot be exported as %s", request.MemoryTypeIndex, request.Kind.Name())
		}
	}

	dedicated, err := d.dedicatedResource(request)
	if err != nil {
		return nil, err
	}
	if dedicated == nil && request.Kind != 0 && d.config.RequireDedicated {
		return nil, errors.Newf("exportable %s memory requires a dedicated allocation", request.Kind.Name())
	}

	return d.newMemory(newBacking(request.Size), request.Size, request.MemoryTypeIndex, request.Kind, dedicated), nil
}

func (d *Device) ImportMemoryTypeBits(handle *extmem.ExternalHandle) (uint32, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	err := d.call(OpImportMemoryTypeBits)
	if err != nil {
		return 0, err
	}

	bits, ok := d.config.ImportMemoryTypeBits[handle.Kind()]
	if !ok {
		return d.allMemoryTypeBits(), nil
	}
	return bits, nil
}

// importedBacking finds the storage a handle refers to. On success, the caller owns one reference
// to the returned backing.
func (d *Device) importedBacking(handle *extmem.ExternalHandle, size int) (*backing, error) {
	if ptr, ok := handle.Pointer(); ok {
		source, mapped := d.mappings.Get(uintptr(ptr))
		if !mapped {
			return nil, errors.Newf("host pointer %p is not the start of a mapping", ptr)
		}

		alignment := d.config.Limits.MinImportedHostPointerAlignment
		if size%alignment != 0 {
			return nil, errors.Newf("host pointer import size %d is not a multiple of %d", size, alignment)
		}
		if size > source.size {
			return nil, errors.Newf("host pointer import of %d bytes exceeds the %d byte mapping", size, source.size)
		}

		source.backing.acquire()
		return source.backing, nil
	}

	key := handleKey{family: handle.Family()}
	if fd, ok := handle.FD(); ok {
		key.value = uintptr(fd)
	} else if osHandle, ok := handle.OSHandle(); ok {
		key.value = osHandle
	}

	exported, ok := d.handles.Get(key)
	if !ok {
		return nil, errors.Newf("%s handle %#x was not exported by this device", handle.Kind().Name(), key.value)
	}
	if exported.kind != handle.Kind() {
		return nil, errors.Newf("handle was exported as %s, but imported as %s", exported.kind.Name(), handle.Kind().Name())
	}
	if size > exported.size {
		return nil, errors.Newf("import of %d bytes exceeds the %d byte export", size, exported.size)
	}

	// A successful import takes over the handle's reference
	d.handles.Delete(key)
	return exported.backing, nil
}

func (d *Device) ImportMemory(handle *extmem.ExternalHandle, request extmem.AllocationRequest) (extmem.Memory, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::ImportMemory")
	err := d.call(OpImportMemory)
	if err != nil {
		return nil, err
	}

	if handle == nil {
		return nil, errors.New("cannot import a nil handle")
	}
	err = d.validMemoryType(request.MemoryTypeIndex)
	if err != nil {
		return nil, err
	}
	if request.Size <= 0 {
		return nil, errors.Newf("import size must be positive, but was %d", request.Size)
	}

	bits, ok := d.config.ImportMemoryTypeBits[handle.Kind()]
	if !ok {
		bits = d.allMemoryTypeBits()
	}
	if bits&(uint32(1)<<request.MemoryTypeIndex) == 0 {
		return nil, errors.Newf("memory type %d cannot import %s handles", request.MemoryTypeIndex, handle.Kind().Name())
	}

	dedicated, err := d.dedicatedResource(request)
	if err != nil {
		return nil, err
	}
	if dedicated != nil && handle.Family() == extmem.HandleFamilyHostPointer {
		return nil, errors.New("host pointer imports cannot be dedicated allocations")
	}

	b, err := d.importedBacking(handle, request.Size)
	if err != nil {
		return nil, err
	}

	if d.config.CorruptImports {
		corrupted := newBacking(b.size)
		for i := 0; i < b.size; i++ {
			corrupted.data[i] = ^b.data[i]
		}
		err = b.release()
		if err != nil {
			d.logger.Error("releasing shared backing", slog.Any("error", err))
		}
		b = corrupted
	}

	mem := d.newMemory(b, request.Size, request.MemoryTypeIndex, handle.Kind(), dedicated)
	mem.imported = true
	memutils.DebugValidate(lockedDevice{d})

	return mem, nil
}

func (d *Device) BindMemory(r extmem.Resource, m extmem.Memory) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::BindMemory")
	err := d.call(OpBindMemory)
	if err != nil {
		return err
	}

	res, err := d.lookupResource(r)
	if err != nil {
		return err
	}
	mem, err := d.lookupMemory(m)
	if err != nil {
		return err
	}

	if res.bound != nil {
		return errors.Newf("resource %d is already bound", res.id)
	}
	if mem.dedicated != nil && mem.dedicated != res {
		return errors.Newf("memory %d is dedicated to another resource", mem.id)
	}
	if res.reqs.MemoryTypeBits&(uint32(1)<<mem.typeIndex) == 0 {
		return errors.Newf("resource %d cannot be bound to memory type %d", res.id, mem.typeIndex)
	}
	if mem.size < res.reqs.Size {
		return errors.Newf("memory of %d bytes is too small for a resource requiring %d", mem.size, res.reqs.Size)
	}
	if res.external != 0 && mem.exportKind != 0 && res.external != mem.exportKind {
		return errors.Newf("resource created for %s handles cannot be bound to %s memory", res.external.Name(), mem.exportKind.Name())
	}

	res.bound = mem
	return nil
}

func (d *Device) ExportMemory(m extmem.Memory, kind extmem.HandleKind) (*extmem.ExternalHandle, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::ExportMemory")
	err := d.call(OpExportMemory)
	if err != nil {
		return nil, err
	}

	mem, err := d.lookupMemory(m)
	if err != nil {
		return nil, err
	}
	if mem.exportKind != kind {
		return nil, errors.Newf("memory %d was not allocated as exportable with %s", mem.id, kind.Name())
	}

	var handle *extmem.ExternalHandle
	key := handleKey{family: kind.Family()}
	switch kind.Family() {
	case extmem.HandleFamilyDescriptor:
		key.value = uintptr(d.nextFD)
		handle, err = extmem.NewDescriptorHandle(kind, d.nextFD, mem.size)
		d.nextFD++
	case extmem.HandleFamilyOSHandle:
		key.value = d.nextOSHandle
		handle, err = extmem.NewOSHandle(kind, d.nextOSHandle, mem.size)
		d.nextOSHandle += 4
	default:
		return nil, errors.Mark(errors.Newf("%s handles are exported by mapping memory", kind.Name()), extmem.ErrUnsupported)
	}
	if err != nil {
		return nil, err
	}

	mem.backing.acquire()
	d.handles.Put(key, &exportedHandle{kind: kind, backing: mem.backing, size: mem.size})
	return handle, nil
}

func (d *Device) ReleaseHandle(handle *extmem.ExternalHandle) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::ReleaseHandle")
	err := d.call(OpReleaseHandle)
	if err != nil {
		return err
	}

	key := handleKey{family: handle.Family()}
	if fd, ok := handle.FD(); ok {
		key.value = uintptr(fd)
	} else if osHandle, ok := handle.OSHandle(); ok {
		key.value = osHandle
	} else {
		return errors.Newf("%s handles are not released", handle.Kind().Name())
	}

	exported, ok := d.handles.Get(key)
	if !ok {
		return errors.Newf("%s handle %#x is not open", handle.Kind().Name(), key.value)
	}
	d.handles.Delete(key)

	return exported.backing.release()
}

func (d *Device) MapMemory(m extmem.Memory) (unsafe.Pointer, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::MapMemory")
	err := d.call(OpMapMemory)
	if err != nil {
		return nil, err
	}

	mem, err := d.lookupMemory(m)
	if err != nil {
		return nil, err
	}
	if d.config.MemoryTypes[mem.typeIndex].PropertyFlags&core1_0.MemoryPropertyHostVisible == 0 {
		return nil, errors.Newf("memory type %d is not host-visible", mem.typeIndex)
	}
	if mem.mapped {
		return nil, errors.Newf("memory %d is already mapped", mem.id)
	}

	if mem.coherent {
		mem.mapping = mem.backing.data[:mem.size]
	} else {
		mem.mapping = make([]byte, mem.size)
		copy(mem.mapping, mem.backing.data[:mem.size])
	}
	mem.mapped = true

	// Memory sharing a coherent backing maps to the same address, and the first mapping keeps it
	_, aliased := d.mappings.Get(mem.mappedAddress())
	if !aliased {
		d.mappings.Put(mem.mappedAddress(), mem)
	}

	return unsafe.Pointer(&mem.mapping[0]), nil
}

func (d *Device) FlushMemory(m extmem.Memory) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::FlushMemory")
	err := d.call(OpFlushMemory)
	if err != nil {
		return err
	}

	mem, err := d.lookupMemory(m)
	if err != nil {
		return err
	}
	if !mem.mapped {
		return errors.Newf("memory %d is not mapped", mem.id)
	}

	if !mem.coherent && !d.config.DropFlushes {
		copy(mem.backing.data[:mem.size], mem.mapping)
	}
	return nil
}

func (d *Device) unmap(mem *memory) {
	if !mem.mapped {
		return
	}

	address := mem.mappedAddress()
	mem.mapping = nil
	mem.mapped = false

	owner, ok := d.mappings.Get(address)
	if !ok || owner != mem {
		return
	}
	d.mappings.Delete(address)

	d.memories.Iter(func(_ uint64, other *memory) bool {
		if other.mapped && other.mappedAddress() == address {
			d.mappings.Put(address, other)
			return true
		}
		return false
	})
}

func (d *Device) UnmapMemory(m extmem.Memory) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::UnmapMemory")
	_ = d.call(OpUnmapMemory)

	mem, err := d.lookupMemory(m)
	if err != nil {
		d.logger.Error("unmapping memory", slog.Any("error", err))
		return
	}
	if !mem.mapped {
		d.logger.Error("unmapping memory that is not mapped", slog.Uint64("memory", mem.id))
		return
	}

	d.unmap(mem)
}

func (d *Device) WaitIdle() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::WaitIdle")
	return d.call(OpWaitIdle)
}

func (d *Device) DestroyResource(r extmem.Resource) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::DestroyResource")
	_ = d.call(OpDestroyResource)

	res, err := d.lookupResource(r)
	if err != nil {
		d.logger.Error("destroying resource", slog.Any("error", err))
		return
	}

	d.resources.Delete(res.id)
	res.bound = nil
}

func (d *Device) FreeMemory(m extmem.Memory) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.logger.Debug("SoftwareDevice::FreeMemory")
	_ = d.call(OpFreeMemory)

	mem, err := d.lookupMemory(m)
	if err != nil {
		d.logger.Error("freeing memory", slog.Any("error", err))
		return
	}

	// Freeing memory implicitly unmaps it
	d.unmap(mem)
	d.memories.Delete(mem.id)

	err = mem.backing.release()
	if err != nil {
		d.logger.Error("releasing memory backing", slog.Any("error", err))
	}
	memutils.DebugValidate(lockedDevice{d})
}
