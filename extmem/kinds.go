package extmem

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

// HandleKind identifies the platform transport used to share device memory. The values are the
// VkExternalMemoryHandleTypeFlagBits they represent, so a HandleKind can be converted directly into
// a Vulkan handle type.
type HandleKind int32

var handleKindMapping = common.NewFlagStringMapping[HandleKind]()

func (k HandleKind) Register(str string) {
	handleKindMapping.Register(k, str)
}
func (k HandleKind) String() string {
	return handleKindMapping.FlagsToString(k)
}

const (
	HandleKindOpaqueFD HandleKind = 1 << iota
	HandleKindOpaqueWin32
	HandleKindOpaqueWin32KMT
	HandleKindD3D11Texture
	HandleKindD3D11TextureKMT
	HandleKindD3D12Heap
	HandleKindD3D12Resource
	HandleKindHostAllocation
	HandleKindHostMappedForeignMemory
	HandleKindDmaBuf
	HandleKindAndroidHardwareBuffer
)

// AllHandleKinds lists every kind the harness knows about, whether or not the current platform
// can carry it
var AllHandleKinds = []HandleKind{
	HandleKindOpaqueFD,
	HandleKindOpaqueWin32,
	HandleKindOpaqueWin32KMT,
	HandleKindD3D11Texture,
	HandleKindD3D11TextureKMT,
	HandleKindD3D12Heap,
	HandleKindD3D12Resource,
	HandleKindHostAllocation,
	HandleKindHostMappedForeignMemory,
	HandleKindDmaBuf,
	HandleKindAndroidHardwareBuffer,
}

var handleKindNames = map[HandleKind]string{
	HandleKindOpaqueFD:                "opaque-fd",
	HandleKindOpaqueWin32:             "opaque-win32",
	HandleKindOpaqueWin32KMT:          "opaque-win32-kmt",
	HandleKindD3D11Texture:            "d3d11-texture",
	HandleKindD3D11TextureKMT:         "d3d11-texture-kmt",
	HandleKindD3D12Heap:               "d3d12-heap",
	HandleKindD3D12Resource:           "d3d12-resource",
	HandleKindHostAllocation:          "host-allocation",
	HandleKindHostMappedForeignMemory: "host-mapped-foreign-memory",
	HandleKindDmaBuf:                  "dma-buf",
	HandleKindAndroidHardwareBuffer:   "android-hardware-buffer",
}

func init() {
	HandleKindOpaqueFD.Register("HandleKindOpaqueFD")
	HandleKindOpaqueWin32.Register("HandleKindOpaqueWin32")
	HandleKindOpaqueWin32KMT.Register("HandleKindOpaqueWin32KMT")
	HandleKindD3D11Texture.Register("HandleKindD3D11Texture")
	HandleKindD3D11TextureKMT.Register("HandleKindD3D11TextureKMT")
	HandleKindD3D12Heap.Register("HandleKindD3D12Heap")
	HandleKindD3D12Resource.Register("HandleKindD3D12Resource")
	HandleKindHostAllocation.Register("HandleKindHostAllocation")
	HandleKindHostMappedForeignMemory.Register("HandleKindHostMappedForeignMemory")
	HandleKindDmaBuf.Register("HandleKindDmaBuf")
	HandleKindAndroidHardwareBuffer.Register("HandleKindAndroidHardwareBuffer")
}

// Name returns the kebab-case name used in configuration files, reports and metrics labels
func (k HandleKind) Name() string {
	name, ok := handleKindNames[k]
	if !ok {
		return k.String()
	}
	return name
}

// ParseHandleKind converts a kebab-case handle kind name (as returned by Name) back into a HandleKind
func ParseHandleKind(name string) (HandleKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for kind, kindName := range handleKindNames {
		if kindName == normalized {
			return kind, nil
		}
	}

	return 0, errors.Newf("unknown handle kind %q", name)
}

// HandleFamily groups handle kinds by the shape of the raw value that carries them
type HandleFamily int

const (
	// HandleFamilyDescriptor handles are POSIX file descriptors
	HandleFamilyDescriptor HandleFamily = iota + 1
	// HandleFamilyOSHandle handles are Win32 HANDLE values or KMT names
	HandleFamilyOSHandle
	// HandleFamilyHostPointer handles are host virtual addresses
	HandleFamilyHostPointer
)

var handleFamilyMapping = map[HandleFamily]string{
	HandleFamilyDescriptor:  "Descriptor",
	HandleFamilyOSHandle:    "OSHandle",
	HandleFamilyHostPointer: "HostPointer",
}

func (f HandleFamily) String() string {
	str, ok := handleFamilyMapping[f]
	if !ok {
		return "Unknown"
	}
	return str
}

// Family reports which family the kind belongs to, or 0 if the value is not a single known kind
func (k HandleKind) Family() HandleFamily {
	switch k {
	case HandleKindOpaqueFD, HandleKindDmaBuf, HandleKindAndroidHardwareBuffer:
		return HandleFamilyDescriptor
	case HandleKindOpaqueWin32, HandleKindOpaqueWin32KMT,
		HandleKindD3D11Texture, HandleKindD3D11TextureKMT,
		HandleKindD3D12Heap, HandleKindD3D12Resource:
		return HandleFamilyOSHandle
	case HandleKindHostAllocation, HandleKindHostMappedForeignMemory:
		return HandleFamilyHostPointer
	}

	return 0
}

// SupportedHandleKinds returns the kinds whose raw values can be carried on the platform this
// binary was built for. Host pointer kinds are available everywhere.
func SupportedHandleKinds() []HandleKind {
	kinds := append([]HandleKind(nil), platformHandleKinds...)
	return append(kinds, HandleKindHostAllocation, HandleKindHostMappedForeignMemory)
}

// IsSupportedOnPlatform reports whether SupportedHandleKinds contains the kind
func (k HandleKind) IsSupportedOnPlatform() bool {
	for _, kind := range SupportedHandleKinds() {
		if kind == k {
			return true
		}
	}
	return false
}
