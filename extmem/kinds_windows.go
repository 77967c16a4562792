//go:build windows

package extmem

var platformHandleKinds = []HandleKind{
	HandleKindOpaqueWin32,
	HandleKindOpaqueWin32KMT,
	HandleKindD3D11Texture,
	HandleKindD3D11TextureKMT,
	HandleKindD3D12Heap,
	HandleKindD3D12Resource,
}
