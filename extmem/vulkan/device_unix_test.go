//go:build unix

package vulkan

import (
	"testing"
	"unsafe"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/mocks"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/extmem/extmem"
	mock_external_memory_fd "github.com/vkngwrapper/extmem/extmem/internal/khr_external_memory_fd/mocks"
	"golang.org/x/sys/unix"
)

func TestReleaseHandle_ClosesDescriptor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))
	defer unix.Close(fds[1])

	extension := mock_external_memory_fd.NewMockExtension(ctrl)
	setup := externalMemorySetup()
	setup.Options.Bridge = &DescriptorBridge{extension: extension}
	device, d := readyDevice(t, ctrl, setup)

	exported := mocks.EasyMockDeviceMemory(ctrl)
	device.EXPECT().AllocateMemory(gomock.Nil(), gomock.Any()).Return(exported, core1_0.VKSuccess, nil)
	source, err := d.AllocateMemory(extmem.AllocationRequest{
		Kind:            extmem.HandleKindOpaqueFD,
		MemoryTypeIndex: 0,
		Size:            4096,
	})
	require.NoError(t, err)

	extension.EXPECT().MemoryFd(device, exported, khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueFD).
		Return(fds[0], core1_0.VKSuccess, nil)

	handle, err := d.ExportMemory(source, extmem.HandleKindOpaqueFD)
	require.NoError(t, err)
	require.Equal(t, 1, d.Statistics().HandleCount)

	require.NoError(t, d.ReleaseHandle(handle))
	require.Equal(t, 0, d.Statistics().HandleCount)

	// Already closed by ReleaseHandle
	require.ErrorIs(t, unix.Close(fds[0]), unix.EBADF)
}

func TestReleaseHandle_HostPointerIsNotCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, d := readyDevice(t, ctrl, externalMemorySetup())

	buf := make([]byte, 64)
	handle, err := extmem.NewHostPointerHandle(extmem.HandleKindHostAllocation, unsafe.Pointer(&buf[0]), len(buf))
	require.NoError(t, err)

	require.Error(t, d.ReleaseHandle(handle))
	require.Equal(t, 0, d.Statistics().HandleCount)
}
