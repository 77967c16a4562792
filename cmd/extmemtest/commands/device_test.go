package commands

import (
	"io"
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	mock_driver "github.com/vkngwrapper/core/v2/driver/mocks"
	"github.com/vkngwrapper/core/v2/mocks"
	"github.com/vkngwrapper/extmem/extmem/vulkan"
	"golang.org/x/exp/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loaderFunc(loader core.Loader) func() (core.Loader, error) {
	return func() (core.Loader, error) {
		return loader, nil
	}
}

func TestCreateVulkanApplication_LoaderFailure(t *testing.T) {
	var app *vulkanApplication
	var err error
	require.NotPanics(t, func() {
		app, err = createVulkanApplication(discardLogger(), func() (core.Loader, error) {
			return nil, errors.New("libvulkan.so.1 not found")
		})
	})

	require.Nil(t, app)
	require.EqualError(t, err, "loading vulkan: libvulkan.so.1 not found")
}

func TestCreateVulkanApplication_LoaderBelow1_1(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockLoader(ctrl)
	loader.EXPECT().APIVersion().Return(common.Vulkan1_0).AnyTimes()

	app, err := createVulkanApplication(discardLogger(), loaderFunc(loader))
	require.Nil(t, app)
	require.ErrorContains(t, err, "is below 1.1")
}

func TestCreateVulkanApplication_InstanceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockLoader(ctrl)
	loader.EXPECT().APIVersion().Return(common.Vulkan1_1).AnyTimes()
	loader.EXPECT().AvailableExtensions().Return(map[string]*core1_0.ExtensionProperties{}, core1_0.VKSuccess, nil)
	loader.EXPECT().CreateInstance(gomock.Nil(), gomock.Any()).
		Return(nil, core1_0.VKErrorInitializationFailed, core1_0.VKErrorInitializationFailed.ToError())

	var app *vulkanApplication
	var err error
	require.NotPanics(t, func() {
		app, err = createVulkanApplication(discardLogger(), loaderFunc(loader))
	})

	require.Nil(t, app)
	require.ErrorContains(t, err, "creating instance")
}

func TestCreateVulkanApplication_NoPhysicalDevicesDestroysInstance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	instance := mocks.NewMockInstance(ctrl)

	loader := mocks.NewMockLoader(ctrl)
	loader.EXPECT().APIVersion().Return(common.Vulkan1_1).AnyTimes()
	loader.EXPECT().AvailableExtensions().Return(map[string]*core1_0.ExtensionProperties{}, core1_0.VKSuccess, nil)
	loader.EXPECT().CreateInstance(gomock.Nil(), gomock.Any()).DoAndReturn(
		func(callbacks *driver.AllocationCallbacks, options core1_0.InstanceCreateInfo) (core1_0.Instance, common.VkResult, error) {
			require.Equal(t, common.Vulkan1_1, options.APIVersion)
			require.Empty(t, options.EnabledExtensionNames)
			require.Nil(t, options.Next)

			return instance, core1_0.VKSuccess, nil
		})

	gomock.InOrder(
		instance.EXPECT().EnumeratePhysicalDevices().Return([]core1_0.PhysicalDevice{}, core1_0.VKSuccess, nil),
		instance.EXPECT().Destroy(gomock.Nil()),
	)

	app, err := createVulkanApplication(discardLogger(), loaderFunc(loader))
	require.Nil(t, app)
	require.EqualError(t, err, "no vulkan physical devices are present")
}

func TestVulkanCreateOptions_Bridge(t *testing.T) {
	testCases := map[string]struct {
		fdActive bool
		bridge   vulkan.HandleBridge
	}{
		"DescriptorBridgeWithMemoryFd": {
			fdActive: true,
			bridge:   &vulkan.DescriptorBridge{},
		},
		"UnsupportedWithoutMemoryFd": {
			fdActive: false,
			bridge:   vulkan.UnsupportedBridge{},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			coreDriver := mock_driver.DriverForVersion(ctrl, common.Vulkan1_1)
			coreDriver.EXPECT().LoadProcAddr(gomock.Any()).Return(unsafe.Pointer(nil)).AnyTimes()

			device := mocks.EasyMockDevice(ctrl, coreDriver)
			device.EXPECT().IsDeviceExtensionActive("VK_KHR_external_memory_fd").Return(testCase.fdActive)

			options := vulkanCreateOptions(device)
			require.IsType(t, testCase.bridge, options.Bridge)
		})
	}
}
