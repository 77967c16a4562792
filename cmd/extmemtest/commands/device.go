package commands

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/vkngwrapper/core/v2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_get_memory_requirements2"
	"github.com/vkngwrapper/extensions/v2/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v2/khr_portability_subset"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/extmem/software"
	"github.com/vkngwrapper/extmem/extmem/vulkan"
	"golang.org/x/exp/slog"
)

// Platform handle extensions are enabled when present so that a HandleBridge can use them
var externalMemoryDeviceExtensions = []string{
	khr_external_memory.ExtensionName,
	khr_dedicated_allocation.ExtensionName,
	khr_get_memory_requirements2.ExtensionName,
	"VK_KHR_external_memory_fd",
	"VK_KHR_external_memory_win32",
	"VK_EXT_external_memory_dma_buf",
	"VK_EXT_external_memory_host",
	"VK_ANDROID_external_memory_android_hardware_buffer",
}

func openDevice(logger *slog.Logger, v *viper.Viper) (extmem.Device, func() error, error) {
	switch backend := v.GetString("backend"); backend {
	case "software":
		device, err := newSoftwareDevice(logger, v)
		if err != nil {
			return nil, nil, err
		}
		return device, device.Validate, nil
	case "vulkan":
		app, err := createVulkanApplication(logger, systemLoader)
		if err != nil {
			return nil, nil, err
		}

		device, err := vulkan.New(logger, app.instance, app.physicalDevice, app.device, vulkanCreateOptions(app.device))
		if err != nil {
			return nil, nil, errors.CombineErrors(err, app.destroy())
		}
		return device, app.destroy, nil
	default:
		return nil, nil, errors.Newf("unknown backend %q: expected software or vulkan", backend)
	}
}

// vulkanCreateOptions picks the handle bridge from the extensions active on device
func vulkanCreateOptions(device core1_0.Device) vulkan.CreateOptions {
	return vulkan.CreateOptions{
		Bridge: vulkan.BridgeForDevice(device),
	}
}

func newSoftwareDevice(logger *slog.Logger, v *viper.Viper) (*software.Device, error) {
	config := software.DefaultConfig()
	config.DropFlushes = v.GetBool("software.drop-flushes")
	config.CorruptImports = v.GetBool("software.corrupt-imports")
	config.RequireDedicated = v.GetBool("software.require-dedicated")

	atomSize := v.GetInt("software.non-coherent-atom-size")
	if atomSize > 0 {
		config.Limits.NonCoherentAtomSize = atomSize
	}

	return software.New(logger, config)
}

type vulkanApplication struct {
	logger         *slog.Logger
	instance       core1_0.Instance
	debugMessenger ext_debug_utils.DebugUtilsMessenger
	physicalDevice core1_0.PhysicalDevice
	device         core1_0.Device
}

func (a *vulkanApplication) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	a.logger.Warn("vulkan validation message",
		slog.String("severity", severity.String()),
		slog.String("type", msgType.String()),
		slog.String("message", data.Message),
	)
	return false
}

func systemLoader() (core.Loader, error) {
	return core.CreateSystemLoader()
}

// createVulkanApplication brings up an instance and device. On failure, whatever was already
// created is destroyed before the error is returned.
func createVulkanApplication(logger *slog.Logger, newLoader func() (core.Loader, error)) (*vulkanApplication, error) {
	runtime.LockOSThread()

	app := &vulkanApplication{logger: logger}
	err := app.create(newLoader)
	if err != nil {
		return nil, errors.CombineErrors(err, app.destroy())
	}

	return app, nil
}

func (a *vulkanApplication) create(newLoader func() (core.Loader, error)) error {
	loader, err := newLoader()
	if err != nil {
		return errors.Wrap(err, "loading vulkan")
	}

	if !loader.APIVersion().IsAtLeast(common.Vulkan1_1) {
		return errors.Newf("vulkan loader version %s is below 1.1, which is required for external memory capability queries", loader.APIVersion())
	}

	instanceExtensions, _, err := loader.AvailableExtensions()
	if err != nil {
		return errors.Wrap(err, "listing instance extensions")
	}

	var instanceExtensionNames []string
	var flags core1_0.InstanceCreateFlags
	var next common.NextOptions

	debugOptions := ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    a.logDebug,
	}

	_, debugUtils := instanceExtensions[ext_debug_utils.ExtensionName]
	if debugUtils {
		instanceExtensionNames = append(instanceExtensionNames, ext_debug_utils.ExtensionName)
		next.Next = debugOptions
	}

	_, ok := instanceExtensions[khr_portability_enumeration.ExtensionName]
	if ok {
		instanceExtensionNames = append(instanceExtensionNames, khr_portability_enumeration.ExtensionName)
		flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	instance, _, err := loader.CreateInstance(nil, core1_0.InstanceCreateInfo{
		ApplicationName:       "extmemtest",
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            "extmemtest",
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_1,
		EnabledExtensionNames: instanceExtensionNames,
		Flags:                 flags,
		NextOptions:           next,
	})
	if err != nil {
		return errors.Wrap(err, "creating instance")
	}
	a.instance = instance

	if debugUtils {
		debugLoader := ext_debug_utils.CreateExtensionFromInstance(a.instance)
		debugMessenger, _, err := debugLoader.CreateDebugUtilsMessenger(a.instance, nil, debugOptions)
		if err != nil {
			return errors.Wrap(err, "creating debug messenger")
		}
		a.debugMessenger = debugMessenger
	}

	gpus, _, err := a.instance.EnumeratePhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "enumerating physical devices")
	}
	if len(gpus) == 0 {
		return errors.New("no vulkan physical devices are present")
	}

	a.physicalDevice = gpus[0]

	graphicsFamily := -1
	queueProps := a.physicalDevice.QueueFamilyProperties()
	for queueIndex, queueFamily := range queueProps {
		if queueFamily.QueueFlags&core1_0.QueueGraphics != 0 {
			graphicsFamily = queueIndex
			break
		}
	}
	if graphicsFamily < 0 {
		return errors.New("the physical device has no graphics queue")
	}

	deviceExtensions, _, err := a.physicalDevice.EnumerateDeviceExtensionProperties()
	if err != nil {
		return errors.Wrap(err, "listing device extensions")
	}

	var deviceExtensionNames []string
	for _, extensionName := range append(externalMemoryDeviceExtensions, khr_portability_subset.ExtensionName) {
		_, ok = deviceExtensions[extensionName]
		if ok {
			deviceExtensionNames = append(deviceExtensionNames, extensionName)
		}
	}

	supportedFeatures := a.physicalDevice.Features()
	enabledFeatures := &core1_0.PhysicalDeviceFeatures{
		SparseBinding:          supportedFeatures.SparseBinding,
		SparseResidencyImage2D: supportedFeatures.SparseResidencyImage2D,
	}

	device, _, err := a.physicalDevice.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: graphicsFamily,
				QueuePriorities:  []float32{0.0},
			},
		},
		EnabledExtensionNames: deviceExtensionNames,
		EnabledFeatures:       enabledFeatures,
	})
	if err != nil {
		return errors.Wrap(err, "creating device")
	}
	a.device = device

	a.logger.Debug("extmemtest::createVulkanApplication",
		slog.Int("graphicsFamily", graphicsFamily),
		slog.Any("deviceExtensions", deviceExtensionNames),
	)

	return nil
}

func (a *vulkanApplication) destroy() error {
	defer runtime.UnlockOSThread()

	var err error
	if a.device != nil {
		_, err = a.device.WaitIdle()
		a.device.Destroy(nil)
		a.device = nil
	}
	if a.debugMessenger != nil {
		a.debugMessenger.Destroy(nil)
		a.debugMessenger = nil
	}
	if a.instance != nil {
		a.instance.Destroy(nil)
		a.instance = nil
	}

	return errors.Wrap(err, "waiting for device idle")
}
