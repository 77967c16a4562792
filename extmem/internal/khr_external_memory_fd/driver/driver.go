package khr_external_memory_fd_driver

/*
#include <stdlib.h>
#include "../external_memory_fd.h"

VkResult cgoGetMemoryFdKHR(PFN_vkGetMemoryFdKHR fn, VkDevice device, VkMemoryGetFdInfoKHR *pGetFdInfo, int *pFd) {
	return fn(device, pGetFdInfo, pFd);
}

VkResult cgoGetMemoryFdPropertiesKHR(PFN_vkGetMemoryFdPropertiesKHR fn, VkDevice device, VkExternalMemoryHandleTypeFlagBits handleType, int fd, VkMemoryFdPropertiesKHR *pMemoryFdProperties) {
	return fn(device, handleType, fd, pMemoryFdProperties);
}
*/
import "C"
import (
	"unsafe"

	"github.com/CannibalVox/cgoparam"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/driver"
)

//go:generate mockgen -source driver.go -destination ../mocks/driver.go -package mock_external_memory_fd

type Driver interface {
	VkGetMemoryFdKHR(device driver.VkDevice, pGetFdInfo *VkMemoryGetFdInfoKHR, pFd *driver.Int32) (common.VkResult, error)
	VkGetMemoryFdPropertiesKHR(device driver.VkDevice, handleType VkExternalMemoryHandleTypeFlagBits, fd driver.Int32, pMemoryFdProperties *VkMemoryFdPropertiesKHR) (common.VkResult, error)
}

type VkExternalMemoryHandleTypeFlagBits C.VkExternalMemoryHandleTypeFlagBits
type VkImportMemoryFdInfoKHR C.VkImportMemoryFdInfoKHR
type VkMemoryFdPropertiesKHR C.VkMemoryFdPropertiesKHR
type VkMemoryGetFdInfoKHR C.VkMemoryGetFdInfoKHR

type CDriver struct {
	coreDriver driver.Driver

	getMemoryFd           C.PFN_vkGetMemoryFdKHR
	getMemoryFdProperties C.PFN_vkGetMemoryFdPropertiesKHR
}

func CreateDriverFromCore(coreDriver driver.Driver) *CDriver {
	arena := cgoparam.GetAlloc()
	defer cgoparam.ReturnAlloc(arena)

	return &CDriver{
		coreDriver: coreDriver,

		getMemoryFd:           (C.PFN_vkGetMemoryFdKHR)(coreDriver.LoadProcAddr((*driver.Char)(arena.CString("vkGetMemoryFdKHR")))),
		getMemoryFdProperties: (C.PFN_vkGetMemoryFdPropertiesKHR)(coreDriver.LoadProcAddr((*driver.Char)(arena.CString("vkGetMemoryFdPropertiesKHR")))),
	}
}

func (d *CDriver) VkGetMemoryFdKHR(device driver.VkDevice, pGetFdInfo *VkMemoryGetFdInfoKHR, pFd *driver.Int32) (common.VkResult, error) {
	if d.getMemoryFd == nil {
		panic("attempt to call extension method vkGetMemoryFdKHR when extension not present")
	}

	res := common.VkResult(C.cgoGetMemoryFdKHR(d.getMemoryFd,
		C.VkDevice(unsafe.Pointer(device)),
		(*C.VkMemoryGetFdInfoKHR)(pGetFdInfo),
		(*C.int)(unsafe.Pointer(pFd))))
	return res, res.ToError()
}

func (d *CDriver) VkGetMemoryFdPropertiesKHR(device driver.VkDevice, handleType VkExternalMemoryHandleTypeFlagBits, fd driver.Int32, pMemoryFdProperties *VkMemoryFdPropertiesKHR) (common.VkResult, error) {
	if d.getMemoryFdProperties == nil {
		panic("attempt to call extension method vkGetMemoryFdPropertiesKHR when extension not present")
	}

	res := common.VkResult(C.cgoGetMemoryFdPropertiesKHR(d.getMemoryFdProperties,
		C.VkDevice(unsafe.Pointer(device)),
		C.VkExternalMemoryHandleTypeFlagBits(handleType),
		C.int(fd),
		(*C.VkMemoryFdPropertiesKHR)(pMemoryFdProperties)))
	return res, res.ToError()
}
