//go:build android

package extmem

var platformHandleKinds = []HandleKind{HandleKindOpaqueFD, HandleKindDmaBuf, HandleKindAndroidHardwareBuffer}
