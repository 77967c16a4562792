//go:build linux && !android

package extmem

var platformHandleKinds = []HandleKind{HandleKindOpaqueFD, HandleKindDmaBuf}
