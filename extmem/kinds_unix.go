//go:build unix && !linux && !android

package extmem

var platformHandleKinds = []HandleKind{HandleKindOpaqueFD}
