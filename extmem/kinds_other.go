//go:build !unix && !windows

package extmem

var platformHandleKinds []HandleKind
