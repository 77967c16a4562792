//go:build !debug_extmem

package memutils

import "unsafe"

const (
	// GuardSize is the number of guard bytes placed after every software backing, so that a write
	// past the end of a mapping can be detected when the backing is released
	GuardSize int = 0
)

// WriteGuard writes the guard pattern across GuardSize bytes at the provided pointer and offset.
// This method no-ops unless the debug_extmem build tag is present.
func WriteGuard(data unsafe.Pointer, offset int) {
}

// ValidateGuard verifies that the pattern written by WriteGuard is still present.
// This method always returns true unless the debug_extmem build tag is present.
func ValidateGuard(data unsafe.Pointer, offset int) bool {
	return true
}

// DebugValidate calls Validate on the provided object and panics if it returns an error.
// This method no-ops unless the debug_extmem build tag is present.
func DebugValidate(validatable Validatable) {
}
