//go:build debug_extmem

package memutils

import "unsafe"

const (
	// GuardSize is the number of guard bytes placed after every software backing, so that a write
	// past the end of a mapping can be detected when the backing is released
	GuardSize int = 16
	// guardMagicValue is the 4-byte pattern repeated across the guard bytes
	guardMagicValue uint32 = 0x7F84E666
)

// WriteGuard writes the guard pattern across GuardSize bytes at the provided pointer and offset.
// This method no-ops unless the debug_extmem build tag is present.
func WriteGuard(data unsafe.Pointer, offset int) {
	dest := unsafe.Add(data, offset)
	guardWords := GuardSize / int(unsafe.Sizeof(uint32(0)))
	for i := 0; i < guardWords; i++ {
		*(*uint32)(dest) = guardMagicValue
		dest = unsafe.Add(dest, unsafe.Sizeof(uint32(0)))
	}
}

// ValidateGuard verifies that the pattern written by WriteGuard is still present.
// This method always returns true unless the debug_extmem build tag is present.
func ValidateGuard(data unsafe.Pointer, offset int) bool {
	source := unsafe.Add(data, offset)
	guardWords := GuardSize / int(unsafe.Sizeof(uint32(0)))
	for i := 0; i < guardWords; i++ {
		if *(*uint32)(source) != guardMagicValue {
			return false
		}
		source = unsafe.Add(source, unsafe.Sizeof(uint32(0)))
	}

	return true
}

// DebugValidate calls Validate on the provided object and panics if it returns an error.
// This method no-ops unless the debug_extmem build tag is present.
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}
