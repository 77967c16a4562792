package extmem

import "github.com/vkngwrapper/core/v2/common"

// CapabilitySet describes what a driver claims it can do with memory of a particular resource
// shape and handle kind. It is only meaningful for the exact descriptor and kind it was queried
// with, and should never be cached across cases.
type CapabilitySet int32

var capabilitySetMapping = common.NewFlagStringMapping[CapabilitySet]()

func (c CapabilitySet) Register(str string) {
	capabilitySetMapping.Register(c, str)
}
func (c CapabilitySet) String() string {
	return capabilitySetMapping.FlagsToString(c)
}

const (
	// CapabilityExportable indicates that memory allocated for the resource can produce a handle of the kind
	CapabilityExportable CapabilitySet = 1 << iota
	// CapabilityImportable indicates that a handle of the kind can be imported as memory for the resource
	CapabilityImportable
	// CapabilityExportableFromImported indicates that memory imported with the kind can itself be
	// exported again with the same kind
	CapabilityExportableFromImported
	// CapabilityDedicatedOnly indicates that external memory of this kind must be a dedicated
	// allocation for exactly one resource
	CapabilityDedicatedOnly
)

func init() {
	CapabilityExportable.Register("Exportable")
	CapabilityImportable.Register("Importable")
	CapabilityExportableFromImported.Register("ExportableFromImported")
	CapabilityDedicatedOnly.Register("DedicatedOnly")
}

func (c CapabilitySet) Exportable() bool             { return c&CapabilityExportable != 0 }
func (c CapabilitySet) Importable() bool             { return c&CapabilityImportable != 0 }
func (c CapabilitySet) ExportableFromImported() bool { return c&CapabilityExportableFromImported != 0 }
func (c CapabilitySet) DedicatedOnly() bool          { return c&CapabilityDedicatedOnly != 0 }
