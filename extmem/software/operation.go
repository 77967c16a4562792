package software

// Operation names one method of the device surface, for the call log and fault injection
type Operation int

const (
	OpBufferCapabilities Operation = iota + 1
	OpImageCapabilities
	OpCreateBuffer
	OpCreateImage
	OpMemoryRequirements
	OpAllocateMemory
	OpImportMemoryTypeBits
	OpImportMemory
	OpBindMemory
	OpExportMemory
	OpReleaseHandle
	OpMapMemory
	OpFlushMemory
	OpUnmapMemory
	OpWaitIdle
	OpDestroyResource
	OpFreeMemory
)

var operationMapping = map[Operation]string{
	OpBufferCapabilities:   "BufferCapabilities",
	OpImageCapabilities:    "ImageCapabilities",
	OpCreateBuffer:         "CreateBuffer",
	OpCreateImage:          "CreateImage",
	OpMemoryRequirements:   "MemoryRequirements",
	OpAllocateMemory:       "AllocateMemory",
	OpImportMemoryTypeBits: "ImportMemoryTypeBits",
	OpImportMemory:         "ImportMemory",
	OpBindMemory:           "BindMemory",
	OpExportMemory:         "ExportMemory",
	OpReleaseHandle:        "ReleaseHandle",
	OpMapMemory:            "MapMemory",
	OpFlushMemory:          "FlushMemory",
	OpUnmapMemory:          "UnmapMemory",
	OpWaitIdle:             "WaitIdle",
	OpDestroyResource:      "DestroyResource",
	OpFreeMemory:           "FreeMemory",
}

func (o Operation) String() string {
	str, ok := operationMapping[o]
	if !ok {
		return "Unknown"
	}
	return str
}

// IsDestructive reports whether the operation releases a device object
func (o Operation) IsDestructive() bool {
	return o == OpDestroyResource || o == OpFreeMemory
}
