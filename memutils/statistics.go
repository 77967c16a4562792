package memutils

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// Statistics counts the device objects a backend currently holds on behalf of its callers
type Statistics struct {
	ResourceCount   int
	AllocationCount int
	AllocationBytes int
	HandleCount     int
	MappingCount    int
}

func (s *Statistics) Clear() {
	s.ResourceCount = 0
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.HandleCount = 0
	s.MappingCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ResourceCount += other.ResourceCount
	s.AllocationCount += other.AllocationCount
	s.AllocationBytes += other.AllocationBytes
	s.HandleCount += other.HandleCount
	s.MappingCount += other.MappingCount
}

// LiveObjects is the number of objects that must be released before the device is clean. Mappings
// are included, since an unreleased mapping keeps its memory pinned.
func (s *Statistics) LiveObjects() int {
	return s.ResourceCount + s.AllocationCount + s.HandleCount + s.MappingCount
}

func (s *Statistics) PrintJson(json *jwriter.ObjectState) {
	json.Name("ResourceCount").Int(s.ResourceCount)
	json.Name("AllocationCount").Int(s.AllocationCount)
	json.Name("AllocationBytes").Int(s.AllocationBytes)
	json.Name("HandleCount").Int(s.HandleCount)
	json.Name("MappingCount").Int(s.MappingCount)
}
