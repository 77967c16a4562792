package extmem

// Outcome is the result of a single phase of a case
type Outcome int

const (
	OutcomeNotRun Outcome = iota
	OutcomeSuccess
	OutcomeFailed
	OutcomeUnsupported
)

var outcomeMapping = map[Outcome]string{
	OutcomeNotRun:      "NotRun",
	OutcomeSuccess:     "Success",
	OutcomeFailed:      "Failed",
	OutcomeUnsupported: "Unsupported",
}

func (o Outcome) String() string {
	str, ok := outcomeMapping[o]
	if !ok {
		return "Unknown"
	}
	return str
}

// Phase identifies one of the four outcome slots of a Result
type Phase int

const (
	PhaseCreateAllocate Phase = iota
	PhaseExport
	PhaseImport
	PhaseDataCheck
)

// Phases lists every phase in protocol order
var Phases = []Phase{PhaseCreateAllocate, PhaseExport, PhaseImport, PhaseDataCheck}

var phaseMapping = map[Phase]string{
	PhaseCreateAllocate: "CreateAllocate",
	PhaseExport:         "Export",
	PhaseImport:         "Import",
	PhaseDataCheck:      "DataCheck",
}

func (p Phase) String() string {
	str, ok := phaseMapping[p]
	if !ok {
		return "Unknown"
	}
	return str
}

// Result is the record produced for one case
type Result struct {
	Name         string
	Kind         HandleKind
	Resource     ResourceKind
	Capabilities CapabilitySet
	Branch       Branch

	CreateAllocate Outcome
	Export         Outcome
	Import         Outcome
	DataCheck      Outcome

	Written Payload
	// Read is only meaningful when DataCheck ran
	Read Payload

	// LeakedAllocations is the number of device objects still alive after teardown that were
	// not alive before the case began. It is always 0 for devices that do not implement
	// AllocationCounter.
	LeakedAllocations int

	// Err is the first phase failure, if any
	Err error
}

// Outcome returns the outcome recorded for a phase
func (r *Result) Outcome(phase Phase) Outcome {
	switch phase {
	case PhaseCreateAllocate:
		return r.CreateAllocate
	case PhaseExport:
		return r.Export
	case PhaseImport:
		return r.Import
	case PhaseDataCheck:
		return r.DataCheck
	}
	return OutcomeNotRun
}

func (r *Result) setOutcome(phase Phase, outcome Outcome) {
	switch phase {
	case PhaseCreateAllocate:
		r.CreateAllocate = outcome
	case PhaseExport:
		r.Export = outcome
	case PhaseImport:
		r.Import = outcome
	case PhaseDataCheck:
		r.DataCheck = outcome
	}
}

// Passed reports whether no phase failed and nothing leaked
func (r *Result) Passed() bool {
	for _, phase := range Phases {
		if r.Outcome(phase) == OutcomeFailed {
			return false
		}
	}
	return r.LeakedAllocations == 0
}
