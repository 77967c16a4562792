package extmem

// Branch is the protocol a case follows, chosen from its capability set
type Branch int

const (
	// BranchSkip runs nothing past the capability query
	BranchSkip Branch = iota
	// BranchExportOnly allocates, writes and exports, but never imports
	BranchExportOnly
	// BranchRoundTrip exports, imports, verifies the payload and re-exports the imported memory
	BranchRoundTrip
	// BranchImportOnly imports a freshly mapped host pointer into a new resource and verifies
	// the payload
	BranchImportOnly
)

var branchMapping = map[Branch]string{
	BranchSkip:       "Skip",
	BranchExportOnly: "ExportOnly",
	BranchRoundTrip:  "RoundTrip",
	BranchImportOnly: "ImportOnly",
}

func (b Branch) String() string {
	str, ok := branchMapping[b]
	if !ok {
		return "Unknown"
	}
	return str
}

type capabilityRow struct {
	exportable             bool
	importable             bool
	exportableFromImported bool
}

type decision struct {
	branch Branch
	// hostPointerOnly branches fall back to BranchSkip for other handle families
	hostPointerOnly bool
}

// Every combination is listed, including ones no current driver reports. Exportable and
// importable memory that cannot be re-exported is skipped rather than run as a round trip.
var decisionTable = map[capabilityRow]decision{
	{exportable: false, importable: false, exportableFromImported: false}: {branch: BranchSkip},
	{exportable: false, importable: false, exportableFromImported: true}:  {branch: BranchSkip},
	{exportable: false, importable: true, exportableFromImported: false}:  {branch: BranchImportOnly, hostPointerOnly: true},
	{exportable: false, importable: true, exportableFromImported: true}:   {branch: BranchSkip},
	{exportable: true, importable: false, exportableFromImported: false}:  {branch: BranchExportOnly},
	{exportable: true, importable: false, exportableFromImported: true}:   {branch: BranchExportOnly},
	{exportable: true, importable: true, exportableFromImported: false}:   {branch: BranchSkip},
	{exportable: true, importable: true, exportableFromImported: true}:    {branch: BranchRoundTrip},
}

// ChooseBranch selects the protocol for a case from its capability set and handle family
func ChooseBranch(capabilities CapabilitySet, family HandleFamily) Branch {
	row := capabilityRow{
		exportable:             capabilities.Exportable(),
		importable:             capabilities.Importable(),
		exportableFromImported: capabilities.ExportableFromImported(),
	}

	d, ok := decisionTable[row]
	if !ok {
		return BranchSkip
	}

	if d.hostPointerOnly && family != HandleFamilyHostPointer {
		return BranchSkip
	}

	return d.branch
}
