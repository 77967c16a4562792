package extmem

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// Case is one (resource shape, handle kind) combination to validate
type Case struct {
	Name       string
	Descriptor ResourceDescriptor
	Kind       HandleKind
}

// Options configures a Harness
type Options struct {
	// Payload is written through the exporting resource. When nil, DefaultPayload is used.
	Payload *Payload
}

// Harness runs cases against a single device, one at a time. A Harness is not safe for
// concurrent use.
type Harness struct {
	logger  *slog.Logger
	device  Device
	payload Payload
}

// New creates a Harness that validates device
func New(logger *slog.Logger, device Device, options Options) *Harness {
	payload := DefaultPayload
	if options.Payload != nil {
		payload = *options.Payload
	}

	return &Harness{
		logger:  logger,
		device:  device,
		payload: payload,
	}
}

// Payload returns the payload written by every case
func (h *Harness) Payload() Payload {
	return h.payload
}

// Run executes cases in order. It stops at the first fatal error, returning the results gathered
// so far, including the result of the case that failed fatally.
func (h *Harness) Run(cases []Case) ([]Result, error) {
	results := make([]Result, 0, len(cases))

	for _, c := range cases {
		result, err := h.RunCase(c)
		results = append(results, result)
		if err != nil {
			return results, errors.Wrapf(err, "case %s", c.Name)
		}
	}

	return results, nil
}

// RunCase executes a single case and always releases everything the case acquired before
// returning. Phase failures are recorded in the Result; the returned error is only non-nil for
// fatal conditions that should abort the run.
func (h *Harness) RunCase(c Case) (Result, error) {
	logger := h.logger.With(
		slog.String("case", c.Name),
		slog.String("handle_kind", c.Kind.Name()),
	)
	logger.Debug("Harness::RunCase")

	result := Result{
		Name:    c.Name,
		Kind:    c.Kind,
		Written: h.payload,
	}
	if c.Descriptor == nil {
		result.Err = errors.New("case has no resource descriptor")
		logger.Error("case could not be run", slog.Any("error", result.Err))
		return result, nil
	}
	result.Resource = c.Descriptor.ResourceKind()

	baseline, countLive := h.liveAllocations()

	capabilities, err := h.queryCapabilities(c.Descriptor, c.Kind)
	if err != nil {
		result.Err = errors.Wrap(err, "querying capabilities")
		logger.Warn("combination is not supported", slog.Any("error", err))
		return result, nil
	}
	result.Capabilities = capabilities
	result.Branch = ChooseBranch(capabilities, c.Kind.Family())
	logger.Debug("Harness::RunCase",
		slog.String("capabilities", capabilities.String()),
		slog.String("branch", result.Branch.String()),
	)

	if result.Branch == BranchSkip {
		return result, nil
	}

	scope := newCleanupScope(logger, h.device)
	runErr := h.runBranch(logger, scope, c, &result)

	err = scope.close()
	if err != nil {
		logger.Error("teardown did not complete cleanly", slog.Any("error", err))
	}

	if countLive {
		after, _ := h.liveAllocations()
		result.LeakedAllocations = after - baseline
		if result.LeakedAllocations != 0 {
			logger.Error("device objects leaked", slog.Int("count", result.LeakedAllocations))
		}
	}

	return result, runErr
}

func (h *Harness) liveAllocations() (int, bool) {
	counter, ok := h.device.(AllocationCounter)
	if !ok {
		return 0, false
	}
	return counter.LiveAllocations(), true
}

// fail records err against phase and returns it if it must abort the run
func (h *Harness) fail(logger *slog.Logger, result *Result, phase Phase, err error) error {
	outcome := OutcomeFailed
	if errors.Is(err, ErrUnsupported) {
		outcome = OutcomeUnsupported
	}
	result.setOutcome(phase, outcome)
	if result.Err == nil {
		result.Err = err
	}

	logger.Error("phase failed",
		slog.String("phase", phase.String()),
		slog.String("outcome", outcome.String()),
		slog.Any("error", err),
	)

	if IsFatal(err) {
		return err
	}
	return nil
}

// fatal records an error that did not belong to any phase
func (h *Harness) fatal(logger *slog.Logger, result *Result, err error) error {
	if result.Err == nil {
		result.Err = err
	}
	logger.Error("harness failure", slog.Any("error", err))
	return err
}

func (h *Harness) runBranch(logger *slog.Logger, scope *cleanupScope, c Case, result *Result) error {
	switch result.Branch {
	case BranchExportOnly:
		return h.runExportOnly(logger, scope, c, result)
	case BranchRoundTrip:
		return h.runRoundTrip(logger, scope, c, result)
	case BranchImportOnly:
		return h.runImportOnly(logger, scope, c, result)
	}
	return nil
}

func (h *Harness) runExportOnly(logger *slog.Logger, scope *cleanupScope, c Case, result *Result) error {
	exporter, err := h.createAllocate(scope, "exporter", c, result.Capabilities, c.Kind)
	if err != nil {
		return h.fail(logger, result, PhaseCreateAllocate, err)
	}
	result.CreateAllocate = OutcomeSuccess

	err = h.writeMemory(exporter.memory, h.payload)
	if err != nil {
		return h.fatal(logger, result, err)
	}

	_, err = h.export(scope, "exporter", exporter, c.Kind)
	if err != nil {
		return h.fail(logger, result, PhaseExport, err)
	}
	result.Export = OutcomeSuccess

	return nil
}

func (h *Harness) runRoundTrip(logger *slog.Logger, scope *cleanupScope, c Case, result *Result) error {
	exporter, err := h.createAllocate(scope, "exporter", c, result.Capabilities, c.Kind)
	if err != nil {
		return h.fail(logger, result, PhaseCreateAllocate, err)
	}
	result.CreateAllocate = OutcomeSuccess

	err = h.writeMemory(exporter.memory, h.payload)
	if err != nil {
		return h.fatal(logger, result, err)
	}

	handle, err := h.export(scope, "exporter", exporter, c.Kind)
	if err != nil {
		return h.fail(logger, result, PhaseExport, err)
	}
	result.Export = OutcomeSuccess

	importer, err := h.importHandle(scope, c, result.Capabilities, handle)
	if err != nil {
		return h.fail(logger, result, PhaseImport, err)
	}
	result.Import = OutcomeSuccess

	err = h.checkData(logger, importer, result)
	if err != nil {
		return err
	}

	err = h.reexport(scope, importer, c.Kind)
	if err != nil {
		return h.fail(logger, result, PhaseExport, errors.Wrap(err, "re-exporting imported memory"))
	}

	return nil
}

func (h *Harness) runImportOnly(logger *slog.Logger, scope *cleanupScope, c Case, result *Result) error {
	source, err := h.createAllocate(scope, "source", c, result.Capabilities, 0)
	if err != nil {
		return h.fail(logger, result, PhaseCreateAllocate, err)
	}
	result.CreateAllocate = OutcomeSuccess

	err = h.writeMemory(source.memory, h.payload)
	if err != nil {
		return h.fatal(logger, result, err)
	}

	// The source memory is not exportable, so its mapping stands in for an exported pointer
	handle, err := h.export(scope, "source", source, c.Kind)
	if err != nil {
		return h.fatal(logger, result, errors.Mark(err, ErrHarnessFatal))
	}

	importer, err := h.importHandle(scope, c, result.Capabilities, handle)
	if err != nil {
		return h.fail(logger, result, PhaseImport, err)
	}
	result.Import = OutcomeSuccess

	return h.checkData(logger, importer, result)
}

func (h *Harness) checkData(logger *slog.Logger, importer *boundResource, result *Result) error {
	read, err := h.readMemory(importer.memory)
	if err != nil {
		return h.fatal(logger, result, err)
	}
	result.Read = read

	if read != h.payload {
		return h.fail(logger, result, PhaseDataCheck, errors.Newf("read %v, but wrote %v", read, h.payload))
	}
	result.DataCheck = OutcomeSuccess

	return nil
}
