package extmem_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/extmem/software"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createHarness(t *testing.T, config software.Config, options extmem.Options) (*extmem.Harness, *software.Device) {
	device, err := software.New(testLogger(), config)
	require.NoError(t, err)

	return extmem.New(testLogger(), device, options), device
}

func bufferCase(kind extmem.HandleKind) extmem.Case {
	return extmem.Case{
		Name:       extmem.CaseName(extmem.ResourceBuffer, kind),
		Descriptor: extmem.DefaultBufferDescriptor(),
		Kind:       kind,
	}
}

func imageCase(kind extmem.HandleKind) extmem.Case {
	return extmem.Case{
		Name:       extmem.CaseName(extmem.ResourceImage, kind),
		Descriptor: extmem.DefaultImageDescriptor(),
		Kind:       kind,
	}
}

func requireOutcomes(t *testing.T, result extmem.Result, createAllocate, export, imp, dataCheck extmem.Outcome) {
	require.Equal(t, createAllocate, result.CreateAllocate, "CreateAllocate")
	require.Equal(t, export, result.Export, "Export")
	require.Equal(t, imp, result.Import, "Import")
	require.Equal(t, dataCheck, result.DataCheck, "DataCheck")
}

func requireNoLeaks(t *testing.T, device *software.Device, results ...extmem.Result) {
	for _, result := range results {
		require.Zero(t, result.LeakedAllocations, result.Name)
	}
	require.Zero(t, device.LiveAllocations())
	require.NoError(t, device.Validate())
}

func countCalls(calls []software.Operation, op software.Operation) int {
	count := 0
	for _, call := range calls {
		if call == op {
			count++
		}
	}
	return count
}

func TestHostAllocationVertexBuffer(t *testing.T) {
	harness, device := createHarness(t, software.DefaultConfig(), extmem.Options{})

	result, err := harness.RunCase(bufferCase(extmem.HandleKindHostAllocation))
	require.NoError(t, err)

	require.Equal(t, "Buffer/host-allocation", result.Name)
	require.Equal(t, extmem.ResourceBuffer, result.Resource)
	require.Equal(t, extmem.BranchRoundTrip, result.Branch)
	requireOutcomes(t, result, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeSuccess)
	require.Equal(t, extmem.Payload{1, 2, 3}, result.Written)
	require.Equal(t, extmem.Payload{1, 2, 3}, result.Read)
	require.NoError(t, result.Err)
	require.True(t, result.Passed())

	// Host pointers are never handed to ReleaseHandle
	require.Zero(t, countCalls(device.Calls(), software.OpReleaseHandle))
	requireNoLeaks(t, device, result)
}

func TestRoundTrip_ReadsBackWhatWasWritten(t *testing.T) {
	payloads := []extmem.Payload{{0, 0, 0}, {1, 2, 3}, {0xffffffff, 0x80000000, 0x12345678}}
	kinds := []extmem.HandleKind{
		extmem.HandleKindOpaqueFD,
		extmem.HandleKindDmaBuf,
		extmem.HandleKindOpaqueWin32,
		extmem.HandleKindD3D12Resource,
		extmem.HandleKindHostAllocation,
		extmem.HandleKindHostMappedForeignMemory,
	}

	for _, payload := range payloads {
		payload := payload
		harness, device := createHarness(t, software.DefaultConfig(), extmem.Options{Payload: &payload})
		require.Equal(t, payload, harness.Payload())

		for _, kind := range kinds {
			for _, c := range []extmem.Case{bufferCase(kind), imageCase(kind)} {
				result, err := harness.RunCase(c)
				require.NoError(t, err)
				requireOutcomes(t, result, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeSuccess)
				require.Equal(t, payload, result.Read, c.Name)
				require.Zero(t, result.LeakedAllocations, c.Name)
			}
		}

		requireNoLeaks(t, device)
	}
}

func TestRoundTrip_DescriptorHandleIsReleasedByImport(t *testing.T) {
	harness, device := createHarness(t, software.DefaultConfig(), extmem.Options{})

	result, err := harness.RunCase(bufferCase(extmem.HandleKindOpaqueFD))
	require.NoError(t, err)
	require.True(t, result.Passed())

	// The first handle is owned by the imported memory; only the re-exported one is released
	calls := device.Calls()
	require.Equal(t, 2, countCalls(calls, software.OpExportMemory))
	require.Equal(t, 1, countCalls(calls, software.OpImportMemory))
	require.Equal(t, 1, countCalls(calls, software.OpReleaseHandle))
	requireNoLeaks(t, device, result)
}

func TestTeardown_WaitsOnceBeforeReleasing(t *testing.T) {
	harness, device := createHarness(t, software.DefaultConfig(), extmem.Options{})

	_, err := harness.RunCase(bufferCase(extmem.HandleKindDmaBuf))
	require.NoError(t, err)

	calls := device.Calls()
	require.Equal(t, 1, countCalls(calls, software.OpWaitIdle))

	waitIndex := -1
	for index, call := range calls {
		if call == software.OpWaitIdle {
			waitIndex = index
		}
		if call.IsDestructive() {
			require.GreaterOrEqual(t, waitIndex, 0, "%s before WaitIdle", call)
		}
	}

	require.Equal(t, 2, countCalls(calls, software.OpDestroyResource))
	require.Equal(t, 2, countCalls(calls, software.OpFreeMemory))
	// Importer is released before exporter
	require.Equal(t, []software.Operation{
		software.OpWaitIdle,
		software.OpReleaseHandle,
		software.OpDestroyResource,
		software.OpFreeMemory,
		software.OpDestroyResource,
		software.OpFreeMemory,
	}, calls[waitIndex:])
}

func TestExportOnly_NeverImports(t *testing.T) {
	config := software.DefaultConfig()
	config.BufferCapabilities[extmem.HandleKindOpaqueFD] = extmem.CapabilityExportable
	config.BufferCapabilities[extmem.HandleKindHostAllocation] = extmem.CapabilityExportable | extmem.CapabilityExportableFromImported
	harness, device := createHarness(t, config, extmem.Options{})

	for _, kind := range []extmem.HandleKind{extmem.HandleKindOpaqueFD, extmem.HandleKindHostAllocation} {
		device.ResetCalls()

		result, err := harness.RunCase(bufferCase(kind))
		require.NoError(t, err)
		require.Equal(t, extmem.BranchExportOnly, result.Branch)
		requireOutcomes(t, result, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeNotRun, extmem.OutcomeNotRun)
		require.True(t, result.Passed())

		calls := device.Calls()
		require.Zero(t, countCalls(calls, software.OpImportMemory))
		require.Zero(t, countCalls(calls, software.OpImportMemoryTypeBits))
		requireNoLeaks(t, device, result)
	}
}

func TestNoCapabilities_OnlyQueries(t *testing.T) {
	config := software.DefaultConfig()
	delete(config.BufferCapabilities, extmem.HandleKindOpaqueFD)
	config.BufferCapabilities[extmem.HandleKindDmaBuf] = extmem.CapabilityExportable | extmem.CapabilityImportable
	harness, device := createHarness(t, config, extmem.Options{})

	for _, kind := range []extmem.HandleKind{extmem.HandleKindOpaqueFD, extmem.HandleKindDmaBuf} {
		device.ResetCalls()

		result, err := harness.RunCase(bufferCase(kind))
		require.NoError(t, err)
		require.Equal(t, extmem.BranchSkip, result.Branch)
		requireOutcomes(t, result, extmem.OutcomeNotRun, extmem.OutcomeNotRun, extmem.OutcomeNotRun, extmem.OutcomeNotRun)
		require.Equal(t, []software.Operation{software.OpBufferCapabilities}, device.Calls())
	}
}

func TestCapabilityQueryError_LeavesEveryPhaseNotRun(t *testing.T) {
	config := software.DefaultConfig()
	config.UnsupportedImageKinds = []extmem.HandleKind{extmem.HandleKindOpaqueFD}
	harness, device := createHarness(t, config, extmem.Options{})

	result, err := harness.RunCase(imageCase(extmem.HandleKindOpaqueFD))
	require.NoError(t, err)
	requireOutcomes(t, result, extmem.OutcomeNotRun, extmem.OutcomeNotRun, extmem.OutcomeNotRun, extmem.OutcomeNotRun)
	require.Error(t, result.Err)
	require.Equal(t, []software.Operation{software.OpImageCapabilities}, device.Calls())
	require.True(t, result.Passed())
}

func TestMissingDescriptor(t *testing.T) {
	harness, device := createHarness(t, software.DefaultConfig(), extmem.Options{})

	result, err := harness.RunCase(extmem.Case{Name: "empty", Kind: extmem.HandleKindOpaqueFD})
	require.NoError(t, err)
	require.EqualError(t, result.Err, "case has no resource descriptor")
	require.Empty(t, device.Calls())
}

func TestImportOnly_HostPointer(t *testing.T) {
	config := software.DefaultConfig()
	config.BufferCapabilities[extmem.HandleKindHostAllocation] = extmem.CapabilityImportable
	config.BufferCapabilities[extmem.HandleKindOpaqueFD] = extmem.CapabilityImportable
	harness, device := createHarness(t, config, extmem.Options{})

	result, err := harness.RunCase(bufferCase(extmem.HandleKindHostAllocation))
	require.NoError(t, err)
	require.Equal(t, extmem.BranchImportOnly, result.Branch)
	requireOutcomes(t, result, extmem.OutcomeSuccess, extmem.OutcomeNotRun, extmem.OutcomeSuccess, extmem.OutcomeSuccess)
	require.Equal(t, result.Written, result.Read)
	require.Zero(t, countCalls(device.Calls(), software.OpExportMemory))
	requireNoLeaks(t, device, result)

	device.ResetCalls()
	result, err = harness.RunCase(bufferCase(extmem.HandleKindOpaqueFD))
	require.NoError(t, err)
	require.Equal(t, extmem.BranchSkip, result.Branch)
	require.Equal(t, []software.Operation{software.OpBufferCapabilities}, device.Calls())
}

func TestImportOnly_TeardownNamesTheSource(t *testing.T) {
	config := software.DefaultConfig()
	config.BufferCapabilities[extmem.HandleKindHostAllocation] = extmem.CapabilityImportable
	device, err := software.New(testLogger(), config)
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	harness := extmem.New(logger, device, extmem.Options{})

	result, err := harness.RunCase(bufferCase(extmem.HandleKindHostAllocation))
	require.NoError(t, err)
	require.Equal(t, extmem.BranchImportOnly, result.Branch)

	require.Contains(t, logs.String(), `release="source resource"`)
	require.Contains(t, logs.String(), `release="source mapping"`)
	require.Contains(t, logs.String(), `release="importer resource"`)
	require.NotContains(t, logs.String(), "exporter")
	requireNoLeaks(t, device, result)
}

func TestNonCoherentMemory_IsFlushed(t *testing.T) {
	config := software.DefaultConfig()
	config.Limits.NonCoherentAtomSize = 256
	config.Limits.MinImportedHostPointerAlignment = 0
	config.ResourceMemoryTypeBits = 1<<software.MemoryTypeDeviceLocal | 1<<software.MemoryTypeHostCached
	harness, device := createHarness(t, config, extmem.Options{})

	result, err := harness.RunCase(bufferCase(extmem.HandleKindOpaqueFD))
	require.NoError(t, err)
	require.True(t, result.Passed())
	require.Equal(t, 1, countCalls(device.Calls(), software.OpFlushMemory))
	requireNoLeaks(t, device, result)
}

func TestNonCoherentMemory_DroppedFlushLosesPayload(t *testing.T) {
	config := software.DefaultConfig()
	config.ResourceMemoryTypeBits = 1 << software.MemoryTypeHostCached
	config.DropFlushes = true
	harness, device := createHarness(t, config, extmem.Options{})

	result, err := harness.RunCase(bufferCase(extmem.HandleKindOpaqueFD))
	require.NoError(t, err)
	requireOutcomes(t, result, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeFailed)
	require.Equal(t, extmem.Payload{}, result.Read)
	require.False(t, result.Passed())
	requireNoLeaks(t, device, result)
}

func TestCorruptImports_FailDataCheck(t *testing.T) {
	config := software.DefaultConfig()
	config.CorruptImports = true
	harness, device := createHarness(t, config, extmem.Options{})

	for _, c := range []extmem.Case{bufferCase(extmem.HandleKindOpaqueFD), imageCase(extmem.HandleKindHostAllocation)} {
		result, err := harness.RunCase(c)
		require.NoError(t, err)
		requireOutcomes(t, result, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeSuccess, extmem.OutcomeFailed)
		require.NotEqual(t, result.Written, result.Read)
		require.Error(t, result.Err)
		requireNoLeaks(t, device, result)
	}
}

func TestRequireDedicated(t *testing.T) {
	config := software.DefaultConfig()
	config.RequireDedicated = true
	harness, device := createHarness(t, config, extmem.Options{})

	for _, kind := range []extmem.HandleKind{extmem.HandleKindOpaqueFD, extmem.HandleKindHostAllocation} {
		result, err := harness.RunCase(bufferCase(kind))
		require.NoError(t, err)
		require.True(t, result.Passed(), kind.Name())
		requireNoLeaks(t, device, result)
	}
}

var phaseFaultTestCases = map[string]struct {
	Kind  extmem.HandleKind
	Op    software.Operation
	Fault error

	CreateAllocate extmem.Outcome
	Export         extmem.Outcome
	Import         extmem.Outcome
}{
	"CreateBuffer": {
		Kind:           extmem.HandleKindOpaqueFD,
		Op:             software.OpCreateBuffer,
		CreateAllocate: extmem.OutcomeFailed,
	},
	"MemoryRequirements": {
		Kind:           extmem.HandleKindOpaqueFD,
		Op:             software.OpMemoryRequirements,
		CreateAllocate: extmem.OutcomeFailed,
	},
	"AllocateMemory": {
		Kind:           extmem.HandleKindOpaqueFD,
		Op:             software.OpAllocateMemory,
		CreateAllocate: extmem.OutcomeFailed,
	},
	"BindMemory": {
		Kind:           extmem.HandleKindDmaBuf,
		Op:             software.OpBindMemory,
		CreateAllocate: extmem.OutcomeFailed,
	},
	"ExportMemory": {
		Kind:           extmem.HandleKindOpaqueFD,
		Op:             software.OpExportMemory,
		CreateAllocate: extmem.OutcomeSuccess,
		Export:         extmem.OutcomeFailed,
	},
	"ExportMemoryUnsupported": {
		Kind:           extmem.HandleKindOpaqueWin32,
		Op:             software.OpExportMemory,
		Fault:          errors.Mark(errors.New("no bridge"), extmem.ErrUnsupported),
		CreateAllocate: extmem.OutcomeSuccess,
		Export:         extmem.OutcomeUnsupported,
	},
	"ImportMemoryTypeBits": {
		Kind:           extmem.HandleKindOpaqueFD,
		Op:             software.OpImportMemoryTypeBits,
		CreateAllocate: extmem.OutcomeSuccess,
		Export:         extmem.OutcomeSuccess,
		Import:         extmem.OutcomeFailed,
	},
	"ImportMemory": {
		Kind:           extmem.HandleKindOpaqueFD,
		Op:             software.OpImportMemory,
		CreateAllocate: extmem.OutcomeSuccess,
		Export:         extmem.OutcomeSuccess,
		Import:         extmem.OutcomeFailed,
	},
	"ImportHostPointer": {
		Kind:           extmem.HandleKindHostAllocation,
		Op:             software.OpImportMemory,
		CreateAllocate: extmem.OutcomeSuccess,
		Export:         extmem.OutcomeSuccess,
		Import:         extmem.OutcomeFailed,
	},
}

func TestPhaseFaults(t *testing.T) {
	for testName, testCase := range phaseFaultTestCases {
		t.Run(testName, func(t *testing.T) {
			fault := testCase.Fault
			if fault == nil {
				fault = errors.New("device lost")
			}

			config := software.DefaultConfig()
			config.Faults = map[software.Operation]error{testCase.Op: fault}
			harness, device := createHarness(t, config, extmem.Options{})

			result, err := harness.RunCase(bufferCase(testCase.Kind))
			require.NoError(t, err)
			requireOutcomes(t, result, testCase.CreateAllocate, testCase.Export, testCase.Import, extmem.OutcomeNotRun)
			require.Error(t, result.Err)
			require.False(t, extmem.IsFatal(result.Err))

			device.SetFault(testCase.Op, nil)
			requireNoLeaks(t, device, result)
		})
	}
}

func TestFailedImport_HandleIsReleased(t *testing.T) {
	config := software.DefaultConfig()
	config.Faults = map[software.Operation]error{software.OpImportMemory: errors.New("import rejected")}
	harness, device := createHarness(t, config, extmem.Options{})

	result, err := harness.RunCase(bufferCase(extmem.HandleKindOpaqueFD))
	require.NoError(t, err)
	require.Equal(t, extmem.OutcomeFailed, result.Import)
	require.Equal(t, 1, countCalls(device.Calls(), software.OpReleaseHandle))
	require.Zero(t, device.Statistics().HandleCount)
}

func TestRun_StopsOnResourceExhaustion(t *testing.T) {
	config := software.DefaultConfig()
	config.ResourceMemoryTypeBits = 1 << software.MemoryTypeDeviceLocal
	harness, device := createHarness(t, config, extmem.Options{})

	results, err := harness.Run([]extmem.Case{
		bufferCase(extmem.HandleKindOpaqueFD),
		bufferCase(extmem.HandleKindDmaBuf),
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, extmem.ErrResourceExhausted))
	require.Contains(t, err.Error(), "case Buffer/opaque-fd")

	require.Len(t, results, 1)
	requireOutcomes(t, results[0], extmem.OutcomeFailed, extmem.OutcomeNotRun, extmem.OutcomeNotRun, extmem.OutcomeNotRun)
	requireNoLeaks(t, device, results...)
}

func TestRun_StopsWhenPayloadCannotBeMapped(t *testing.T) {
	config := software.DefaultConfig()
	config.Faults = map[software.Operation]error{software.OpMapMemory: errors.New("out of address space")}
	harness, device := createHarness(t, config, extmem.Options{})

	results, err := harness.Run([]extmem.Case{
		bufferCase(extmem.HandleKindOpaqueFD),
		bufferCase(extmem.HandleKindDmaBuf),
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, extmem.ErrHarnessFatal))

	require.Len(t, results, 1)
	requireOutcomes(t, results[0], extmem.OutcomeSuccess, extmem.OutcomeNotRun, extmem.OutcomeNotRun, extmem.OutcomeNotRun)
	requireNoLeaks(t, device, results...)
}

func TestRun_NoLeaksAcrossManyCases(t *testing.T) {
	config := software.DefaultConfig()
	config.BufferCapabilities[extmem.HandleKindDmaBuf] = extmem.CapabilityExportable
	config.ImageCapabilities[extmem.HandleKindOpaqueFD] = 0
	harness, device := createHarness(t, config, extmem.Options{})

	var cases []extmem.Case
	for i := 0; i < 5; i++ {
		for _, kind := range extmem.AllHandleKinds {
			cases = append(cases, bufferCase(kind), imageCase(kind))
		}
	}

	results, err := harness.Run(cases)
	require.NoError(t, err)
	require.Len(t, results, len(cases))
	for _, result := range results {
		require.NotEqual(t, extmem.OutcomeFailed, result.CreateAllocate, result.Name)
		require.NotEqual(t, extmem.OutcomeFailed, result.DataCheck, result.Name)
	}
	requireNoLeaks(t, device, results...)
}
