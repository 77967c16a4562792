package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/extmem/extmem"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "extmemtest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func execute(args ...string) (string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

type runReport struct {
	Summary struct {
		Cases  int `json:"cases"`
		Passed int `json:"passed"`
	} `json:"summary"`
	DeviceStatistics map[string]int `json:"deviceStatistics"`
	Results          []struct {
		Name    string            `json:"name"`
		Phases  map[string]string `json:"phases"`
		Written []int             `json:"written"`
		Read    []int             `json:"read"`
	} `json:"results"`
}

const hostAllocationConfig = `
backend: software
format: json
cases:
  - resource: buffer
    kind: host-allocation
  - name: small image
    resource: image
    kind: host_allocation
    width: 16
    height: 16
`

func TestRun_SoftwareBackend(t *testing.T) {
	config := writeConfig(t, hostAllocationConfig)

	out, err := execute("run", "--config", config, "--payload", "7,8,9")
	require.NoError(t, err)

	var report runReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, 2, report.Summary.Cases)
	require.Equal(t, 2, report.Summary.Passed)
	require.Contains(t, report.DeviceStatistics, "AllocationCount")
	require.Zero(t, report.DeviceStatistics["AllocationCount"])

	require.Equal(t, "Buffer/host-allocation", report.Results[0].Name)
	require.Equal(t, "small image", report.Results[1].Name)
	for _, result := range report.Results {
		require.Equal(t, []int{7, 8, 9}, result.Written)
		require.Equal(t, []int{7, 8, 9}, result.Read)
		for _, phase := range extmem.Phases {
			require.Equal(t, "Success", result.Phases[phase.String()])
		}
	}
}

func TestRun_CorruptImportsFailsDataCheck(t *testing.T) {
	config := writeConfig(t, hostAllocationConfig)

	out, err := execute("run", "--config", config, "--corrupt-imports")
	require.EqualError(t, err, "2 of 2 cases failed")

	var report runReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "Failed", report.Results[0].Phases["DataCheck"])
}

func TestRun_WritesMetrics(t *testing.T) {
	config := writeConfig(t, hostAllocationConfig)
	metrics := filepath.Join(t.TempDir(), "extmem.prom")

	_, err := execute("run", "--config", config, "--format", "text", "--metrics", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(data), `extmem_phase_outcome{case="small image",handle_kind="host-allocation",outcome="Success",phase="Import",resource="Image"} 1`)
}

func TestRun_EnvironmentSelectsBackend(t *testing.T) {
	config := writeConfig(t, `
cases:
  - resource: buffer
    kind: host-mapped-foreign-memory
`)
	t.Setenv("EXTMEM_BACKEND", "software")

	out, err := execute("run", "--config", config)
	require.NoError(t, err)
	require.Contains(t, out, "Buffer/host-mapped-foreign-memory\n")
	require.Contains(t, out, "1 cases: 1 passed, 0 failed\n")
}

func TestRun_ConfigErrors(t *testing.T) {
	testCases := map[string]struct {
		args   []string
		errMsg string
	}{
		"UnknownBackend": {
			args:   []string{"run", "--backend", "opengl"},
			errMsg: `unknown backend "opengl": expected software or vulkan`,
		},
		"ShortPayload": {
			args:   []string{"run", "--backend", "software", "--payload", "1,2"},
			errMsg: "payload must have exactly 3 values, but 2 were provided",
		},
		"UnknownLogLevel": {
			args:   []string{"run", "--backend", "software", "--log-level", "loud"},
			errMsg: `unknown log level "loud"`,
		},
		"MissingConfigFile": {
			args:   []string{"run", "--config", filepath.Join(os.TempDir(), "extmemtest-missing", "config.yaml")},
			errMsg: "reading config",
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := execute(testCase.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), testCase.errMsg)
		})
	}
}

func TestKinds(t *testing.T) {
	out, err := execute("kinds")
	require.NoError(t, err)
	require.Contains(t, out, "KIND")
	require.Regexp(t, `host-allocation\s+HostPointer\s+yes`, out)
	require.Regexp(t, `d3d12-heap\s+OSHandle`, out)
}

func TestBuildCases(t *testing.T) {
	testCases := map[string]struct {
		config caseConfig
		check  func(t *testing.T, c extmem.Case)
		errMsg string
	}{
		"SparseBuffer": {
			config: caseConfig{Resource: "Buffer", Kind: "host-allocation", Sparse: true},
			check: func(t *testing.T, c extmem.Case) {
				require.Equal(t, "Buffer/host-allocation", c.Name)
				descriptor := c.Descriptor.(extmem.BufferDescriptor)
				require.Equal(t, core1_0.BufferCreateSparseBinding, descriptor.Flags)
				require.Equal(t, core1_0.BufferUsageVertexBuffer, descriptor.Usage)
			},
		},
		"ImageDefaults": {
			config: caseConfig{Resource: "image", Kind: "host-allocation"},
			check: func(t *testing.T, c extmem.Case) {
				require.Equal(t, extmem.DefaultImageDescriptor(), c.Descriptor)
			},
		},
		"OptimalImage": {
			config: caseConfig{Resource: "image", Kind: "host-allocation", Width: 64, MipLevels: 3, Tiling: "optimal"},
			check: func(t *testing.T, c extmem.Case) {
				descriptor := c.Descriptor.(extmem.ImageDescriptor)
				require.Equal(t, 64, descriptor.Extent.Width)
				require.Equal(t, extmem.DefaultImageHeight, descriptor.Extent.Height)
				require.Equal(t, 3, descriptor.MipLevels)
				require.Equal(t, core1_0.ImageTilingOptimal, descriptor.Tiling)
			},
		},
		"UnknownResource": {
			config: caseConfig{Resource: "texture", Kind: "host-allocation"},
			errMsg: `case 0: unknown resource "texture": expected buffer or image`,
		},
		"UnknownKind": {
			config: caseConfig{Resource: "buffer", Kind: "shared-memory"},
			errMsg: `case 0: unknown handle kind "shared-memory"`,
		},
		"UnknownTiling": {
			config: caseConfig{Resource: "image", Kind: "host-allocation", Tiling: "swizzled"},
			errMsg: `case 0: unknown image tiling "swizzled"`,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			cases, err := buildCases([]caseConfig{testCase.config})
			if testCase.errMsg != "" {
				require.EqualError(t, err, testCase.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, cases, 1)
			testCase.check(t, cases[0])
		})
	}
}

func TestBuildCases_DefaultsWhenEmpty(t *testing.T) {
	cases, err := buildCases(nil)
	require.NoError(t, err)
	require.Equal(t, extmem.DefaultCases(), cases)
}

func TestParsePayload(t *testing.T) {
	payload, err := parsePayload([]int{0, 4294967295, 3})
	require.NoError(t, err)
	require.Equal(t, extmem.Payload{0, 4294967295, 3}, payload)

	_, err = parsePayload([]int{-1, 0, 0})
	require.EqualError(t, err, "payload value -1 is out of range for a 32-bit unsigned integer")
}
