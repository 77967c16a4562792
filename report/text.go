// Package report renders harness results for people and for tooling
package report

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extmem/extmem"
)

var outcomeGlyphs = map[extmem.Outcome]string{
	extmem.OutcomeSuccess:     "✔",
	extmem.OutcomeFailed:      "✘",
	extmem.OutcomeNotRun:      "⏩",
	extmem.OutcomeUnsupported: "∅",
}

// Glyph returns the symbol WriteText uses for an outcome
func Glyph(outcome extmem.Outcome) string {
	glyph, ok := outcomeGlyphs[outcome]
	if !ok {
		return "?"
	}
	return glyph
}

// Summary counts cases by whether they passed
type Summary struct {
	Cases  int
	Passed int
	Failed int
	Leaked int
}

// Summarize counts the results
func Summarize(results []extmem.Result) Summary {
	var summary Summary
	for i := range results {
		summary.Cases++
		if results[i].Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}
		if results[i].LeakedAllocations != 0 {
			summary.Leaked++
		}
	}
	return summary
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// WriteText writes one block per result, followed by a summary line
func WriteText(w io.Writer, results []extmem.Result) error {
	out := &errWriter{w: w}

	for i := range results {
		result := &results[i]

		out.printf("%s\n", result.Name)
		out.printf("  capabilities: %s (%s)\n", capabilitiesString(result.Capabilities), result.Branch)
		for _, phase := range extmem.Phases {
			outcome := result.Outcome(phase)
			out.printf("  %-15s %s %s\n", phase.String()+":", Glyph(outcome), outcome)
		}
		if result.DataCheck != extmem.OutcomeNotRun {
			out.printf("  payload: wrote %v, read %v\n", result.Written, result.Read)
		}
		if result.LeakedAllocations != 0 {
			out.printf("  leaked: %d\n", result.LeakedAllocations)
		}
		if result.Err != nil {
			out.printf("  error: %s\n", result.Err)
		}
	}

	summary := Summarize(results)
	out.printf("%d cases: %d passed, %d failed\n", summary.Cases, summary.Passed, summary.Failed)

	return errors.Wrap(out.err, "writing text report")
}

func capabilitiesString(capabilities extmem.CapabilitySet) string {
	if capabilities == 0 {
		return "none"
	}
	return capabilities.String()
}
