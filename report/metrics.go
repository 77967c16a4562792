package report

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vkngwrapper/extmem/extmem"
)

// NewRegistry builds a registry holding one gauge series per result phase and outcome, set to 1
// for the outcome the phase had and 0 for the others, along with the leak count of every case
func NewRegistry(results []extmem.Result) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	phaseOutcome := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "extmem",
		Name:      "phase_outcome",
		Help:      "Whether a case phase finished with the labelled outcome.",
	}, []string{"case", "handle_kind", "resource", "phase", "outcome"})

	leaked := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "extmem",
		Name:      "leaked_allocations",
		Help:      "Device objects left alive after a case finished its teardown.",
	}, []string{"case", "handle_kind", "resource"})

	err := registry.Register(phaseOutcome)
	if err != nil {
		return nil, errors.Wrap(err, "registering phase outcome gauge")
	}
	err = registry.Register(leaked)
	if err != nil {
		return nil, errors.Wrap(err, "registering leak gauge")
	}

	outcomes := []extmem.Outcome{extmem.OutcomeNotRun, extmem.OutcomeSuccess, extmem.OutcomeFailed, extmem.OutcomeUnsupported}
	for i := range results {
		result := &results[i]
		kind := result.Kind.Name()
		resource := result.Resource.String()

		for _, phase := range extmem.Phases {
			for _, outcome := range outcomes {
				value := 0.0
				if result.Outcome(phase) == outcome {
					value = 1
				}
				phaseOutcome.WithLabelValues(result.Name, kind, resource, phase.String(), outcome.String()).Set(value)
			}
		}

		leaked.WithLabelValues(result.Name, kind, resource).Set(float64(result.LeakedAllocations))
	}

	return registry, nil
}

// WriteMetrics writes the results to path in the Prometheus text exposition format, for
// collection by a node exporter's textfile collector
func WriteMetrics(path string, results []extmem.Result) error {
	registry, err := NewRegistry(results)
	if err != nil {
		return err
	}

	return errors.Wrapf(prometheus.WriteToTextfile(path, registry), "writing metrics to %s", path)
}
