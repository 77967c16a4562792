package commands

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/memutils"
	"github.com/vkngwrapper/extmem/report"
	"golang.org/x/exp/slog"
)

func newRunCommand(opts *options) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the external memory cases",
		Long: `Run every configured case against the selected backend and report the
outcome of each phase.

When the config file has no "cases" list, a vertex buffer case and an
800x600 RGBA8 image case are run for every handle kind this platform
supports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := runCmd.Flags()
	flags.String("backend", "vulkan", "device backend: vulkan or software")
	flags.String("format", "text", "report format: text or json")
	flags.String("metrics", "", "write a Prometheus textfile with the outcome of every phase to this path")
	flags.IntSlice("payload", []int{1, 2, 3}, "the three 32-bit values written through the exporting resource")
	cobra.CheckErr(opts.viper.BindPFlags(flags))

	flags.Bool("drop-flushes", false, "software backend: discard flushes of non-coherent memory")
	flags.Bool("corrupt-imports", false, "software backend: give imported memory a damaged copy of the exported bytes")
	flags.Bool("require-dedicated", false, "software backend: require dedicated allocations for every resource")
	flags.Int("non-coherent-atom-size", 0, "software backend: override the non-coherent atom size")
	for _, name := range []string{"drop-flushes", "corrupt-imports", "require-dedicated", "non-coherent-atom-size"} {
		cobra.CheckErr(opts.viper.BindPFlag("software."+name, flags.Lookup(name)))
	}

	return runCmd
}

func (o *options) cases() ([]extmem.Case, error) {
	var configs []caseConfig
	err := o.viper.UnmarshalKey("cases", &configs)
	if err != nil {
		return nil, errors.Wrap(err, "reading cases")
	}

	return buildCases(configs)
}

type statisticsSource interface {
	Statistics() memutils.Statistics
}

func (o *options) writeReport(out io.Writer, device extmem.Device, results []extmem.Result) error {
	switch format := o.viper.GetString("format"); format {
	case "text":
		return report.WriteText(out, results)
	case "json":
		var stats *memutils.Statistics
		source, ok := device.(statisticsSource)
		if ok {
			deviceStats := source.Statistics()
			stats = &deviceStats
		}
		return report.WriteJSON(out, results, stats)
	default:
		return errors.Newf("unknown report format %q: expected text or json", format)
	}
}

func (o *options) run(out io.Writer, logOut io.Writer) (err error) {
	logger, err := o.logger(logOut)
	if err != nil {
		return err
	}

	cases, err := o.cases()
	if err != nil {
		return err
	}

	payload, err := parsePayload(o.viper.GetIntSlice("payload"))
	if err != nil {
		return err
	}

	device, closeDevice, err := openDevice(logger, o.viper)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := closeDevice()
		if closeErr != nil {
			logger.Error("closing device", slog.Any("error", closeErr))
			err = errors.CombineErrors(err, closeErr)
		}
	}()

	harness := extmem.New(logger, device, extmem.Options{Payload: &payload})
	results, runErr := harness.Run(cases)

	err = o.writeReport(out, device, results)
	if err != nil {
		return errors.CombineErrors(runErr, err)
	}

	metricsPath := o.viper.GetString("metrics")
	if metricsPath != "" {
		err = report.WriteMetrics(metricsPath, results)
		if err != nil {
			return errors.CombineErrors(runErr, err)
		}
	}

	if runErr != nil {
		return runErr
	}

	summary := report.Summarize(results)
	if summary.Failed > 0 {
		return errors.Newf("%d of %d cases failed", summary.Failed, summary.Cases)
	}

	return nil
}
