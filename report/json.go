package report

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/extmem/extmem"
	"github.com/vkngwrapper/extmem/memutils"
)

// writePayload writes payload values as unsigned integers. jwriter only writes int, which is 32
// bits on some platforms.
func writePayload(writer *jwriter.Writer, payload extmem.Payload) {
	arr := writer.Array()
	var buf []byte
	for _, value := range payload {
		buf = strconv.AppendUint(buf[:0], uint64(value), 10)
		arr.Raw(json.RawMessage(buf))
	}
	arr.End()
}

func writeResult(obj jwriter.ObjectState, result *extmem.Result) {
	obj.Name("name").String(result.Name)
	obj.Name("handleKind").String(result.Kind.Name())
	obj.Name("resource").String(result.Resource.String())
	obj.Name("capabilities").String(capabilitiesString(result.Capabilities))
	obj.Name("branch").String(result.Branch.String())

	phases := obj.Name("phases").Object()
	for _, phase := range extmem.Phases {
		phases.Name(phase.String()).String(result.Outcome(phase).String())
	}
	phases.End()

	writePayload(obj.Name("written"), result.Written)
	if result.DataCheck != extmem.OutcomeNotRun {
		writePayload(obj.Name("read"), result.Read)
	}

	obj.Name("leakedAllocations").Int(result.LeakedAllocations)
	obj.Name("passed").Bool(result.Passed())
	if result.Err != nil {
		obj.Name("error").String(result.Err.Error())
	}
}

// WriteJSON writes the results as a JSON object holding a summary and an array of results. When
// stats is not nil, the objects the device still held after the run are included as well.
func WriteJSON(w io.Writer, results []extmem.Result, stats *memutils.Statistics) error {
	writer := jwriter.NewWriter()

	obj := writer.Object()

	summary := Summarize(results)
	summaryObj := obj.Name("summary").Object()
	summaryObj.Name("cases").Int(summary.Cases)
	summaryObj.Name("passed").Int(summary.Passed)
	summaryObj.Name("failed").Int(summary.Failed)
	summaryObj.Name("leaked").Int(summary.Leaked)
	summaryObj.End()

	if stats != nil {
		statsObj := obj.Name("deviceStatistics").Object()
		stats.PrintJson(&statsObj)
		statsObj.End()
	}

	arr := obj.Name("results").Array()
	for i := range results {
		resultObj := arr.Object()
		writeResult(resultObj, &results[i])
		resultObj.End()
	}
	arr.End()

	obj.End()

	err := writer.Error()
	if err != nil {
		return errors.Wrap(err, "building json report")
	}

	_, err = w.Write(writer.Bytes())
	return errors.Wrap(err, "writing json report")
}
