package inspect

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// jsonSummary represents a region summary in JSON format.
type jsonSummary struct {
	Summary
	LiveOffset int    `json:"live_offset,omitempty"`
	Live       string `json:"live,omitempty"`
}

// jsonStep represents a replay step in JSON format.
type jsonStep struct {
	Line         int    `json:"line"`
	Op           string `json:"op"`
	Name         string `json:"name,omitempty"`
	Size         int    `json:"size,omitempty"`
	Len          int    `json:"len,omitempty"`
	CapacityLeft int    `json:"capacity_left"`
	Error        string `json:"error,omitempty"`
}

// printSummaryJSON prints a summary in JSON format. Live memory, if any, is
// hex-encoded.
func (p *Printer) printSummaryJSON(sum Summary, live []byte, base int) error {
	out := jsonSummary{Summary: sum}
	if len(live) > 0 {
		out.LiveOffset = base
		out.Live = hex.EncodeToString(live)
	}
	return p.writeJSON(out)
}

// printStepJSON prints a replay step in JSON format.
func (p *Printer) printStepJSON(st Step) error {
	out := jsonStep{
		Line:         st.Line,
		Op:           st.Op,
		Name:         st.Name,
		Size:         st.Size,
		Len:          st.Len,
		CapacityLeft: st.CapacityLeft,
	}
	if st.Err != nil {
		out.Error = st.Err.Error()
	}
	return p.writeJSON(out)
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
