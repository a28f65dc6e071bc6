package inspect

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// printSummaryText prints a summary in human-readable text format.
func (p *Printer) printSummaryText(sum Summary, live []byte, base int) error {
	fmt.Fprintf(p.writer, "Capacity:    %s (%d bytes)\n", humanize.IBytes(uint64(sum.Capacity)), sum.Capacity)
	fmt.Fprintf(p.writer, "Used:        %s (%d bytes)\n", humanize.IBytes(uint64(sum.Used)), sum.Used)
	fmt.Fprintf(p.writer, "Free:        %s (%d bytes)\n", humanize.IBytes(uint64(sum.Free)), sum.Free)
	if _, err := fmt.Fprintf(p.writer, "Utilization: %.1f%%\n", sum.Utilization*100); err != nil {
		return err
	}

	if !p.opts.Dump || len(live) == 0 {
		return nil
	}
	fmt.Fprintf(p.writer, "\nLive memory (%s):\n", humanize.IBytes(uint64(len(live))))
	return p.PrintDump(live, base)
}

// printStepText prints a replay step as a single line.
func (p *Printer) printStepText(st Step) error {
	left := humanize.IBytes(uint64(st.CapacityLeft))
	var err error
	switch {
	case st.Err != nil:
		_, err = fmt.Fprintf(p.writer, "%4d  %-6s %-12s error: %v (%s left)\n", st.Line, st.Op, st.Name, st.Err, left)
	case st.Len > 0:
		_, err = fmt.Fprintf(p.writer, "%4d  %-6s %-12s %d -> %d bytes (%s left)\n", st.Line, st.Op, st.Name, st.Size, st.Len, left)
	default:
		_, err = fmt.Fprintf(p.writer, "%4d  %-6s %-12s (%s left)\n", st.Line, st.Op, st.Name, left)
	}
	return err
}
