// Package inspect renders the state of a region for people and tools: capacity
// summaries, hexdumps of live memory, and step-by-step replay logs.
package inspect

import (
	"fmt"
	"io"
)

const (
	DefaultMaxDumpBytes = 4096
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs one JSON object per line.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Dump includes the live memory of a region with its summary.
	// Default: false
	Dump bool

	// Charset decodes the text column of hexdumps.
	// Default: latin1
	Charset Charset

	// MaxDumpBytes limits how many bytes of live memory are dumped.
	// Set to 0 for no limit.
	// Default: 4096
	MaxDumpBytes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:       FormatText,
		Charset:      CharsetLatin1,
		MaxDumpBytes: DefaultMaxDumpBytes,
	}
}

// Step is the outcome of one allocator operation, as recorded by a replay.
type Step struct {
	Line         int
	Op           string
	Name         string
	Size         int
	Len          int // length of the returned block; 0 for frees and resets
	CapacityLeft int
	Err          error
}

// Printer handles formatted output of region state.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	r := region.New(make([]byte, 4096))
//	p := inspect.New(os.Stdout, inspect.DefaultOptions())
//	p.PrintSummary(r)
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		writer: w,
		opts:   opts,
	}
}

// PrintSummary prints the capacity summary of s, followed by a dump of its
// live memory when Options.Dump is set.
func (p *Printer) PrintSummary(s Source) error {
	sum := Summarize(s)
	var live []byte
	if p.opts.Dump {
		live = s.Live()
		if p.opts.MaxDumpBytes > 0 && len(live) > p.opts.MaxDumpBytes {
			live = live[:p.opts.MaxDumpBytes]
		}
	}
	// Live memory sits at the top of the region.
	base := sum.Free

	switch p.opts.Format {
	case FormatJSON:
		return p.printSummaryJSON(sum, live, base)
	case FormatText:
		return p.printSummaryText(sum, live, base)
	default:
		return p.printSummaryText(sum, live, base)
	}
}

// PrintStep prints one replay step.
func (p *Printer) PrintStep(st Step) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printStepJSON(st)
	case FormatText:
		return p.printStepText(st)
	default:
		return p.printStepText(st)
	}
}

// PrintDump hexdumps data as memory starting at offset base, using the
// printer's charset, regardless of format.
func (p *Printer) PrintDump(data []byte, base int) error {
	if err := Hexdump(p.writer, data, DumpOptions{Charset: p.opts.Charset, Base: base}); err != nil {
		return fmt.Errorf("print dump: %w", err)
	}
	return nil
}
