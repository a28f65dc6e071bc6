package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/chunk"
	"github.com/joshuapare/allockit/inspect"
	"github.com/joshuapare/allockit/region"
)

var (
	replayCapacity string
	replayKind     string
	replayChunk    int
	replayDump     bool
	replayCharset  string
)

var errUnknownBlock = errors.New("unknown block")

func init() {
	cmd := newReplayCmd()
	cmd.Flags().StringVar(&replayCapacity, "capacity", "64KiB", "Region size (e.g. 4096, 64KiB, 1MiB)")
	cmd.Flags().StringVar(&replayKind, "kind", "region", "Region type: region, shared, intrusive or mapped")
	cmd.Flags().IntVar(&replayChunk, "chunk", 0, "Round every request to this power-of-two size (0 = off)")
	cmd.Flags().BoolVar(&replayDump, "dump", false, "Hexdump live memory after the replay")
	cmd.Flags().StringVar(&replayCharset, "charset", "latin1", "Hexdump text column charset: latin1, cp437 or windows1252")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace",
		Long: `The replay command runs every operation in a trace file against a fresh
region and prints the capacity left after each step, followed by a summary.
Allocation failures are reported on their step and the replay continues.
Freeing a name always forgets it, even when the block was not the last one
and the region could not reclaim its bytes. Use "-" to read the trace from
stdin.

Example:
  regionctl replay session.trace
  regionctl replay session.trace --capacity 1MiB --chunk 64
  regionctl replay session.trace --kind intrusive --dump --charset cp437`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args)
		},
	}
	return cmd
}

// replayConfig holds the parsed replay flags.
type replayConfig struct {
	Capacity int
	Kind     string
	Chunk    int
	Dump     bool
	Charset  inspect.Charset
	JSON     bool
	Quiet    bool
}

func runReplay(cmd *cobra.Command, args []string) error {
	capacity, err := parseSize(replayCapacity)
	if err != nil {
		return fmt.Errorf("invalid --capacity %q: %w", replayCapacity, err)
	}
	charset, err := inspect.ParseCharset(replayCharset)
	if err != nil {
		return fmt.Errorf("invalid --charset: %w", err)
	}
	cfg := replayConfig{
		Capacity: capacity,
		Kind:     replayKind,
		Chunk:    replayChunk,
		Dump:     replayDump,
		Charset:  charset,
		JSON:     jsonOut,
		Quiet:    quiet,
	}

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		in = f
	}

	ops, err := parseTrace(in)
	if err != nil {
		return err
	}
	logger.Debug("parsed trace", "path", args[0], "ops", len(ops))

	return replay(cmd.OutOrStdout(), ops, cfg)
}

// target is the allocator a replay drives and the region underneath it.
type target struct {
	allocator alloc.Allocator
	bulk      alloc.BulkAllocator
	src       inspect.Source
	close     func() error
}

// regionAllocator is the surface shared by every region type.
type regionAllocator interface {
	alloc.Allocator
	alloc.BulkAllocator
	inspect.Source
}

func newTarget(cfg replayConfig) (*target, error) {
	var r regionAllocator
	closeFn := func() error { return nil }

	switch cfg.Kind {
	case "region":
		r = region.New(make([]byte, cfg.Capacity))
	case "shared":
		r = region.NewShared(make([]byte, cfg.Capacity))
	case "intrusive":
		ir, err := region.NewIntrusive(make([]byte, cfg.Capacity))
		if err != nil {
			return nil, err
		}
		r = ir
	case "mapped":
		m, err := region.Map(cfg.Capacity)
		if err != nil {
			return nil, err
		}
		r = m
		closeFn = m.Close
	default:
		return nil, fmt.Errorf("unknown region kind %q (want region, shared, intrusive or mapped)", cfg.Kind)
	}

	t := &target{allocator: r, bulk: r, src: r, close: closeFn}
	if cfg.Chunk > 0 {
		c, err := chunk.New(r, cfg.Chunk)
		if err != nil {
			_ = closeFn()
			return nil, fmt.Errorf("invalid --chunk: %w", err)
		}
		t.allocator, t.bulk = c, c
	}
	logger.Info("created region",
		"kind", cfg.Kind,
		"capacity", humanize.IBytes(uint64(r.Capacity())),
		"chunk", cfg.Chunk)
	return t, nil
}

// liveBlock is a named block the trace still holds.
type liveBlock struct {
	b []byte
	l alloc.Layout
}

// replay runs ops against a fresh target and writes one step record per op,
// then the final summary.
func replay(w io.Writer, ops []traceOp, cfg replayConfig) (err error) {
	t, err := newTarget(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	opts := inspect.DefaultOptions()
	if cfg.JSON {
		opts.Format = inspect.FormatJSON
	}
	opts.Dump = cfg.Dump
	opts.Charset = cfg.Charset
	if cfg.Quiet {
		w = io.Discard
	}
	p := inspect.New(w, opts)

	blocks := map[string]liveBlock{}
	failed := 0
	for _, op := range ops {
		st := t.apply(blocks, op)
		if st.Err != nil {
			failed++
		}
		logger.Debug("replay step", "line", op.Line, "op", op.Op, "name", op.Name,
			"size", op.Size, "len", st.Len, "left", st.CapacityLeft, "err", st.Err)
		if err := p.PrintStep(st); err != nil {
			return err
		}
	}
	logger.Info("replay finished", "ops", len(ops), "failed", failed, "live_blocks", len(blocks))

	if !cfg.JSON {
		fmt.Fprintln(w)
	}
	return p.PrintSummary(t.src)
}

// apply runs one op and reports its outcome.
func (t *target) apply(blocks map[string]liveBlock, op traceOp) inspect.Step {
	st := inspect.Step{Line: op.Line, Op: op.Op, Name: op.Name, Size: op.Size}

	var err error
	switch op.Op {
	case "alloc", "zalloc":
		var l alloc.Layout
		l, err = alloc.NewLayout(op.Size, op.Align)
		if err != nil {
			break
		}
		var b []byte
		if op.Op == "zalloc" {
			b, err = t.allocator.AllocateZeroed(l)
		} else {
			b, err = t.allocator.Allocate(l)
		}
		if err == nil {
			blocks[op.Name] = liveBlock{b, l}
			st.Len = len(b)
		}

	case "free":
		var lb liveBlock
		if lb, err = lookup(blocks, op.Name); err == nil {
			t.allocator.Deallocate(lb.b, lb.l)
			delete(blocks, op.Name)
		}

	case "grow", "shrink":
		var lb liveBlock
		if lb, err = lookup(blocks, op.Name); err != nil {
			break
		}
		var nb []byte
		if op.Op == "grow" {
			nb, err = t.allocator.Grow(lb.b, lb.l, op.Size)
		} else {
			nb, err = t.allocator.Shrink(lb.b, lb.l, op.Size)
		}
		if err != nil {
			break
		}
		var nl alloc.Layout
		if nl, err = lb.l.WithSize(op.Size); err == nil {
			blocks[op.Name] = liveBlock{nb, nl}
			st.Len = len(nb)
		}

	case "write":
		var lb liveBlock
		if lb, err = lookup(blocks, op.Name); err == nil {
			st.Len = copy(lb.b, op.Text)
		}

	case "all":
		var b []byte
		if b, err = t.bulk.AllocateAll(); err == nil {
			blocks[op.Name] = liveBlock{b, alloc.MustLayout(len(b), 1)}
			st.Len = len(b)
		}

	case "reset":
		t.bulk.DeallocateAll()
		clear(blocks)
	}

	st.Err = err
	st.CapacityLeft = t.src.CapacityLeft()
	return st
}

func lookup(blocks map[string]liveBlock, name string) (liveBlock, error) {
	lb, ok := blocks[name]
	if !ok {
		return liveBlock{}, fmt.Errorf("%w %q", errUnknownBlock, name)
	}
	return lb, nil
}
