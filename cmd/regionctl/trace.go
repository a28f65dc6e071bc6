package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var errTraceSyntax = errors.New("trace syntax error")

// traceOp is one parsed line of a trace.
//
// Trace format, one operation per line; '#' starts a comment:
//
//	alloc  <name> <size> [align]
//	zalloc <name> <size> [align]
//	free   <name>
//	grow   <name> <size>
//	shrink <name> <size>
//	write  <name> <text...>
//	all    <name>
//	reset
//
// Sizes accept humanized forms such as 4KiB.
type traceOp struct {
	Line  int
	Op    string
	Name  string
	Size  int
	Align int
	Text  string
}

// arity is the number of operands after the op, as [min, max].
var arity = map[string][2]int{
	"alloc":  {2, 3},
	"zalloc": {2, 3},
	"free":   {1, 1},
	"grow":   {2, 2},
	"shrink": {2, 2},
	"write":  {2, math.MaxInt},
	"all":    {1, 1},
	"reset":  {0, 0},
}

// parseTrace reads a whole trace. The first malformed line aborts parsing.
func parseTrace(r io.Reader) ([]traceOp, error) {
	var ops []traceOp
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, err := parseOp(line, fields)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return ops, nil
}

func parseOp(line int, fields []string) (traceOp, error) {
	op := traceOp{Line: line, Op: strings.ToLower(fields[0]), Align: 1}
	bounds, ok := arity[op.Op]
	if !ok {
		return op, fmt.Errorf("%w: line %d: unknown operation %q", errTraceSyntax, line, fields[0])
	}
	args := fields[1:]
	if len(args) < bounds[0] || len(args) > bounds[1] {
		return op, fmt.Errorf("%w: line %d: %s takes %s operands, got %d",
			errTraceSyntax, line, op.Op, arityString(bounds), len(args))
	}
	if len(args) == 0 {
		return op, nil
	}

	op.Name = args[0]
	var err error
	switch op.Op {
	case "alloc", "zalloc":
		if op.Size, err = parseSize(args[1]); err != nil {
			return op, fmt.Errorf("%w: line %d: size: %w", errTraceSyntax, line, err)
		}
		if len(args) == 3 {
			if op.Align, err = parseSize(args[2]); err != nil {
				return op, fmt.Errorf("%w: line %d: align: %w", errTraceSyntax, line, err)
			}
		}
	case "grow", "shrink":
		if op.Size, err = parseSize(args[1]); err != nil {
			return op, fmt.Errorf("%w: line %d: size: %w", errTraceSyntax, line, err)
		}
	case "write":
		op.Text = strings.Join(args[1:], " ")
	}
	return op, nil
}

// parseSize accepts plain byte counts and humanized sizes.
func parseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("%s is too large", s)
	}
	return int(n), nil
}

func arityString(b [2]int) string {
	switch {
	case b[0] == b[1]:
		return strconv.Itoa(b[0])
	case b[1] == math.MaxInt:
		return "at least " + strconv.Itoa(b[0])
	default:
		return fmt.Sprintf("%d to %d", b[0], b[1])
	}
}
