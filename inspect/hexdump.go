package inspect

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/allockit/internal/buf"
)

const rowSize = 16

// Charset selects the single-byte code page used for the text column of a
// hexdump.
type Charset string

const (
	// CharsetLatin1 decodes bytes as ISO 8859-1.
	CharsetLatin1 Charset = "latin1"

	// CharsetCP437 decodes bytes as IBM code page 437, which has a glyph for
	// nearly every control byte.
	CharsetCP437 Charset = "cp437"

	// CharsetWindows1252 decodes bytes as Windows-1252.
	CharsetWindows1252 Charset = "windows1252"
)

// ParseCharset maps a user-supplied name to a Charset. The empty string
// selects latin1.
func ParseCharset(name string) (Charset, error) {
	switch c := Charset(strings.ToLower(name)); c {
	case "":
		return CharsetLatin1, nil
	case CharsetLatin1, CharsetCP437, CharsetWindows1252:
		return c, nil
	default:
		return "", fmt.Errorf("unknown charset %q (want latin1, cp437 or windows1252)", name)
	}
}

func (c Charset) codePage() (*charmap.Charmap, error) {
	switch c {
	case "", CharsetLatin1:
		return charmap.ISO8859_1, nil
	case CharsetCP437:
		return charmap.CodePage437, nil
	case CharsetWindows1252:
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unknown charset %q", string(c))
	}
}

// DumpOptions selects the window of data a hexdump covers and how it is
// rendered.
type DumpOptions struct {
	// Offset is the first byte to dump.
	Offset int

	// Length is the number of bytes to dump; 0 dumps to the end of data.
	Length int

	// Charset decodes the text column. Default: latin1.
	Charset Charset

	// Base is added to printed offsets, e.g. the position of data within a
	// larger buffer.
	Base int
}

// Hexdump writes data in the canonical 16-bytes-per-row layout:
//
//	00000000  48 65 6c 6c 6f 2c 20 72  65 67 69 6f 6e 21 00 00  |Hello, region!..|
//
// Bytes whose decoded rune is not printable show as '.'.
func Hexdump(w io.Writer, data []byte, opts DumpOptions) error {
	cp, err := opts.Charset.codePage()
	if err != nil {
		return err
	}

	n := opts.Length
	if n == 0 {
		n = max(len(data)-opts.Offset, 0)
	}
	end, err := buf.CheckRange(len(data), opts.Offset, n)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for off := opts.Offset; off < end; off += rowSize {
		row := data[off:min(off+rowSize, end)]
		line.Reset()
		writeRow(&line, cp, opts.Base+off, row)
		if _, err := bw.WriteString(line.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRow(sb *strings.Builder, cp *charmap.Charmap, off int, row []byte) {
	fmt.Fprintf(sb, "%08x ", off)
	for i := 0; i < rowSize; i++ {
		if i == rowSize/2 {
			sb.WriteByte(' ')
		}
		if i < len(row) {
			fmt.Fprintf(sb, " %02x", row[i])
		} else {
			sb.WriteString("   ")
		}
	}
	sb.WriteString("  |")
	for _, b := range row {
		r := cp.DecodeByte(b)
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			r = '.'
		}
		sb.WriteRune(r)
	}
	sb.WriteString("|\n")
}
