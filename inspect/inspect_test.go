package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/region"
)

func TestSummarize(t *testing.T) {
	r := region.New(make([]byte, 1024))
	_, err := r.Allocate(alloc.MustLayout(256, 1))
	require.NoError(t, err)

	s := Summarize(r)
	assert.Equal(t, Summary{Capacity: 1024, Used: 256, Free: 768, Utilization: 0.25}, s)

	assert.Equal(t, Summary{}, Summarize(region.New(nil)))
}

func TestHexdump_FullRow(t *testing.T) {
	var out bytes.Buffer
	err := Hexdump(&out, []byte("Hello, region!\x00\x00"), DumpOptions{})
	require.NoError(t, err)

	want := "00000000  48 65 6c 6c 6f 2c 20 72  65 67 69 6f 6e 21 00 00  |Hello, region!..|\n"
	assert.Equal(t, want, out.String())
}

func TestHexdump_PartialRow(t *testing.T) {
	var out bytes.Buffer
	data := append(bytes.Repeat([]byte{'a'}, 16), 'b', 'c')
	require.NoError(t, Hexdump(&out, data, DumpOptions{}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "00000010  62 63 "))
	assert.True(t, strings.HasSuffix(lines[1], "  |bc|"))
	// The hex columns are padded so the text column lines up.
	assert.Equal(t, strings.Index(lines[0], "|"), strings.Index(lines[1], "|"))
}

func TestHexdump_Window(t *testing.T) {
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte('A' + i%26)
	}

	var out bytes.Buffer
	require.NoError(t, Hexdump(&out, data, DumpOptions{Offset: 32, Length: 16, Base: 0x100}))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	assert.True(t, strings.HasPrefix(out.String(), "00000120  47 48"), out.String())

	out.Reset()
	err := Hexdump(&out, data, DumpOptions{Offset: 60, Length: 8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bounds")

	err = Hexdump(&out, data, DumpOptions{Offset: -1})
	require.Error(t, err)

	err = Hexdump(&out, data, DumpOptions{Offset: 100})
	require.Error(t, err)
}

func TestHexdump_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Hexdump(&out, nil, DumpOptions{}))
	assert.Empty(t, out.String())
}

func TestHexdump_Charsets(t *testing.T) {
	data := []byte{0x01, 0x80, 0xe9, 0x41}

	tests := []struct {
		charset Charset
		text    string
	}{
		{CharsetLatin1, "|..éA|"},
		{CharsetWindows1252, "|.€éA|"},
		{CharsetCP437, "ÇΘA|"},
	}
	for _, tc := range tests {
		t.Run(string(tc.charset), func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Hexdump(&out, data, DumpOptions{Charset: tc.charset}))
			assert.Contains(t, out.String(), tc.text)
		})
	}

	var out bytes.Buffer
	require.Error(t, Hexdump(&out, data, DumpOptions{Charset: "ebcdic"}))
}

func TestParseCharset(t *testing.T) {
	c, err := ParseCharset("")
	require.NoError(t, err)
	assert.Equal(t, CharsetLatin1, c)

	c, err = ParseCharset("CP437")
	require.NoError(t, err)
	assert.Equal(t, CharsetCP437, c)

	_, err = ParseCharset("utf-16")
	require.Error(t, err)
}

func TestPrinter_PrintSummary_Text(t *testing.T) {
	r := region.New(make([]byte, 2048))
	b, err := r.Allocate(alloc.MustLayout(512, 1))
	require.NoError(t, err)
	copy(b, "live!")

	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Dump = true
	require.NoError(t, New(&out, opts).PrintSummary(r))

	output := out.String()
	t.Logf("Text output:\n%s", output)
	require.Contains(t, output, "Capacity:    2.0 KiB (2048 bytes)")
	require.Contains(t, output, "Used:        512 B (512 bytes)")
	require.Contains(t, output, "Free:        1.5 KiB (1536 bytes)")
	require.Contains(t, output, "Utilization: 25.0%")
	require.Contains(t, output, "Live memory (512 B):")
	require.Contains(t, output, "00000600  6c 69 76 65 21")
}

func TestPrinter_PrintSummary_JSON(t *testing.T) {
	r := region.New(make([]byte, 64))
	b, err := r.Allocate(alloc.MustLayout(4, 1))
	require.NoError(t, err)
	copy(b, "abcd")

	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.Dump = true
	require.NoError(t, New(&out, opts).PrintSummary(r))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.EqualValues(t, 64, got["capacity"])
	assert.EqualValues(t, 4, got["used"])
	assert.EqualValues(t, 60, got["free"])
	assert.EqualValues(t, 60, got["live_offset"])
	assert.Equal(t, "61626364", got["live"])
}

func TestPrinter_MaxDumpBytes(t *testing.T) {
	r := region.New(make([]byte, 256))
	_, err := r.Allocate(alloc.MustLayout(100, 1))
	require.NoError(t, err)

	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Dump = true
	opts.MaxDumpBytes = 32
	require.NoError(t, New(&out, opts).PrintSummary(r))
	assert.Contains(t, out.String(), "Live memory (32 B):")
	assert.Equal(t, 2, strings.Count(out.String(), "  |"))
}

func TestPrinter_PrintStep(t *testing.T) {
	steps := []Step{
		{Line: 1, Op: "alloc", Name: "a", Size: 10, Len: 16, CapacityLeft: 1008},
		{Line: 2, Op: "free", Name: "a", CapacityLeft: 1024},
		{Line: 3, Op: "alloc", Name: "big", Size: 4096, CapacityLeft: 1024, Err: alloc.ErrNoSpace},
	}

	var out bytes.Buffer
	p := New(&out, DefaultOptions())
	for _, st := range steps {
		require.NoError(t, p.PrintStep(st))
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "10 -> 16 bytes (1008 B left)")
	assert.Contains(t, lines[1], "(1.0 KiB left)")
	assert.Contains(t, lines[2], "error: alloc: allocation failed: out of space")

	out.Reset()
	opts := DefaultOptions()
	opts.Format = FormatJSON
	p = New(&out, opts)
	require.NoError(t, p.PrintStep(steps[2]))

	var got jsonStep
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "big", got.Name)
	assert.Equal(t, 1024, got.CapacityLeft)
	assert.Equal(t, alloc.ErrNoSpace.Error(), got.Error)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrinter_WriteErrors(t *testing.T) {
	p := New(failingWriter{}, DefaultOptions())
	require.Error(t, p.PrintStep(Step{Line: 1, Op: "reset"}))
	require.Error(t, p.PrintDump([]byte("x"), 0))
}

func TestPrinter_PrintDump(t *testing.T) {
	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	require.NoError(t, New(&out, opts).PrintDump([]byte("AB"), 0x40))
	assert.Contains(t, out.String(), "00000040  41 42")
	assert.Contains(t, out.String(), "|AB|")
}
