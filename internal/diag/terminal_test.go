package diag

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corsac-lang/corsac/internal/source"
)

func TestDiagnostic_FormatForTerminal(t *testing.T) {
	d := FromError(&source.ReadError{Path: "src/a.crs", Err: source.ErrInvalidEncoding})

	out := d.FormatForTerminal(true)
	assert.Equal(t, "error[S003]: file is not valid UTF-8 text\n  --> src/a.crs\n", out)
}

func TestWriteTerminal(t *testing.T) {
	r := NewReport(1, []Diagnostic{
		NoSourceFiles("empty", ".crs"),
		FromError(&source.TraversalError{Op: "readdir", Path: "src", Err: os.ErrPermission}),
	})

	var buf bytes.Buffer
	WriteTerminal(&buf, r, true)

	out := buf.String()
	assert.Contains(t, out, "error[S001]")
	assert.Contains(t, out, "warning[S004]")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("S001")), bytes.Index(buf.Bytes(), []byte("S004")))
	assert.Contains(t, out, "1 error(s), 1 warning(s)")
}

func TestWriteTerminal_Clean(t *testing.T) {
	var buf bytes.Buffer
	WriteTerminal(&buf, NewReport(4, nil), true)
	assert.Empty(t, buf.String())
}
