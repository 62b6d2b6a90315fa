package diag

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corsac-lang/corsac/internal/source"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		file     string
		severity Severity
	}{
		{
			name: "unreadable directory",
			err:  &source.TraversalError{Op: "readdir", Path: "src/locked", Err: os.ErrPermission},
			code: CodeUnreadableDir,
			file: "src/locked",
		},
		{
			name: "unreadable file",
			err:  &source.ReadError{Path: "src/a.crs", Err: os.ErrNotExist},
			code: CodeUnreadableFile,
			file: "src/a.crs",
		},
		{
			name: "invalid encoding",
			err:  &source.ReadError{Path: "src/b.crs", Err: source.ErrInvalidEncoding},
			code: CodeInvalidEncoding,
			file: "src/b.crs",
		},
		{
			name: "wrapped read error",
			err:  fmt.Errorf("check: %w", &source.ReadError{Path: "c.crs", Err: os.ErrNotExist}),
			code: CodeUnreadableFile,
			file: "c.crs",
		},
		{
			name: "unknown error",
			err:  errors.New("something else"),
			code: CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromError(tt.err)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.file, d.Location.File)
			assert.Equal(t, Error, d.Severity)
			assert.True(t, d.IsError())
		})
	}
}

func TestFromErrors(t *testing.T) {
	assert.Nil(t, FromErrors(nil))

	joined := errors.Join(
		&source.ReadError{Path: "a.crs", Err: os.ErrNotExist},
		errors.Join(&source.ReadError{Path: "b.crs", Err: source.ErrInvalidEncoding}),
	)

	diags := FromErrors(joined)
	require.Len(t, diags, 2)
	assert.Equal(t, CodeUnreadableFile, diags[0].Code)
	assert.Equal(t, CodeInvalidEncoding, diags[1].Code)
}

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{Code: CodeUnreadableFile, Message: "cannot read file", Location: Location{File: "x.crs"}}
	assert.Equal(t, "x.crs: S002: cannot read file", d.Error())

	d.Location.File = ""
	assert.Equal(t, "S002: cannot read file", d.Error())
}

func TestNoSourceFiles(t *testing.T) {
	d := NoSourceFiles("src", ".crs")
	assert.Equal(t, CodeNoSourceFiles, d.Code)
	assert.True(t, d.IsWarning())
	assert.False(t, d.IsError())
	assert.Contains(t, d.Message, ".crs")
}

func TestNewReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := NewReport(3, nil)
		assert.Equal(t, "success", r.Status)
		assert.Equal(t, 3, r.Files)
		assert.False(t, r.HasErrors())
		assert.Empty(t, r.Errors)
	})

	t.Run("warning", func(t *testing.T) {
		r := NewReport(0, []Diagnostic{NoSourceFiles(".", ".crs")})
		assert.Equal(t, "warning", r.Status)
		assert.Equal(t, 1, r.Summary.WarningCount)
		assert.False(t, r.HasErrors())
	})

	t.Run("error", func(t *testing.T) {
		r := NewReport(2, []Diagnostic{
			FromError(&source.ReadError{Path: "a.crs", Err: os.ErrNotExist}),
			NoSourceFiles(".", ".crs"),
			{Code: "S000", Severity: Info},
		})
		assert.Equal(t, "error", r.Status)
		assert.True(t, r.HasErrors())
		assert.Equal(t, Summary{ErrorCount: 1, WarningCount: 1, TotalCount: 3}, r.Summary)
	})
}

func TestReport_JSON(t *testing.T) {
	r := NewReport(1, []Diagnostic{
		FromError(&source.ReadError{Path: "a.crs", Err: source.ErrInvalidEncoding}),
	})

	out, err := r.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "error", decoded["status"])

	errs := decoded["errors"].([]any)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	assert.Equal(t, "S003", first["code"])
	assert.Equal(t, "error", first["severity"])
	assert.Equal(t, "a.crs", first["location"].(map[string]any)["file"])
}

func TestSeverity_UnmarshalJSON(t *testing.T) {
	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"warning"`), &s))
	assert.Equal(t, Warning, s)

	require.NoError(t, json.Unmarshal([]byte(`"bogus"`), &s))
	assert.Equal(t, Error, s)

	assert.Equal(t, "unknown", Severity(42).String())
}
