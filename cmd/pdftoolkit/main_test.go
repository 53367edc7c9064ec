package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

func writePDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Text(40, 60, name)
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (summary, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := rootCmd(&app{})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		return summary{}, err
	}
	var sum summary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &sum))
	return sum, nil
}

func TestMergeWritesOutput(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)
	b := writePDF(t, dir, "b.pdf", 2)
	out := filepath.Join(dir, "out")

	sum, err := execute(t, "merge", a, b, "-o", out)
	require.NoError(t, err)
	require.Len(t, sum.Files, 1)
	assert.Equal(t, "merged.pdf", sum.Files[0].Name)
	assert.Equal(t, filepath.Join(out, "merged.pdf"), sum.Files[0].Path)
	assert.FileExists(t, sum.Files[0].Path)

	sum, err = execute(t, "info", sum.Files[0].Path)
	require.NoError(t, err)
	require.NotNil(t, sum.Info)
	assert.Equal(t, 3, sum.Info.Pages)
}

func TestSplitWithPrefix(t *testing.T) {
	dir := t.TempDir()
	src := writePDF(t, dir, "Report Q3.pdf", 2)

	sum, err := execute(t, "split", src, "-o", dir, "--prefix", src)
	require.NoError(t, err)
	require.Len(t, sum.Files, 2)
	assert.Equal(t, filepath.Join(dir, "report-q3_page_1.pdf"), sum.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "report-q3_page_2.pdf"), sum.Files[1].Path)
}

func TestUserErrors(t *testing.T) {
	dir := t.TempDir()
	src := writePDF(t, dir, "x.pdf", 2)

	_, err := execute(t, "delete", src, "-o", dir)
	assert.ErrorIs(t, err, engine.ErrEmptySpec)
	assert.True(t, engine.IsUserError(err))

	_, err = execute(t, "rotate", src, "--angle", "45", "-o", dir)
	assert.ErrorIs(t, err, engine.ErrInvalidRotation)

	_, err = execute(t, "protect", src, "--password", "pw")
	assert.ErrorIs(t, err, engine.ErrUnsupported)
}

func TestTextCommand(t *testing.T) {
	dir := t.TempDir()
	sum, err := execute(t, "text", "--text", "hello", "--page-size", "letter", "-o", dir)
	require.NoError(t, err)
	require.Len(t, sum.Files, 1)
	assert.Equal(t, "text_to_pdf.pdf", sum.Files[0].Name)
	assert.Equal(t, engine.MIMEPDF, sum.Files[0].MIME)
}

func TestUnknownLogFormat(t *testing.T) {
	_, err := execute(t, "split", "x.pdf", "--log-format", "xml")
	assert.ErrorContains(t, err, "unknown log format")
}
