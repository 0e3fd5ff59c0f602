package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/datavis/pkg/io/jsonlio"
)

const irisNulls = "../../pkg/io/csvio/testdata/iris_nulls.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "datavis "+version+"\n", out)
}

func TestCleanToStdout(t *testing.T) {
	out, err := run(t, "clean", "--input", irisNulls)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "sepal_length,sepal_width,petal_length,petal_width,species", lines[0])
	for _, l := range lines[1:] {
		assert.NotContains(t, l, ",,")
		assert.False(t, strings.HasPrefix(l, ","), l)
		assert.False(t, strings.HasSuffix(l, ","), l)
	}
}

func TestCleanToJSONL(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "clean.jsonl")
	_, err := run(t, "clean", "--input", irisNulls, "--output", dst)
	require.NoError(t, err)

	r, fh, err := jsonlio.Open(dst)
	require.NoError(t, err)
	defer fh.Close()
	f, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 10, f.Rows())
	assert.Equal(t, 5, f.Cols())
}

func TestCleanRejectsUnknownOutput(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "clean.xml")
	_, err := run(t, "clean", "--input", irisNulls, "--output", dst)
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestPlotHistogram(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "hist.png")
	out, err := run(t, "plot", "--input", irisNulls, "--kind", "Histogram", "--numeric", "petal_length", "--output", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+dst)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

func TestPlotWarning(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "chart.svg")
	out, err := run(t, "plot", "--input", irisNulls, "--kind", "Violin", "--output", dst)
	require.NoError(t, err)
	assert.Equal(t, "Insufficient data or unsupported selection.\n", out)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPlotBadExtension(t *testing.T) {
	_, err := run(t, "plot", "--input", irisNulls, "--output", "chart.bmp")
	assert.ErrorContains(t, err, "unsupported image format")
}

func TestProfileText(t *testing.T) {
	out, err := run(t, "profile", "--input", irisNulls)
	require.NoError(t, err)
	assert.Contains(t, out, "Before cleaning")
	assert.Contains(t, out, "After cleaning")
	assert.Contains(t, out, "species")
}
