// SPDX-License-Identifier: MIT
package chainio_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chaindiag/chainio"
	"github.com/katalvlaran/chaindiag/simulate"
)

func TestReadLayouts(t *testing.T) {
	text := "# sampler dump\n1.5, 2\n\n3\t4\n5 6\n"

	draws, err := chainio.Read(strings.NewReader(text), chainio.DrawsByDims)
	require.NoError(t, err)
	assert.Equal(t, 2, draws.Dims())
	assert.Equal(t, 3, draws.Len())
	row, err := draws.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, row)

	dims, err := chainio.Read(strings.NewReader(text), chainio.DimsByDraws)
	require.NoError(t, err)
	assert.Equal(t, 3, dims.Dims())
	assert.Equal(t, 2, dims.Len())
	v, err := dims.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestReadMalformed(t *testing.T) {
	cases := map[string]string{
		"ragged":   "1,2\n3\n",
		"text":     "1,2\n3,x\n",
		"empty":    "# nothing\n\n",
		"infinite": "1,2\n3,+Inf\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := chainio.Read(strings.NewReader(text), chainio.DrawsByDims)
			require.Error(t, err)
		})
	}

	_, err := chainio.Read(strings.NewReader("1,2\n3\n"), chainio.DrawsByDims)
	assert.True(t, errors.Is(err, chainio.ErrMalformed))
	assert.Contains(t, err.Error(), "line 2")
}

func TestSaveLoadCompressed(t *testing.T) {
	s, err := simulate.AR1(4, 3, 257, 0.5)
	require.NoError(t, err)
	dir := t.TempDir()

	for _, name := range []string{"chain.csv", "chain.csv.gz", "chain.csv.zst", "chain.csv.lz4", "chain.csv.s2"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, chainio.Save(path, s, chainio.DrawsByDims))

			got, err := chainio.Load(path, chainio.DrawsByDims)
			require.NoError(t, err)
			assert.Equal(t, s.Fingerprint(), got.Fingerprint())
		})
	}

	// Compressed output must actually differ from the plain text.
	plain, err := os.ReadFile(filepath.Join(dir, "chain.csv"))
	require.NoError(t, err)
	packed, err := os.ReadFile(filepath.Join(dir, "chain.csv.zst"))
	require.NoError(t, err)
	assert.False(t, bytes.Equal(plain, packed))
}

func TestWriteDimsByDraws(t *testing.T) {
	s, err := simulate.AR1(1, 2, 5, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, chainio.Write(&buf, s, chainio.DimsByDraws))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	back, err := chainio.Read(&buf, chainio.DimsByDraws)
	require.NoError(t, err)
	assert.Equal(t, s.Fingerprint(), back.Fingerprint())
}

func TestCompressionFor(t *testing.T) {
	assert.Equal(t, chainio.Gzip, chainio.CompressionFor("a/b.csv.GZ"))
	assert.Equal(t, chainio.Zstd, chainio.CompressionFor("b.zst"))
	assert.Equal(t, chainio.LZ4, chainio.CompressionFor("b.lz4"))
	assert.Equal(t, chainio.None, chainio.CompressionFor("b.txt"))
	assert.Equal(t, "s2", chainio.S2.String())
}

func TestParseLayout(t *testing.T) {
	l, err := chainio.ParseLayout("dims")
	require.NoError(t, err)
	assert.Equal(t, chainio.DimsByDraws, l)
	l, err = chainio.ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, chainio.DrawsByDims, l)
	_, err = chainio.ParseLayout("diagonal")
	assert.Error(t, err)
}
