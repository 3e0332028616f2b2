// SPDX-License-Identifier: MIT

// Package chainio reads and writes sample matrices as delimited numeric
// text, optionally wrapped in a gzip, zstd, lz4 or s2 stream chosen by
// file extension.
//
// Values on a line are separated by commas, tabs or spaces; blank lines
// and lines starting with '#' are skipped. The Layout says whether a line
// holds one draw of every dimension or one dimension across all draws.
package chainio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/chaindiag/chain"
)

// Layout tells how lines map onto the sample matrix.
type Layout int

const (
	// DrawsByDims: each line is one draw with one value per dimension.
	DrawsByDims Layout = iota
	// DimsByDraws: each line is one dimension with one value per draw.
	DimsByDraws
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	if l == DimsByDraws {
		return "dims-by-draws"
	}

	return "draws-by-dims"
}

// ParseLayout maps the String form (or "draws" / "dims") to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "draws-by-dims", "draws", "":
		return DrawsByDims, nil
	case "dims-by-draws", "dims":
		return DimsByDraws, nil
	default:
		return 0, errors.Errorf("unknown layout %q", s)
	}
}

// ErrMalformed reports text that does not form a rectangular numeric table.
var ErrMalformed = errors.New("chainio: malformed chain file")

const maxLine = 64 << 20

// Read parses a chain from r.
func Read(r io.Reader, layout Layout) (*chain.Samples, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	var lines [][]float64
	for no := 1; sc.Scan(); no++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.FieldsFunc(text, isDelimiter)
		vals := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "line %d field %d: %v", no, j+1, err)
			}
			vals[j] = v
		}
		if len(lines) > 0 && len(vals) != len(lines[0]) {
			return nil, errors.Wrapf(ErrMalformed, "line %d has %d values, expected %d", no, len(vals), len(lines[0]))
		}
		lines = append(lines, vals)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read chain")
	}
	if len(lines) == 0 {
		return nil, errors.Wrap(ErrMalformed, "no data lines")
	}

	var (
		s   *chain.Samples
		err error
	)
	if layout == DimsByDraws {
		s, err = chain.FromRows(lines)
	} else {
		s, err = chain.FromDraws(lines)
	}

	return s, errors.Wrap(err, "build sample matrix")
}

// Load reads the chain file at path, decompressing by extension.
func Load(path string, layout Layout) (*chain.Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	rc, err := CompressionFor(path).NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	defer rc.Close()

	s, err := Read(rc, layout)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	return s, nil
}

// Write renders s to w as comma-separated text in the given layout.
// Values use the shortest representation that parses back exactly.
func Write(w io.Writer, s *chain.Samples, layout Layout) error {
	bw := bufio.NewWriter(w)
	outer, inner := s.Len(), s.Dims()
	at := func(i, j int) (float64, error) { return s.At(j, i) }
	if layout == DimsByDraws {
		outer, inner = inner, outer
		at = s.At
	}

	buf := make([]byte, 0, 32)
	for i := 0; i < outer; i++ {
		for j := 0; j < inner; j++ {
			v, err := at(i, j)
			if err != nil {
				return err
			}
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrap(err, "write chain")
		}
		buf = buf[:0]
	}

	return errors.Wrap(bw.Flush(), "write chain")
}

// Save writes s to path, compressing by extension.
func Save(path string, s *chain.Samples, layout Layout) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.WithStack(cerr)
		}
	}()

	wc, err := CompressionFor(path).NewWriter(f)
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if err = Write(wc, s, layout); err != nil {
		_ = wc.Close()
		return errors.Wrapf(err, "save %s", path)
	}

	return errors.Wrapf(wc.Close(), "save %s", path)
}

func isDelimiter(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\r'
}
