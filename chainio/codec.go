// SPDX-License-Identifier: MIT

package chainio

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression identifies the stream codec wrapped around a chain file.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	LZ4
	S2
)

var extensions = map[string]Compression{
	".gz":   Gzip,
	".gzip": Gzip,
	".zst":  Zstd,
	".zstd": Zstd,
	".lz4":  LZ4,
	".s2":   S2,
}

// String implements fmt.Stringer.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case S2:
		return "s2"
	default:
		return "unknown"
	}
}

// CompressionFor picks the codec from the extension of path; unknown
// extensions are read as plain text.
func CompressionFor(path string) Compression {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// NewReader wraps r with the decoder for c. Closing the result releases the
// decoder but not r.
func (c Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, errors.Wrap(err, "open zstd stream")
		}
		return zr.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	default:
		return nil, errors.Errorf("unknown compression %d", int(c))
	}
}

// NewWriter wraps w with the encoder for c. The result must be closed to
// flush the stream; closing does not close w.
func (c Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, errors.Wrap(err, "open zstd stream")
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case S2:
		return s2.NewWriter(w), nil
	default:
		return nil, errors.Errorf("unknown compression %d", int(c))
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
