package source

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

var (
	ErrEmptyArchive = errors.New("archive has no files")
	ErrTooLarge     = errors.New("unpacked data exceeds the size limit")
)

// DefaultUnpackLimit caps decompressed output when no limit is given.
const DefaultUnpackLimit = 256 << 20

// Open reads path and returns its content, decompressed according to the
// extension. Name is the file name with the compression suffix removed.
func Open(path string, limit int64) (name string, content io.Reader, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return Decompress(filepath.Base(path), data, limit)
}

// Decompress unpacks .gz, .lz4 and .zip payloads. A zip yields its largest
// file. Anything else is returned as is. Reading more than limit unpacked
// bytes fails with ErrTooLarge; limit <= 0 means DefaultUnpackLimit.
func Decompress(filename string, data []byte, limit int64) (string, io.Reader, error) {
	if limit <= 0 {
		limit = DefaultUnpackLimit
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", nil, fmt.Errorf("open gzip %s: %w", filename, err)
		}
		return trimExt(filename), capReader(gr, limit), nil
	case ".lz4":
		return trimExt(filename), capReader(lz4.NewReader(bytes.NewReader(data)), limit), nil
	case ".zip":
		return largestZipEntry(filename, data, limit)
	}
	return filename, bytes.NewReader(data), nil
}

// cappedReader fails instead of truncating once more than left bytes come
// through.
type cappedReader struct {
	r    io.Reader
	left int64
}

func capReader(r io.Reader, limit int64) io.Reader {
	return &cappedReader{r: r, left: limit}
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if int64(len(p))-1 > c.left {
		p = p[:c.left+1]
	}
	n, err := c.r.Read(p)
	if int64(n) > c.left {
		n = int(c.left)
		c.left = 0
		return n, ErrTooLarge
	}
	c.left -= int64(n)
	return n, err
}

// ReadAllCapped reads r to the end, failing with ErrTooLarge past limit
// bytes.
func ReadAllCapped(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(capReader(r, limit))
}

func trimExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func largestZipEntry(filename string, data []byte, limit int64) (string, io.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open zip %s: %w", filename, err)
	}
	var largest *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largest == nil || f.UncompressedSize64 > largest.UncompressedSize64 {
			largest = f
		}
	}
	if largest == nil {
		return "", nil, fmt.Errorf("%s: %w", filename, ErrEmptyArchive)
	}
	rc, err := largest.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open %s in %s: %w", largest.Name, filename, err)
	}
	defer rc.Close()
	// zip entries must be closed, so the entry is read out here
	unpacked, err := ReadAllCapped(rc, limit)
	if err != nil {
		return "", nil, fmt.Errorf("read %s in %s: %w", largest.Name, filename, err)
	}
	return filepath.Base(largest.Name), bytes.NewReader(unpacked), nil
}
