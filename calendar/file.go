package calendar

import (
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// SaveExport writes records to path. A .xz or .lzma suffix compresses
// the file in that format.
func SaveExport(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := compressor(path, f)
	if err != nil {
		return err
	}
	if err := WriteExport(w, records); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// LoadExport reads a file written by SaveExport.
func LoadExport(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decompressor(path, f)
	if err != nil {
		return nil, err
	}
	return ParseExport(r)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func compressor(path string, w io.Writer) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(path, ".xz"):
		return xz.NewWriter(w)
	case strings.HasSuffix(path, ".lzma"):
		return lzma.NewWriter(w)
	default:
		return nopCloser{w}, nil
	}
}

func decompressor(path string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".xz"):
		return xz.NewReader(r)
	case strings.HasSuffix(path, ".lzma"):
		return lzma.NewReader(r)
	default:
		return r, nil
	}
}
