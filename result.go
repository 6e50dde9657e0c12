package chromepdf

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Result holds a rendered document in memory and provides helpers for
// common output formats such as raw bytes, base64 encoding, and readers.
type Result struct {
	data []byte
}

// Collect reads stream to the end, closes it and returns its content. Use
// it when the whole document is needed at once; a stream from the chrome
// backend removes its output file on close.
func Collect(stream io.ReadCloser) (*Result, error) {
	data, err := io.ReadAll(stream)
	closeErr := stream.Close()
	if err != nil {
		return nil, errors.Wrap(err, "chromepdf: reading rendered document")
	}
	if closeErr != nil {
		return nil, errors.Wrap(closeErr, "chromepdf: closing rendered document")
	}
	return &Result{data: data}, nil
}

// Bytes returns the raw document content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Base64 returns the document encoded as a standard base64 string (RFC 4648).
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the document content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full document to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the document to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	if err := os.WriteFile(path, r.data, perm); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Len returns the size of the document in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
