package chromepdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4 fake content for testing")

// trackingCloser records whether Close was called.
type trackingCloser struct {
	io.Reader
	closed   bool
	closeErr error
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return c.closeErr
}

func newResult(t *testing.T) *Result {
	t.Helper()
	r, err := Collect(io.NopCloser(bytes.NewReader(samplePDF)))
	require.NoError(t, err)
	return r
}

func TestCollect_ClosesStream(t *testing.T) {
	stream := &trackingCloser{Reader: bytes.NewReader(samplePDF)}

	r, err := Collect(stream)
	require.NoError(t, err)
	assert.True(t, stream.closed)
	assert.Equal(t, samplePDF, r.Bytes())
}

func TestCollect_CloseError(t *testing.T) {
	stream := &trackingCloser{Reader: strings.NewReader("x"), closeErr: errors.New("remove failed")}

	_, err := Collect(stream)
	assert.ErrorContains(t, err, "remove failed")
}

func TestResult_Base64(t *testing.T) {
	assert.Equal(t, base64.StdEncoding.EncodeToString(samplePDF), newResult(t).Base64())
}

func TestResult_Reader(t *testing.T) {
	r := newResult(t)
	got, err := io.ReadAll(r.Reader())
	require.NoError(t, err)
	assert.Equal(t, samplePDF, got)
	assert.Equal(t, len(samplePDF), r.Len())
}

func TestResult_WriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := newResult(t).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(samplePDF)), n)
	assert.Equal(t, samplePDF, buf.Bytes())
}

func TestResult_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, newResult(t).WriteToFile(path, 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, samplePDF, data)
}

func TestResult_WriteToFile_BadPath(t *testing.T) {
	err := newResult(t).WriteToFile("/nonexistent/dir/out.pdf", 0o644)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "write", fileErr.Op)
}
