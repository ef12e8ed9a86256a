package pdf2html

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/alnah/go-pdf2html/internal/fileutil"
)

// stream is a buffered output file that remembers its first error.
// Writes after a failure are dropped, so callers check Err once at a
// convenient boundary instead of after every fragment.
type stream struct {
	f   *os.File
	buf *bufio.Writer
	err error
}

func createStream(path string) (*stream, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileutil.FilePermissions) // #nosec G304 -- path built from validated config
	if err != nil {
		return nil, err
	}
	return &stream{f: f, buf: bufio.NewWriter(f)}, nil
}

func (s *stream) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.buf.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

func (s *stream) WriteString(str string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.buf.WriteString(str)
	if err != nil {
		s.err = err
	}
	return n, err
}

// ReadFrom copies r into the stream, e.g. a staged file.
func (s *stream) ReadFrom(r io.Reader) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.buf.ReadFrom(r)
	if err != nil {
		s.err = err
	}
	return n, err
}

// Err returns the first write error.
func (s *stream) Err() error {
	return s.err
}

// Close flushes and closes the file. Safe to call more than once.
func (s *stream) Close() error {
	if s.f == nil {
		return s.err
	}
	flushErr := s.buf.Flush()
	closeErr := s.f.Close()
	s.f = nil
	if s.err == nil {
		s.err = errors.Join(flushErr, closeErr)
	}
	return s.err
}
