package parser

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize caps a single log line at 1MB. Longer lines are still
// counted but reach the decoders empty, flagged Truncated.
const maxLineSize = 1024 * 1024

// textSourceName is reported as Line.Source for in-memory text.
const textSourceName = "<text>"

// ReaderSource implements LineSource over any io.Reader.
type ReaderSource struct {
	name    string
	closer  io.Closer
	reader  *bufio.Reader
	lineNum int
}

// NewReaderSource creates a LineSource reading lines from r.
// name is reported as the Source of every produced line.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	s := &ReaderSource{
		name:   name,
		reader: bufio.NewReaderSize(r, 64*1024),
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// NewStringSource creates a LineSource over an in-memory text.
func NewStringSource(text string) *ReaderSource {
	return NewReaderSource(textSourceName, strings.NewReader(text))
}

// Name returns the source name given at construction.
func (s *ReaderSource) Name() string { return s.name }

// Next returns the next line, or io.EOF once the reader is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (*Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.reader == nil {
		return nil, io.EOF
	}

	text, truncated, err := s.readLine()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.name, err)
	}

	s.lineNum++
	return &Line{
		Text:      text,
		Num:       s.lineNum,
		Source:    s.name,
		Truncated: truncated,
	}, nil
}

// readLine reads up to the next newline, dropping the line content once it
// exceeds maxLineSize. The final line may lack a newline.
func (s *ReaderSource) readLine() (string, bool, error) {
	var (
		buf       []byte
		read      int
		truncated bool
	)
	for {
		chunk, err := s.reader.ReadSlice('\n')
		read += len(chunk)
		if !truncated {
			if len(buf)+len(chunk) > maxLineSize+1 {
				truncated = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if read == 0 {
				return "", false, io.EOF
			}
		case err != nil:
			return "", false, err
		}
		return string(trimEOL(buf)), truncated, nil
	}
}

func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	return bytes.TrimSuffix(b, []byte{'\r'})
}

// Close releases the underlying reader if it is closable.
func (s *ReaderSource) Close() error {
	s.reader = nil
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}

// FileSource implements LineSource for a single log file.
// The file is opened lazily on the first call to Next.
type FileSource struct {
	path   string
	reader *ReaderSource
}

// NewFileSource creates a LineSource that reads the given file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.path }

// Next returns the next line of the file.
// Returns io.EOF when the file has been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	if s.reader == nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", s.path, err)
		}
		s.reader = NewReaderSource(s.path, f)
	}
	return s.reader.Next(ctx)
}

// Close releases the open file, if any.
func (s *FileSource) Close() error {
	if s.reader == nil {
		return nil
	}
	return s.reader.Close()
}
