package ascii

import (
	"errors"
	"fmt"
	"os"
)

// FileSink is a BufferedSink backed by a file it owns. The file is created
// by CreateFileSink, so a FileSink always has somewhere to write to.
type FileSink struct {
	*BufferedSink
	file *os.File
}

var _ Sink = &FileSink{}

// CreateFileSink creates or truncates path and returns a sink writing to it.
func CreateFileSink(path string, width, height int) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create destination file %q: %w", path, err)
	}

	return &FileSink{
		BufferedSink: NewBufferedSink(f, width, height),
		file:         f,
	}, nil
}

func (s *FileSink) Name() string {
	return s.file.Name()
}

// End writes the collected grid, flushes it to disk and closes the file.
// Called out of order it fails with ErrSinkState and leaves the file open.
func (s *FileSink) End() (err error) {
	if err = s.end(); err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err = s.flush(); err != nil {
		return fmt.Errorf("could not write destination file %q: %w", s.Name(), err)
	}

	if err = s.file.Sync(); err != nil {
		return fmt.Errorf("could not flush destination file %q: %w", s.Name(), err)
	}
	return nil
}

// Close releases the file. It is safe to call after End.
func (s *FileSink) Close() error {
	err := s.file.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	} else if err != nil {
		return fmt.Errorf("could not close destination file %q: %w", s.Name(), err)
	}
	return nil
}
